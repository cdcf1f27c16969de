package model

import (
	"errors"
	"time"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationActive  ReservationStatus = "Active"
	ReservationDeleted ReservationStatus = "Deleted"
)

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	return s == ReservationActive || s == ReservationDeleted
}

var (
	ErrInvalidTimeRange = errors.New("EndTime must be after StartTime.")
	ErrStartInPast      = errors.New("StartTime cannot be in the past.")
)

// Reservation books one room for one user over [StartTime, EndTime).
type Reservation struct {
	ID        int64             `gorm:"primaryKey"`
	UserID    int64             `gorm:"index;not null"`
	RoomID    int64             `gorm:"index;not null"`
	StartTime time.Time         `gorm:"not null;index"`
	EndTime   time.Time         `gorm:"not null"`
	Status    ReservationStatus `gorm:"size:16;not null"`
	CreatedAt time.Time         `gorm:"not null"`
	SoftDelete

	// Associations
	User User `gorm:"constraint:OnDelete:RESTRICT"`
	Room Room `gorm:"constraint:OnDelete:RESTRICT"`
}

// HasValidTimeRange fails when the end is not strictly after the start.
func (r *Reservation) HasValidTimeRange() error {
	if !r.EndTime.After(r.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

// HasFutureStartTime fails when the start lies before now.
func (r *Reservation) HasFutureStartTime(now time.Time) error {
	if r.StartTime.Before(now.UTC()) {
		return ErrStartInPast
	}
	return nil
}

// IsValid runs the time-range check, then the future-start check, and returns
// the first failure.
func (r *Reservation) IsValid(now time.Time) error {
	if err := r.HasValidTimeRange(); err != nil {
		return err
	}
	return r.HasFutureStartTime(now)
}

// StartsOnOrBefore reports whether the reservation's start date (UTC) is on or
// before the calendar day of now (UTC).
func (r *Reservation) StartsOnOrBefore(now time.Time) bool {
	sy, sm, sd := r.StartTime.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	startDay := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return !startDay.After(today)
}

// Delete soft-deletes the reservation and moves it to the terminal status.
func (r *Reservation) Delete(now time.Time) {
	r.MarkDeleted(now)
	r.Status = ReservationDeleted
}
