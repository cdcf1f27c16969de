package model

import "time"

// User is a person who can hold reservations.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	FirstName string    `gorm:"size:128;not null"`
	LastName  string    `gorm:"size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	SoftDelete

	// Associations
	Reservations []Reservation `gorm:"foreignKey:UserID"`
}

// FullName joins first and last name the way reservation views display it.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return ""
	}
	return u.FirstName + " " + u.LastName
}
