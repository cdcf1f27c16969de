package model

import "time"

// Room represents a bookable conference room.
type Room struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"size:128;not null"`
	Capacity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	SoftDelete

	// Associations
	Reservations []Reservation `gorm:"foreignKey:RoomID"`
}
