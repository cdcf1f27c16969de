package dto

import (
	"time"

	"conference-room-backend/internal/model"
)

type ReservationDTO struct {
	ID        int64                   `json:"id"`
	UserID    int64                   `json:"userId"`
	UserName  string                  `json:"userName"`
	RoomID    int64                   `json:"roomId"`
	RoomName  string                  `json:"roomName"`
	StartTime time.Time               `json:"startTime"`
	EndTime   time.Time               `json:"endTime"`
	Status    model.ReservationStatus `json:"status"`
	Deleted   bool                    `json:"deleted"`
	DeletedAt *time.Time              `json:"deletedAt"`
}

type UserDTO struct {
	ID           int64            `json:"id"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	Deleted      bool             `json:"deleted"`
	DeletedAt    *time.Time       `json:"deletedAt"`
	Reservations []ReservationDTO `json:"reservations"`
}

type RoomDTO struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Capacity     int              `json:"capacity"`
	Deleted      bool             `json:"deleted"`
	DeletedAt    *time.Time       `json:"deletedAt"`
	Reservations []ReservationDTO `json:"reservations"`
}
