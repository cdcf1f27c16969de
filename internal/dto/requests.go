package dto

import (
	"time"

	"conference-room-backend/internal/model"
)

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type UpdateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type CreateReservationRequest struct {
	UserID    int64     `json:"userId" binding:"required"`
	RoomID    int64     `json:"roomId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// UpdateReservationRequest replaces the time window and status of a
// reservation. An empty status means Active.
type UpdateReservationRequest struct {
	StartTime time.Time               `json:"startTime" binding:"required"`
	EndTime   time.Time               `json:"endTime" binding:"required"`
	Status    model.ReservationStatus `json:"status"`
}
