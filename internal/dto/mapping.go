package dto

import (
	"conference-room-backend/internal/model"
)

// --- Reservations ---

// ReservationFromModel shapes a reservation for the API. User and Room are
// expected to be preloaded; missing associations leave the names empty.
func ReservationFromModel(r model.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.User.FullName(),
		RoomID:    r.RoomID,
		RoomName:  r.Room.Name,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
		Deleted:   r.Deleted,
		DeletedAt: r.DeletedAt,
	}
}

func ReservationsFromModel(rs []model.Reservation) []ReservationDTO {
	out := make([]ReservationDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReservationFromModel(r))
	}
	return out
}

// ToModel builds a new Active reservation candidate.
func (req CreateReservationRequest) ToModel() model.Reservation {
	return model.Reservation{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Status:    model.ReservationActive,
	}
}

// Apply copies the requested window and status onto r.
func (req UpdateReservationRequest) Apply(r *model.Reservation) {
	r.StartTime = req.StartTime.UTC()
	r.EndTime = req.EndTime.UTC()
	r.Status = req.Status
	if r.Status == "" {
		r.Status = model.ReservationActive
	}
}

// --- Users ---

func UserFromModel(u model.User) UserDTO {
	reservations := ReservationsFromModel(u.Reservations)
	for i := range reservations {
		reservations[i].UserName = u.FullName()
	}
	return UserDTO{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Deleted:      u.Deleted,
		DeletedAt:    u.DeletedAt,
		Reservations: reservations,
	}
}

func UsersFromModel(us []model.User) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for _, u := range us {
		out = append(out, UserFromModel(u))
	}
	return out
}

func (req CreateUserRequest) ToModel() model.User {
	return model.User{FirstName: req.FirstName, LastName: req.LastName}
}

func (req UpdateUserRequest) Apply(u *model.User) {
	u.FirstName = req.FirstName
	u.LastName = req.LastName
}

// --- Rooms ---

func RoomFromModel(r model.Room) RoomDTO {
	reservations := ReservationsFromModel(r.Reservations)
	for i := range reservations {
		reservations[i].RoomName = r.Name
	}
	return RoomDTO{
		ID:           r.ID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		Deleted:      r.Deleted,
		DeletedAt:    r.DeletedAt,
		Reservations: reservations,
	}
}

func RoomsFromModel(rs []model.Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, RoomFromModel(r))
	}
	return out
}

func (req CreateRoomRequest) ToModel() model.Room {
	return model.Room{Name: req.Name, Capacity: req.Capacity}
}

func (req UpdateRoomRequest) Apply(r *model.Room) {
	r.Name = req.Name
	r.Capacity = req.Capacity
}
