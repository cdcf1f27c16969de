package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"conference-room-backend/internal/dto"
	"conference-room-backend/internal/store"
)

// RoomService manages rooms.
type RoomService struct {
	store store.Store
	log   *logrus.Entry
	now   func() time.Time
}

func NewRoomService(s store.Store, logger *logrus.Entry) *RoomService {
	return &RoomService{
		store: s,
		log:   logger.WithField("service", "rooms"),
		now:   time.Now,
	}
}

func (s *RoomService) List(ctx context.Context, includeDeleted bool) (Result[[]dto.RoomDTO], error) {
	rooms, err := s.store.ListRooms(ctx, includeDeleted)
	if err != nil {
		return Result[[]dto.RoomDTO]{}, err
	}
	return Ok(dto.RoomsFromModel(rooms)), nil
}

func (s *RoomService) Get(ctx context.Context, id int64, includeDeleted bool) (Result[dto.RoomDTO], error) {
	room, err := s.store.GetRoom(ctx, id, includeDeleted)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[dto.RoomDTO](notFoundMessage("Room", id)), nil
	}
	if err != nil {
		return Result[dto.RoomDTO]{}, err
	}
	return Ok(dto.RoomFromModel(*room)), nil
}

func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (Result[dto.RoomDTO], error) {
	room := req.ToModel()
	if err := s.store.CreateRoom(ctx, &room); err != nil {
		return Result[dto.RoomDTO]{}, err
	}
	s.log.WithFields(logrus.Fields{"room_id": room.ID, "name": room.Name}).Info("room created")
	return Ok(dto.RoomFromModel(room)), nil
}

func (s *RoomService) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (Result[dto.RoomDTO], error) {
	room, err := s.store.GetRoom(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[dto.RoomDTO](notFoundMessage("Room", id)), nil
	}
	if err != nil {
		return Result[dto.RoomDTO]{}, err
	}

	req.Apply(room)
	if err := s.store.SaveRoom(ctx, room); err != nil {
		return Result[dto.RoomDTO]{}, err
	}
	return Ok(dto.RoomFromModel(*room)), nil
}

func (s *RoomService) Delete(ctx context.Context, id int64) (Result[bool], error) {
	room, err := s.store.GetRoom(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[bool](notFoundMessage("Room", id)), nil
	}
	if err != nil {
		return Result[bool]{}, err
	}

	room.MarkDeleted(s.now())
	if err := s.store.DeleteRoom(ctx, room); err != nil {
		return Result[bool]{}, err
	}
	s.log.WithField("room_id", id).Info("room deleted")
	return Ok(true), nil
}
