package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"conference-room-backend/internal/dto"
	"conference-room-backend/internal/store"
)

// UserService manages users. Users carry no rules beyond existence and
// soft-delete visibility.
type UserService struct {
	store store.Store
	log   *logrus.Entry
	now   func() time.Time
}

func NewUserService(s store.Store, logger *logrus.Entry) *UserService {
	return &UserService{
		store: s,
		log:   logger.WithField("service", "users"),
		now:   time.Now,
	}
}

func (s *UserService) List(ctx context.Context, includeDeleted bool) (Result[[]dto.UserDTO], error) {
	users, err := s.store.ListUsers(ctx, includeDeleted)
	if err != nil {
		return Result[[]dto.UserDTO]{}, err
	}
	return Ok(dto.UsersFromModel(users)), nil
}

func (s *UserService) Get(ctx context.Context, id int64, includeDeleted bool) (Result[dto.UserDTO], error) {
	user, err := s.store.GetUser(ctx, id, includeDeleted)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[dto.UserDTO](notFoundMessage("User", id)), nil
	}
	if err != nil {
		return Result[dto.UserDTO]{}, err
	}
	return Ok(dto.UserFromModel(*user)), nil
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (Result[dto.UserDTO], error) {
	user := req.ToModel()
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return Result[dto.UserDTO]{}, err
	}
	s.log.WithField("user_id", user.ID).Info("user created")
	return Ok(dto.UserFromModel(user)), nil
}

func (s *UserService) Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (Result[dto.UserDTO], error) {
	user, err := s.store.GetUser(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[dto.UserDTO](notFoundMessage("User", id)), nil
	}
	if err != nil {
		return Result[dto.UserDTO]{}, err
	}

	req.Apply(user)
	if err := s.store.SaveUser(ctx, user); err != nil {
		return Result[dto.UserDTO]{}, err
	}
	return Ok(dto.UserFromModel(*user)), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (Result[bool], error) {
	user, err := s.store.GetUser(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[bool](notFoundMessage("User", id)), nil
	}
	if err != nil {
		return Result[bool]{}, err
	}

	user.MarkDeleted(s.now())
	if err := s.store.DeleteUser(ctx, user); err != nil {
		return Result[bool]{}, err
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return Ok(true), nil
}
