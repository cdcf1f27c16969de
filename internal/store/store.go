package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"conference-room-backend/internal/model"
)

// exclusionViolation is the Postgres SQLSTATE raised by the overlap guard constraint.
const exclusionViolation = "23P01"

// Store defines the interface for all database operations.
type Store interface {
	// InTx runs fn against a store bound to a single transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context, includeDeleted bool) ([]model.User, error)
	GetUser(ctx context.Context, id int64, includeDeleted bool) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	SaveUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, u *model.User) error

	ListRooms(ctx context.Context, includeDeleted bool) ([]model.Room, error)
	GetRoom(ctx context.Context, id int64, includeDeleted bool) (*model.Room, error)
	CreateRoom(ctx context.Context, r *model.Room) error
	SaveRoom(ctx context.Context, r *model.Room) error
	DeleteRoom(ctx context.Context, r *model.Room) error

	ListReservations(ctx context.Context, includeDeleted bool) ([]model.Reservation, error)
	GetReservation(ctx context.Context, id int64, includeDeleted bool) (*model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	SaveReservation(ctx context.Context, r *model.Reservation) error
	DeleteReservation(ctx context.Context, r *model.Reservation) error

	// RoomHasOverlap reports whether a non-deleted reservation other than
	// excludeID holds roomID during [start, end).
	RoomHasOverlap(ctx context.Context, roomID, excludeID int64, start, end time.Time) (bool, error)
	// UserHasOverlap reports whether a non-deleted reservation other than
	// excludeID holds userID during [start, end).
	UserHasOverlap(ctx context.Context, userID, excludeID int64, start, end time.Time) (bool, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// --- Users ---

func (s *gormStore) ListUsers(ctx context.Context, includeDeleted bool) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Scopes(SoftDeleteFilter(includeDeleted)).
		Preload("Reservations", SoftDeleteFilter(includeDeleted)).
		Preload("Reservations.Room").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *gormStore) GetUser(ctx context.Context, id int64, includeDeleted bool) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Scopes(SoftDeleteFilter(includeDeleted)).
		Preload("Reservations", SoftDeleteFilter(includeDeleted)).
		Preload("Reservations.Room").
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *gormStore) SaveUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error; err != nil {
		return fmt.Errorf("failed to save user %d: %w", u.ID, err)
	}
	return nil
}

func (s *gormStore) DeleteUser(ctx context.Context, u *model.User) error {
	if err := markDeleted(ctx, s.db, u, softDeleteColumns(u.SoftDelete)); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", u.ID, err)
	}
	return nil
}

// --- Rooms ---

func (s *gormStore) ListRooms(ctx context.Context, includeDeleted bool) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Scopes(SoftDeleteFilter(includeDeleted)).
		Preload("Reservations", SoftDeleteFilter(includeDeleted)).
		Preload("Reservations.User").
		Order("id").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id int64, includeDeleted bool) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).
		Scopes(SoftDeleteFilter(includeDeleted)).
		Preload("Reservations", SoftDeleteFilter(includeDeleted)).
		Preload("Reservations.User").
		First(&room, id).Error
	if err != nil {
		return nil, notFound(err, "room", id)
	}
	return &room, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, r *model.Room) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *gormStore) SaveRoom(ctx context.Context, r *model.Room) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
		return fmt.Errorf("failed to save room %d: %w", r.ID, err)
	}
	return nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, r *model.Room) error {
	if err := markDeleted(ctx, s.db, r, softDeleteColumns(r.SoftDelete)); err != nil {
		return fmt.Errorf("failed to delete room %d: %w", r.ID, err)
	}
	return nil
}

// --- Reservations ---

func (s *gormStore) ListReservations(ctx context.Context, includeDeleted bool) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := s.db.WithContext(ctx).
		Scopes(SoftDeleteFilter(includeDeleted)).
		Preload("User").
		Preload("Room").
		Order("id").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *gormStore) GetReservation(ctx context.Context, id int64, includeDeleted bool) (*model.Reservation, error) {
	var reservation model.Reservation
	err := s.db.WithContext(ctx).
		Scopes(SoftDeleteFilter(includeDeleted)).
		Preload("User").
		Preload("Room").
		First(&reservation, id).Error
	if err != nil {
		return nil, notFound(err, "reservation", id)
	}
	return &reservation, nil
}

func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return overlapOr(err, "failed to create reservation")
	}
	return nil
}

func (s *gormStore) SaveReservation(ctx context.Context, r *model.Reservation) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
		return overlapOr(err, fmt.Sprintf("failed to save reservation %d", r.ID))
	}
	return nil
}

func (s *gormStore) DeleteReservation(ctx context.Context, r *model.Reservation) error {
	cols := softDeleteColumns(r.SoftDelete)
	cols["status"] = r.Status
	if err := markDeleted(ctx, s.db, r, cols); err != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", r.ID, err)
	}
	return nil
}

func (s *gormStore) RoomHasOverlap(ctx context.Context, roomID, excludeID int64, start, end time.Time) (bool, error) {
	return s.hasOverlap(ctx, "room_id", roomID, excludeID, start, end)
}

func (s *gormStore) UserHasOverlap(ctx context.Context, userID, excludeID int64, start, end time.Time) (bool, error) {
	return s.hasOverlap(ctx, "user_id", userID, excludeID, start, end)
}

// hasOverlap counts live reservations owned by ownerID whose interval
// intersects [start, end). Deleted rows never block a booking, whatever the
// caller's visibility flag.
func (s *gormStore) hasOverlap(ctx context.Context, ownerColumn string, ownerID, excludeID int64, start, end time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where(ownerColumn+" = ?", ownerID).
		Where("id <> ?", excludeID).
		Where("start_time < ?", end.UTC()).
		Where("end_time > ?", start.UTC()).
		Scopes(SoftDeleteFilter(false)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check %s overlap for %d: %w", ownerColumn, ownerID, err)
	}
	return count > 0, nil
}

// --- Helper functions ---

func softDeleteColumns(sd model.SoftDelete) map[string]any {
	return map[string]any{
		"deleted":    sd.Deleted,
		"deleted_at": sd.DeletedAt,
	}
}

func markDeleted(ctx context.Context, db *gorm.DB, entity any, cols map[string]any) error {
	return db.WithContext(ctx).Model(entity).Omit(clause.Associations).Updates(cols).Error
}

func notFound(err error, kind string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to get %s %d: %w", kind, id, err)
}

func overlapOr(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return ErrOverlap
	}
	return fmt.Errorf("%s: %w", msg, err)
}
