package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"conference-room-backend/internal/dto"
	"conference-room-backend/internal/metrics"
	"conference-room-backend/internal/model"
	"conference-room-backend/internal/store"
)

const (
	msgRoomOverlap   = "This room is already booked during the selected time."
	msgUserOverlap   = "User already has a reservation during this time."
	msgSameDay       = "Cannot update a reservation on the same day."
	msgInvalidStatus = "Status must be either Active or Deleted."
	msgTerminal      = "Cannot update a deleted reservation."
)

// ReservationService validates and persists reservations.
//
// Every write checks its rules in a fixed order and the first violated rule
// decides the message: room overlap, then time validity, then user overlap.
// Checks and the write share one transaction; on Postgres the overlap guard
// constraint closes the remaining check-then-write race for rooms.
type ReservationService struct {
	store   store.Store
	metrics *metrics.BookingMetrics
	log     *logrus.Entry
	now     func() time.Time
}

func NewReservationService(s store.Store, m *metrics.BookingMetrics, logger *logrus.Entry) *ReservationService {
	return &ReservationService{
		store:   s,
		metrics: m,
		log:     logger.WithField("service", "reservations"),
		now:     time.Now,
	}
}

func (s *ReservationService) List(ctx context.Context, includeDeleted bool) (Result[[]dto.ReservationDTO], error) {
	reservations, err := s.store.ListReservations(ctx, includeDeleted)
	if err != nil {
		return Result[[]dto.ReservationDTO]{}, err
	}
	return Ok(dto.ReservationsFromModel(reservations)), nil
}

func (s *ReservationService) Get(ctx context.Context, id int64, includeDeleted bool) (Result[dto.ReservationDTO], error) {
	reservation, err := s.store.GetReservation(ctx, id, includeDeleted)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[dto.ReservationDTO](notFoundMessage("Reservation", id)), nil
	}
	if err != nil {
		return Result[dto.ReservationDTO]{}, err
	}
	return Ok(dto.ReservationFromModel(*reservation)), nil
}

func (s *ReservationService) Create(ctx context.Context, req dto.CreateReservationRequest) (Result[dto.ReservationDTO], error) {
	now := s.now().UTC()
	var created model.Reservation

	err := s.store.InTx(ctx, func(tx store.Store) error {
		candidate := req.ToModel()

		if err := s.checkParties(ctx, tx, candidate); err != nil {
			return err
		}
		if err := s.checkBookingRules(ctx, tx, &candidate, now); err != nil {
			return err
		}
		if err := tx.CreateReservation(ctx, &candidate); err != nil {
			return asOverlapRejection(err)
		}

		fetched, err := tx.GetReservation(ctx, candidate.ID, true)
		if err != nil {
			return err
		}
		created = *fetched
		return nil
	})
	if msg, done := s.rejected(err); done {
		return Fail[dto.ReservationDTO](msg), nil
	}
	if err != nil {
		return Result[dto.ReservationDTO]{}, err
	}

	s.metrics.RecordCreated()
	s.log.WithFields(logrus.Fields{
		"reservation_id": created.ID,
		"room_id":        created.RoomID,
		"user_id":        created.UserID,
	}).Info("reservation created")
	return Ok(dto.ReservationFromModel(created)), nil
}

// Update replaces the window and status of a reservation. Reservations
// starting today or earlier are frozen; the check uses the stored start date,
// not the requested one. Deleted is terminal: asking for it soft-deletes the
// row, and a row already in it cannot be updated.
func (s *ReservationService) Update(ctx context.Context, id int64, req dto.UpdateReservationRequest) (Result[dto.ReservationDTO], error) {
	now := s.now().UTC()
	var updated model.Reservation

	err := s.store.InTx(ctx, func(tx store.Store) error {
		existing, err := tx.GetReservation(ctx, id, false)
		if errors.Is(err, store.ErrNotFound) {
			return reject(metrics.ReasonNotFound, notFoundMessage("Reservation", id))
		}
		if err != nil {
			return err
		}

		if existing.Status == model.ReservationDeleted {
			return reject(metrics.ReasonInvalid, msgTerminal)
		}
		if existing.StartsOnOrBefore(now) {
			return reject(metrics.ReasonSameDay, msgSameDay)
		}

		req.Apply(existing)
		if !existing.Status.Valid() {
			return reject(metrics.ReasonInvalid, msgInvalidStatus)
		}

		if err := s.checkBookingRules(ctx, tx, existing, now); err != nil {
			return err
		}
		if existing.Status == model.ReservationDeleted {
			existing.Delete(now)
		}
		if err := tx.SaveReservation(ctx, existing); err != nil {
			return asOverlapRejection(err)
		}

		fetched, err := tx.GetReservation(ctx, id, true)
		if err != nil {
			return err
		}
		updated = *fetched
		return nil
	})
	if msg, done := s.rejected(err); done {
		return Fail[dto.ReservationDTO](msg), nil
	}
	if err != nil {
		return Result[dto.ReservationDTO]{}, err
	}

	s.metrics.RecordUpdated()
	if updated.Deleted {
		s.metrics.RecordDeleted()
	}
	s.log.WithFields(logrus.Fields{
		"reservation_id": id,
		"status":         updated.Status,
	}).Info("reservation updated")
	return Ok(dto.ReservationFromModel(updated)), nil
}

// Delete soft-deletes a reservation. A second delete of the same id reports
// not found.
func (s *ReservationService) Delete(ctx context.Context, id int64) (Result[bool], error) {
	reservation, err := s.store.GetReservation(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return Fail[bool](notFoundMessage("Reservation", id)), nil
	}
	if err != nil {
		return Result[bool]{}, err
	}

	reservation.Delete(s.now())
	if err := s.store.DeleteReservation(ctx, reservation); err != nil {
		return Result[bool]{}, err
	}

	s.metrics.RecordDeleted()
	s.log.WithField("reservation_id", id).Info("reservation deleted")
	return Ok(true), nil
}

// checkParties makes sure the referenced user and room exist and are not deleted.
func (s *ReservationService) checkParties(ctx context.Context, tx store.Store, r model.Reservation) error {
	if _, err := tx.GetUser(ctx, r.UserID, false); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return reject(metrics.ReasonNotFound, notFoundMessage("User", r.UserID))
		}
		return err
	}
	if _, err := tx.GetRoom(ctx, r.RoomID, false); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return reject(metrics.ReasonNotFound, notFoundMessage("Room", r.RoomID))
		}
		return err
	}
	return nil
}

// checkBookingRules evaluates, in order: room overlap, time validity, user overlap.
// r.ID is zero for a new reservation, which no stored row carries.
func (s *ReservationService) checkBookingRules(ctx context.Context, tx store.Store, r *model.Reservation, now time.Time) error {
	busy, err := tx.RoomHasOverlap(ctx, r.RoomID, r.ID, r.StartTime, r.EndTime)
	if err != nil {
		return err
	}
	if busy {
		return reject(metrics.ReasonRoomOverlap, msgRoomOverlap)
	}

	if err := r.IsValid(now); err != nil {
		return reject(metrics.ReasonInvalid, err.Error())
	}

	busy, err = tx.UserHasOverlap(ctx, r.UserID, r.ID, r.StartTime, r.EndTime)
	if err != nil {
		return err
	}
	if busy {
		return reject(metrics.ReasonUserOverlap, msgUserOverlap)
	}
	return nil
}

// rejected records a rule rejection and returns its message.
func (s *ReservationService) rejected(err error) (string, bool) {
	rej, ok := asRejection(err)
	if !ok {
		return "", false
	}
	s.metrics.RecordRejected(rej.reason)
	s.log.WithField("reason", rej.reason).Debug("reservation rejected")
	return rej.message, true
}

func asOverlapRejection(err error) error {
	if errors.Is(err, store.ErrOverlap) {
		return reject(metrics.ReasonRoomOverlap, msgRoomOverlap)
	}
	return err
}
