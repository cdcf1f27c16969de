package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"conference-room-backend/internal/model"
)

// Seed inserts a small demo data set when the users table is empty.
// Reservations are placed relative to now so they are bookable immediately.
func Seed(db *gorm.DB, now time.Time, log *logrus.Entry) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Debug("seed skipped, users already present")
		return nil
	}

	now = now.UTC()
	users := []model.User{
		{FirstName: "Alice", LastName: "Johnson"},
		{FirstName: "Bob", LastName: "Smith"},
	}
	rooms := []model.Room{
		{Name: "Alpha", Capacity: 6},
		{Name: "Beta", Capacity: 10},
		{Name: "Gamma", Capacity: 20},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		if err := tx.Omit(clause.Associations).Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}

		alice, bob := users[0].ID, users[1].ID
		alpha, beta, gamma := rooms[0].ID, rooms[1].ID, rooms[2].ID
		reservations := []model.Reservation{
			seedReservation(alice, alpha, now, 1, 2),
			seedReservation(alice, beta, now, 3, 4),
			seedReservation(bob, beta, now, 1, 2),
			seedReservation(bob, gamma, now, 5, 6),
		}
		if err := tx.Omit(clause.Associations).Create(&reservations).Error; err != nil {
			return fmt.Errorf("failed to seed reservations: %w", err)
		}

		log.WithFields(logrus.Fields{
			"users":        len(users),
			"rooms":        len(rooms),
			"reservations": len(reservations),
		}).Info("seed data inserted")
		return nil
	})
}

func seedReservation(userID, roomID int64, now time.Time, fromHour, toHour int) model.Reservation {
	return model.Reservation{
		UserID:    userID,
		RoomID:    roomID,
		StartTime: now.Add(time.Duration(fromHour) * time.Hour),
		EndTime:   now.Add(time.Duration(toHour) * time.Hour),
		Status:    model.ReservationActive,
	}
}
