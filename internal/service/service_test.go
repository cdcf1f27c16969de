package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"conference-room-backend/internal/db"
	"conference-room-backend/internal/dto"
	"conference-room-backend/internal/metrics"
	"conference-room-backend/internal/store"
)

// fixedNow is the clock every service in these tests runs on.
var fixedNow = time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC)

// tomorrow is a whole-hour base for bookings that are safely in the future.
var tomorrow = time.Date(2030, 5, 11, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return tomorrow.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixture struct {
	store        store.Store
	gorm         *gorm.DB
	registry     *prometheus.Registry
	users        *UserService
	rooms        *RoomService
	reservations *ReservationService
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "rooms.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	registry := prometheus.NewRegistry()
	m := metrics.NewBookingMetricsWithRegisterer(registry)
	clock := func() time.Time { return fixedNow }

	users := NewUserService(s, quietLog())
	users.now = clock
	rooms := NewRoomService(s, quietLog())
	rooms.now = clock
	reservations := NewReservationService(s, m, quietLog())
	reservations.now = clock

	return &fixture{
		store:        s,
		gorm:         gormDB,
		registry:     registry,
		users:        users,
		rooms:        rooms,
		reservations: reservations,
	}
}

func (f *fixture) addUser(t *testing.T, first, last string) int64 {
	t.Helper()
	res, err := f.users.Create(context.Background(), dto.CreateUserRequest{FirstName: first, LastName: last})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	return res.Data().ID
}

func (f *fixture) addRoom(t *testing.T, name string, capacity int) int64 {
	t.Helper()
	res, err := f.rooms.Create(context.Background(), dto.CreateRoomRequest{Name: name, Capacity: capacity})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	return res.Data().ID
}

func (f *fixture) book(t *testing.T, userID, roomID int64, start, end time.Time) dto.ReservationDTO {
	t.Helper()
	res, err := f.reservations.Create(context.Background(), dto.CreateReservationRequest{
		UserID:    userID,
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.Message())
	return res.Data()
}

// counter reads a counter from the fixture registry. An optional label value
// selects the series of a vector; a missing series reads as zero.
func (f *fixture) counter(t *testing.T, name string, labelValue ...string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if len(labelValue) > 0 {
				matched := false
				for _, label := range m.GetLabel() {
					if label.GetValue() == labelValue[0] {
						matched = true
					}
				}
				if !matched {
					continue
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}
