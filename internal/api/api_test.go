package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"conference-room-backend/internal/db"
	"conference-room-backend/internal/dto"
	"conference-room-backend/internal/metrics"
	"conference-room-backend/internal/mw"
	"conference-room-backend/internal/service"
	"conference-room-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// setupRouter wires the real services over a throwaway sqlite database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "api.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	registry := prometheus.NewRegistry()
	log := quietLog()
	h := NewHandler(
		service.NewUserService(s, log),
		service.NewRoomService(s, log),
		service.NewReservationService(s, metrics.NewBookingMetricsWithRegisterer(registry), log),
	)
	return NewRouter(h, RouterConfig{Gatherer: registry, HealthPing: s}, log)
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// slot returns a whole-hour window two days from now, clear of any same-day rule.
func slot(hour int) (time.Time, time.Time) {
	base := time.Now().UTC().Truncate(24 * time.Hour).Add(48 * time.Hour)
	start := base.Add(time.Duration(hour) * time.Hour)
	return start, start.Add(time.Hour)
}

func TestUsersEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/users", gin.H{"firstName": "Alice", "lastName": "Johnson"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode[dto.UserDTO](t, w)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, []dto.ReservationDTO{}, user.Reservations)

	path := fmt.Sprintf("/api/users/%d", user.ID)

	w = doJSON(r, http.MethodPut, path, gin.H{"firstName": "Alicia", "lastName": "Johnson"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alicia", decode[dto.UserDTO](t, w).FirstName)

	w = doJSON(r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())

	w = doJSON(r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"error":"User with id %d not found."}`, user.ID), w.Body.String())

	w = doJSON(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, path+"?includeDeleted=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.UserDTO](t, w).Deleted)

	w = doJSON(r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]dto.UserDTO](t, w))
}

func TestReservationsEndpoints(t *testing.T) {
	r := setupRouter(t)

	alice := decode[dto.UserDTO](t, doJSON(r, http.MethodPost, "/api/users", gin.H{"firstName": "Alice", "lastName": "Johnson"}))
	bob := decode[dto.UserDTO](t, doJSON(r, http.MethodPost, "/api/users", gin.H{"firstName": "Bob", "lastName": "Smith"}))
	alpha := decode[dto.RoomDTO](t, doJSON(r, http.MethodPost, "/api/rooms", gin.H{"name": "Alpha", "capacity": 6}))
	beta := decode[dto.RoomDTO](t, doJSON(r, http.MethodPost, "/api/rooms", gin.H{"name": "Beta", "capacity": 10}))

	start, end := slot(10)
	w := doJSON(r, http.MethodPost, "/api/reservations", gin.H{
		"userId": alice.ID, "roomId": alpha.ID, "startTime": start, "endTime": end,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[dto.ReservationDTO](t, w)
	assert.Equal(t, "Alice Johnson", created.UserName)
	assert.Equal(t, "Alpha", created.RoomName)

	half := 30 * time.Minute
	testCases := []struct {
		name     string
		body     gin.H
		expected string
	}{
		{
			name:     "room conflict",
			body:     gin.H{"userId": bob.ID, "roomId": alpha.ID, "startTime": start.Add(half), "endTime": end.Add(half)},
			expected: "This room is already booked during the selected time.",
		},
		{
			name:     "user conflict",
			body:     gin.H{"userId": alice.ID, "roomId": beta.ID, "startTime": start.Add(half), "endTime": end.Add(half)},
			expected: "User already has a reservation during this time.",
		},
		{
			name:     "inverted window",
			body:     gin.H{"userId": bob.ID, "roomId": beta.ID, "startTime": end, "endTime": start},
			expected: "EndTime must be after StartTime.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/reservations", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.expected), w.Body.String())
		})
	}

	path := fmt.Sprintf("/api/reservations/%d", created.ID)
	newStart, newEnd := slot(14)
	w = doJSON(r, http.MethodPut, path, gin.H{"startTime": newStart, "endTime": newEnd})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[dto.ReservationDTO](t, w).StartTime.Equal(newStart))

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodDelete, path, nil).Code)

	w = doJSON(r, http.MethodGet, path+"?includeDeleted=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decode[dto.ReservationDTO](t, w)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, "Deleted", string(deleted.Status))

	metricsBody := doJSON(r, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, metricsBody, "roomd_reservations_created_total 1")
	assert.Contains(t, metricsBody, `roomd_reservation_rejections_total{reason="room_overlap"} 1`)
}

func TestReservationAcceptsOffsetLessTimes(t *testing.T) {
	r := setupRouter(t)
	alice := decode[dto.UserDTO](t, doJSON(r, http.MethodPost, "/api/users", gin.H{"firstName": "Alice", "lastName": "Johnson"}))
	alpha := decode[dto.RoomDTO](t, doJSON(r, http.MethodPost, "/api/rooms", gin.H{"name": "Alpha", "capacity": 6}))

	start, end := slot(9)
	const layout = "2006-01-02T15:04:05"
	w := doJSON(r, http.MethodPost, "/api/reservations", gin.H{
		"userId": alice.ID, "roomId": alpha.ID,
		"startTime": start.Format(layout), "endTime": end.Format(layout),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[dto.ReservationDTO](t, w)
	assert.True(t, created.StartTime.Equal(start))
	assert.True(t, created.EndTime.Equal(end))
}

func TestMalformedInput(t *testing.T) {
	r := setupRouter(t)

	testCases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "non-numeric id", method: http.MethodGet, path: "/api/rooms/abc"},
		{name: "fractional id", method: http.MethodDelete, path: "/api/users/1.5"},
		{name: "bad includeDeleted", method: http.MethodGet, path: "/api/reservations?includeDeleted=maybe"},
		{name: "missing body", method: http.MethodPost, path: "/api/users"},
		{name: "missing field", method: http.MethodPost, path: "/api/users", body: gin.H{"firstName": "Alice"}},
		{name: "zero capacity", method: http.MethodPost, path: "/api/rooms", body: gin.H{"name": "Tiny", "capacity": 0}},
		{name: "unparsable time", method: http.MethodPost, path: "/api/reservations", body: gin.H{
			"userId": 1, "roomId": 1, "startTime": "tomorrow", "endTime": "later",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestNonPositiveIDsAreMisses(t *testing.T) {
	r := setupRouter(t)

	testCases := []struct {
		method   string
		path     string
		body     any
		expected string
	}{
		{method: http.MethodGet, path: "/api/users/0", expected: "User with id 0 not found."},
		{method: http.MethodDelete, path: "/api/rooms/-1", expected: "Room with id -1 not found."},
		{method: http.MethodPut, path: "/api/users/0", body: gin.H{"firstName": "A", "lastName": "B"}, expected: "User with id 0 not found."},
		{method: http.MethodGet, path: "/api/reservations/0?includeDeleted=true", expected: "Reservation with id 0 not found."},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := doJSON(r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.expected), w.Body.String())
		})
	}
}

type failingRooms struct{ RoomService }

func (failingRooms) List(context.Context, bool) (service.Result[[]dto.RoomDTO], error) {
	return service.Result[[]dto.RoomDTO]{}, errors.New("connection refused")
}

func (failingRooms) Get(context.Context, int64, bool) (service.Result[dto.RoomDTO], error) {
	panic("nil room")
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

func TestUnexpectedErrors(t *testing.T) {
	h := NewHandler(nil, failingRooms{}, nil)
	r := NewRouter(h, RouterConfig{HealthPing: failingPinger{}}, quietLog())

	for _, path := range []string{"/api/rooms", "/api/rooms/1"} {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"`+mw.InternalErrorMessage+`"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "connection refused")
	}

	w := doJSON(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
