package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"conference-room-backend/internal/dto"
	"conference-room-backend/internal/service"
)

// UserService is the user surface the handlers depend on.
type UserService interface {
	List(ctx context.Context, includeDeleted bool) (service.Result[[]dto.UserDTO], error)
	Get(ctx context.Context, id int64, includeDeleted bool) (service.Result[dto.UserDTO], error)
	Create(ctx context.Context, req dto.CreateUserRequest) (service.Result[dto.UserDTO], error)
	Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (service.Result[dto.UserDTO], error)
	Delete(ctx context.Context, id int64) (service.Result[bool], error)
}

// RoomService is the room surface the handlers depend on.
type RoomService interface {
	List(ctx context.Context, includeDeleted bool) (service.Result[[]dto.RoomDTO], error)
	Get(ctx context.Context, id int64, includeDeleted bool) (service.Result[dto.RoomDTO], error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (service.Result[dto.RoomDTO], error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (service.Result[dto.RoomDTO], error)
	Delete(ctx context.Context, id int64) (service.Result[bool], error)
}

// ReservationService is the reservation surface the handlers depend on.
type ReservationService interface {
	List(ctx context.Context, includeDeleted bool) (service.Result[[]dto.ReservationDTO], error)
	Get(ctx context.Context, id int64, includeDeleted bool) (service.Result[dto.ReservationDTO], error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (service.Result[dto.ReservationDTO], error)
	Update(ctx context.Context, id int64, req dto.UpdateReservationRequest) (service.Result[dto.ReservationDTO], error)
	Delete(ctx context.Context, id int64) (service.Result[bool], error)
}

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	users        UserService
	rooms        RoomService
	reservations ReservationService
}

// NewHandler creates a new API handler.
func NewHandler(users UserService, rooms RoomService, reservations ReservationService) *Handler {
	return &Handler{
		users:        users,
		rooms:        rooms,
		reservations: reservations,
	}
}

// respond writes Ok as 200 and Fail as 400. Unexpected errors are handed to
// mw.Recovery through c.Error.
func respond[T any](c *gin.Context, res service.Result[T], err error) {
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	if !res.IsSuccess() {
		badRequest(c, res.Message())
		return
	}
	c.JSON(http.StatusOK, res.Data())
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// pathID parses the :id segment. It writes the 400 itself when the segment is
// not an integer; unknown ids are left to the service's not-found message.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("Invalid id %q.", c.Param("id")))
		return 0, false
	}
	return id, true
}

// includeDeleted parses the optional includeDeleted query flag, defaulting to false.
func includeDeleted(c *gin.Context) (bool, bool) {
	raw, present := c.GetQuery("includeDeleted")
	if !present || raw == "" {
		return false, true
	}
	flag, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, fmt.Sprintf("Invalid includeDeleted value %q.", raw))
		return false, false
	}
	return flag, true
}

// bindJSON decodes the body into req and writes the 400 itself on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err.Error())
		return false
	}
	return true
}
