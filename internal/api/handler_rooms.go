package api

import (
	"github.com/gin-gonic/gin"

	"conference-room-backend/internal/dto"
)

func (h *Handler) ListRooms(c *gin.Context) {
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	res, err := h.rooms.List(c.Request.Context(), withDeleted)
	respond(c, res, err)
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	res, err := h.rooms.Get(c.Request.Context(), id, withDeleted)
	respond(c, res, err)
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.rooms.Create(c.Request.Context(), req)
	respond(c, res, err)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.rooms.Update(c.Request.Context(), id, req)
	respond(c, res, err)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.rooms.Delete(c.Request.Context(), id)
	respond(c, res, err)
}
