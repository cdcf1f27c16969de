package api

import (
	"github.com/gin-gonic/gin"

	"conference-room-backend/internal/dto"
)

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(c *gin.Context) {
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	res, err := h.users.List(c.Request.Context(), withDeleted)
	respond(c, res, err)
}

// GetUser handles GET /api/users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	res, err := h.users.Get(c.Request.Context(), id, withDeleted)
	respond(c, res, err)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.users.Create(c.Request.Context(), req)
	respond(c, res, err)
}

// UpdateUser handles PUT /api/users/:id.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.users.Update(c.Request.Context(), id, req)
	respond(c, res, err)
}

// DeleteUser handles DELETE /api/users/:id.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.users.Delete(c.Request.Context(), id)
	respond(c, res, err)
}
