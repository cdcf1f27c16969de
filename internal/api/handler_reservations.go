package api

import (
	"github.com/gin-gonic/gin"

	"conference-room-backend/internal/dto"
)

// ListReservations handles GET /api/reservations.
func (h *Handler) ListReservations(c *gin.Context) {
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	res, err := h.reservations.List(c.Request.Context(), withDeleted)
	respond(c, res, err)
}

// GetReservation handles GET /api/reservations/:id.
func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	withDeleted, ok := includeDeleted(c)
	if !ok {
		return
	}
	res, err := h.reservations.Get(c.Request.Context(), id, withDeleted)
	respond(c, res, err)
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.reservations.Create(c.Request.Context(), req)
	respond(c, res, err)
}

// UpdateReservation handles PUT /api/reservations/:id.
func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.reservations.Update(c.Request.Context(), id, req)
	respond(c, res, err)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *Handler) DeleteReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.reservations.Delete(c.Request.Context(), id)
	respond(c, res, err)
}
