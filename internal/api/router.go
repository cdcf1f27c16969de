package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"conference-room-backend/internal/mw"
)

// RouterConfig carries the HTTP knobs taken from configuration.
type RouterConfig struct {
	Limiter    *mw.IPRateLimiter
	Gatherer   prometheus.Gatherer
	HealthPing Pinger
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg RouterConfig, log *logrus.Entry) *gin.Engine {
	r := gin.New()
	r.Use(mw.RequestID(), mw.AccessLog(log.WithField("component", "http")), mw.Recovery(log))

	r.GET("/healthz", Health(cfg.HealthPing))
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// API group
	api := r.Group("/api")
	if cfg.Limiter != nil {
		api.Use(mw.RateLimiter(cfg.Limiter))
	}
	{
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)
		api.POST("/users", h.CreateUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.DELETE("/users/:id", h.DeleteUser)

		api.GET("/rooms", h.ListRooms)
		api.GET("/rooms/:id", h.GetRoom)
		api.POST("/rooms", h.CreateRoom)
		api.PUT("/rooms/:id", h.UpdateRoom)
		api.DELETE("/rooms/:id", h.DeleteRoom)

		api.GET("/reservations", h.ListReservations)
		api.GET("/reservations/:id", h.GetReservation)
		api.POST("/reservations", h.CreateReservation)
		api.PUT("/reservations/:id", h.UpdateReservation)
		api.DELETE("/reservations/:id", h.DeleteReservation)
	}

	return r
}
