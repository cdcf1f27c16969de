package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"conference-room-backend/config"
	"conference-room-backend/internal/api"
	"conference-room-backend/internal/db"
	"conference-room-backend/internal/metrics"
	"conference-room-backend/internal/mw"
	"conference-room-backend/internal/service"
	"conference-room-backend/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("invalid log configuration: %v", err)
	}
	appLog := logger.WithField("component", "roomd")
	appLog.WithField("path", configPath).Info("configuration loaded")

	// Initialize database
	gormDB, err := db.Init(&cfg.Database, logger.WithField("component", "db"))
	if err != nil {
		appLog.WithError(err).Fatal("failed to initialize database")
	}
	if cfg.Database.Seed {
		if err := db.Seed(gormDB, time.Now(), logger.WithField("component", "seed")); err != nil {
			appLog.WithError(err).Fatal("failed to seed database")
		}
	}

	appStore := store.NewGormStore(gormDB)
	bookingMetrics := metrics.NewBookingMetrics()

	handler := api.NewHandler(
		service.NewUserService(appStore, logger.WithField("component", "service")),
		service.NewRoomService(appStore, logger.WithField("component", "service")),
		service.NewReservationService(appStore, bookingMetrics, logger.WithField("component", "service")),
	)

	if logger.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(handler, api.RouterConfig{
		Limiter: mw.NewIPRateLimiter(
			rate.Limit(cfg.Server.RateLimitPerSec),
			cfg.Server.RateLimitBurst,
			cfg.Server.LimiterIdle,
		),
		Gatherer:   prometheus.DefaultGatherer,
		HealthPing: appStore,
	}, logger.WithField("component", "api"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		appLog.Infof("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.WithError(err).Fatal("HTTP server ListenAndServe failed")
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	appLog.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("HTTP server shutdown failed")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			appLog.WithError(err).Warn("failed to close database")
		}
	}

	appLog.Info("server gracefully stopped")
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := log.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return logger, nil
}
