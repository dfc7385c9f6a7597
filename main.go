package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"sangamam/backend/config"
	"sangamam/backend/handlers"
	"sangamam/backend/internal/store"
	"sangamam/backend/middleware"
	"sangamam/backend/utils"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)

	st := store.New(store.Options{
		SupabaseURL:          cfg.SupabaseURL,
		SupabaseKey:          cfg.SupabaseKey,
		Schema:               cfg.DBSchema,
		DataDir:              cfg.DataDir,
		ProjectsFileFallback: cfg.ProjectsFileFallback,
	}, log)

	h := handlers.NewApplicationHandler(st, cfg, log)
	admin := middleware.AdminAuth(cfg.AdminUsername, cfg.AdminPassword, log)

	app := fiber.New(fiber.Config{
		// Just above the 5 MiB upload cap so the handler can answer size
		// violations itself instead of the framework cutting the body off.
		BodyLimit: 8 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				code = ferr.Code
			}
			if code >= fiber.StatusInternalServerError {
				return utils.RespondWithError(c, code, "An internal error occurred")
			}
			return utils.RespondWithError(c, code, err.Error())
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(log))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Sangamam backend is healthy",
		})
	})

	handlers.RegisterRoutes(app, h, admin)

	// Locally stored uploads are served straight from disk.
	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	heartbeat := startHeartbeat(cfg.HeartbeatCron, st, log)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithField("error", err.Error()).Fatal("Server stopped")
		}
	}()
	log.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"provider": st.Provider(),
	}).Info("Sangamam backend listening")

	// Wait here until CTRL-C or other term signal is received.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-quit

	log.Info("Shutting down gracefully")
	if heartbeat != nil {
		heartbeat.Stop()
	}
	if err := app.Shutdown(); err != nil {
		log.WithField("error", err.Error()).Error("Shutdown failed")
	}
	log.Info("Shutdown complete")
}

// startHeartbeat schedules a periodic log line with the backend health
// triple. An empty schedule disables it; a bad one is logged and ignored.
func startHeartbeat(schedule string, st store.Store, log *logrus.Logger) *cron.Cron {
	if schedule == "" {
		return nil
	}
	heartbeat := cron.New()
	_, err := heartbeat.AddFunc(schedule, func() {
		health := st.Health()
		log.WithFields(logrus.Fields{
			"connected": health.Connected,
			"provider":  health.Provider,
			"count":     health.Count,
		}).Info("Heartbeat")
	})
	if err != nil {
		log.WithFields(logrus.Fields{
			"schedule": schedule,
			"error":    err.Error(),
		}).Warn("Invalid heartbeat schedule, heartbeat disabled")
		return nil
	}
	heartbeat.Start()
	return heartbeat
}
