package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/database"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/handlers"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/logging"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/middleware"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/activations"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/catalog"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/community"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/events"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/leads"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/reviews"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/savedcars"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/settings"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/routes"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/seed"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Domain modules
	mods := []modules.Module{
		catalog.New(),
		leads.New(),
		activations.New(),
		reviews.New(),
		community.New(),
		events.New(),
		savedcars.New(),
		settings.New(),
	}

	// Migrate module tables
	for _, m := range mods {
		if entities := m.Models(); len(entities) > 0 {
			if err := database.MigrateModels(entities); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(entities))
		}
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanout(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(userService)

	// Site settings get their defaults before the first request.
	if err := settings.NewSettingService(database.DB).SeedDefaults(); err != nil {
		slog.Error("settings seed failed", "error", err)
		os.Exit(1)
	}

	if cfg.SeedOnBoot {
		seeded, err := seed.Run(database.DB)
		if err != nil {
			slog.Error("demo seed failed", "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("demo data seeded")
		}
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, userHandler, mods)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
