package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/handlers"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/middleware"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/seed"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	mods []modules.Module,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/session", authHandler.BridgeSession)

	// Protected auth routes get JWT middleware individually so the public
	// routes above stay open.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Global admin console (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", userHandler.ListUsers)
	admin.Put("/users/:user_id/role", userHandler.UpdateRole)
	admin.Post("/users/:user_id/brands/:brand_id", userHandler.GrantBrandAdmin)
	admin.Delete("/users/:user_id/brands/:brand_id", userHandler.RevokeBrandAdmin)
	admin.Post("/seed", func(c *fiber.Ctx) error {
		seeded, err := seed.Run(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Seeding failed"})
		}
		return c.JSON(fiber.Map{"seeded": seeded})
	})

	// Brand console (JWT + at least one brand grant)
	brand := api.Group("/brand", middleware.JWTProtected(cfg), middleware.BrandAccessRequired(db))

	// Authenticated user surface
	protected := api.Group("/p", middleware.JWTProtected(cfg))

	for _, m := range mods {
		m.RegisterRoutes(api, protected, db, cfg)
		if am, ok := m.(modules.AdminModule); ok {
			am.RegisterAdminRoutes(admin, db, cfg)
		}
		if bm, ok := m.(modules.BrandModule); ok {
			bm.RegisterBrandRoutes(brand, db, cfg)
		}
	}
}
