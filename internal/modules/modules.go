// Package modules defines the interface every domain module of the
// marketplace implements. Modules own their entity tables and mount their
// routes on the public site, the authenticated user surface, the global
// admin console and the brand console.
package modules

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
)

// Module is the base interface for a domain module.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the GORM model pointers the module owns, for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts routes. public has no auth middleware; protected
	// has JWT middleware applied.
	RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminModule extends Module with global admin console routes. The group has
// JWT and admin middleware applied.
type AdminModule interface {
	Module

	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// BrandModule extends Module with brand console routes. The group has JWT
// and brand-access middleware applied; handlers read the caller's brand
// grants from the request context.
type BrandModule interface {
	Module

	RegisterBrandRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
