package leads

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/middleware"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "leads" }

func (m *Module) Models() []interface{} {
	return []interface{}{&models.Lead{}}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewLeadHandler(NewLeadService(db))

	// Lead capture is open to anonymous visitors; a valid session token
	// attributes the lead to the caller.
	public.Post("/leads", middleware.JWTSoft(cfg), handler.CreateLead)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewLeadHandler(NewLeadService(db))

	router.Get("/leads", handler.ListLeads)
	router.Put("/leads/:id/status", handler.UpdateStatus)
	router.Get("/leads/brand/:brand_id/recent", handler.ListRecentByBrand)
	router.Get("/leads/brand/:brand_id/stats", handler.StatsByBrand)
}

func (m *Module) RegisterBrandRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewLeadHandler(NewLeadService(db))

	router.Get("/leads/:brand_id/recent", handler.ListRecentByBrand)
	router.Get("/leads/:brand_id/new-count", handler.CountNewByBrand)
	router.Get("/leads/:brand_id/stats", handler.StatsByBrand)
	router.Put("/leads/:id/status", handler.UpdateStatus)
}
