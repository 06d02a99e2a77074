package activations

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "activations" }

func (m *Module) Models() []interface{} {
	return []interface{}{&models.VehicleActivation{}}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewActivationHandler(NewActivationService(db))

	protected.Post("/activations", handler.Submit)
	protected.Get("/activations", handler.ListMine)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewActivationHandler(NewActivationService(db))

	router.Get("/activations", handler.List)
	router.Put("/activations/:id/verify", handler.Verify)
	router.Put("/activations/:id/reject", handler.Reject)
}

func (m *Module) RegisterBrandRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewActivationHandler(NewActivationService(db))

	router.Get("/activations", handler.List)
	router.Put("/activations/:id/verify", handler.Verify)
	router.Put("/activations/:id/reject", handler.Reject)
}
