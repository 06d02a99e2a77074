package savedcars

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "savedcars" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.SavedCar{},
	}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewSavedCarHandler(NewSavedCarService(db))

	protected.Get("/saved-cars", handler.ListSavedCars)
	protected.Post("/saved-cars/:trim_id", handler.SaveCar)
	protected.Delete("/saved-cars/:trim_id", handler.UnsaveCar)
}
