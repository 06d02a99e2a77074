package settings

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "settings" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.SiteSetting{},
	}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewSettingHandler(NewSettingService(db))

	public.Get("/settings", handler.GetSettings)
	public.Get("/settings/:key", handler.GetSetting)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewSettingHandler(NewSettingService(db))

	router.Put("/settings/:key", handler.SetSetting)
	router.Delete("/settings/:key", handler.DeleteSetting)
}
