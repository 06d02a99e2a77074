package catalog

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "catalog" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.Brand{},
		&models.CarModel{},
		&models.Trim{},
	}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	brandHandler := NewBrandHandler(NewBrandService(db))
	modelHandler := NewModelHandler(NewModelService(db))
	trimHandler := NewTrimHandler(NewTrimService(db))

	public.Get("/brands", brandHandler.ListBrands)
	public.Get("/brands/:slug", brandHandler.GetBrandBySlug)
	public.Get("/models", modelHandler.ListModels)
	public.Get("/trims", trimHandler.ListTrims)
	public.Get("/trims/:id", trimHandler.GetTrim)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	brandHandler := NewBrandHandler(NewBrandService(db))
	modelHandler := NewModelHandler(NewModelService(db))
	trimHandler := NewTrimHandler(NewTrimService(db))

	router.Post("/brands", brandHandler.CreateBrand)
	router.Put("/brands/:id", brandHandler.UpdateBrand)
	router.Delete("/brands/:id", brandHandler.DeleteBrand)

	router.Post("/models", modelHandler.CreateModel)
	router.Put("/models/:id", modelHandler.UpdateModel)
	router.Delete("/models/:id", modelHandler.DeleteModel)

	router.Post("/trims", trimHandler.CreateTrim)
	router.Put("/trims/:id", trimHandler.UpdateTrim)
	router.Delete("/trims/:id", trimHandler.DeleteTrim)
}

func (m *Module) RegisterBrandRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	modelHandler := NewModelHandler(NewModelService(db))
	trimHandler := NewTrimHandler(NewTrimService(db))

	// Brand console: same handlers, ownership enforced by the capability set
	// resolved in middleware.
	router.Get("/models", modelHandler.ListModels)
	router.Post("/models", modelHandler.CreateModel)
	router.Put("/models/:id", modelHandler.UpdateModel)
	router.Delete("/models/:id", modelHandler.DeleteModel)

	router.Get("/trims", trimHandler.ListTrims)
	router.Post("/trims", trimHandler.CreateTrim)
	router.Put("/trims/:id", trimHandler.UpdateTrim)
	router.Delete("/trims/:id", trimHandler.DeleteTrim)
}
