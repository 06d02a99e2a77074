package events

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "events" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.Event{},
		&models.Benefit{},
	}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	eventHandler := NewEventHandler(NewEventService(db))
	benefitHandler := NewBenefitHandler(NewBenefitService(db))

	public.Get("/events", eventHandler.ListEvents)

	// Benefits are owner perks, so listing them takes a session.
	protected.Get("/benefits", benefitHandler.ListBenefits)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	m.registerConsole(router, db)
}

func (m *Module) RegisterBrandRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	m.registerConsole(router, db)
}

// registerConsole wires the management surface shared by both consoles.
// Ownership is enforced in the services from the resolved capability set.
func (m *Module) registerConsole(router fiber.Router, db *gorm.DB) {
	eventHandler := NewEventHandler(NewEventService(db))
	benefitHandler := NewBenefitHandler(NewBenefitService(db))

	router.Get("/events", eventHandler.ListAllEvents)
	router.Post("/events", eventHandler.CreateEvent)
	router.Put("/events/:id", eventHandler.UpdateEvent)
	router.Delete("/events/:id", eventHandler.DeleteEvent)

	router.Get("/benefits", benefitHandler.ListAllBenefits)
	router.Post("/benefits", benefitHandler.CreateBenefit)
	router.Put("/benefits/:id", benefitHandler.UpdateBenefit)
	router.Delete("/benefits/:id", benefitHandler.DeleteBenefit)
}
