package reviews

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "reviews" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.ReviewPost{},
		&models.Comment{},
	}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewReviewHandler(NewReviewService(db))

	public.Get("/reviews", handler.ListPublished)
	public.Get("/reviews/:slug", handler.GetBySlug)

	protected.Post("/reviews", handler.Create)
	protected.Put("/reviews/:id", handler.Update)
	protected.Delete("/reviews/:id", handler.Delete)
	protected.Post("/reviews/:id/comments", handler.AddComment)
	protected.Delete("/comments/:comment_id", handler.DeleteComment)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewReviewHandler(NewReviewService(db))

	router.Put("/reviews/:id/publish", handler.Publish)
	router.Put("/reviews/:id", handler.Update)
	router.Delete("/reviews/:id", handler.Delete)
	router.Delete("/comments/:comment_id", handler.DeleteComment)
}
