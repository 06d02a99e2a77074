package community

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "community" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.Community{},
		&models.CommunityPost{},
	}
}

func (m *Module) RegisterRoutes(public fiber.Router, protected fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCommunityHandler(NewCommunityService(db))

	public.Get("/communities", handler.ListCommunities)
	public.Get("/communities/:slug", handler.GetBySlug)

	protected.Post("/communities/:id/posts", handler.CreatePost)
	protected.Delete("/community-posts/:post_id", handler.DeletePost)
}

func (m *Module) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCommunityHandler(NewCommunityService(db))

	router.Post("/communities", handler.CreateCommunity)
	router.Put("/communities/:id", handler.UpdateCommunity)
	router.Delete("/communities/:id", handler.DeleteCommunity)
	router.Delete("/community-posts/:post_id", handler.DeletePost)
}
