package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

// BrandAccessRequired gates the brand console. The caller must be an
// authenticated brand_admin holding at least one brand grant. A global admin
// without grants is still rejected here: the admin and brand consoles are
// separate surfaces.
func BrandAccessRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var grants []models.BrandAdmin
		if err := db.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to resolve brand access",
			})
		}

		perms := authz.Resolve(&user, grants)
		if len(perms.Brands) == 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Brand admin access required",
			})
		}

		authctx.SetPermissions(c, perms)
		return c.Next()
	}
}
