package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authctx"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

// AdminRequired gates the global admin console. It accepts:
// 1. The config-based bootstrap token / email allowlist
// 2. A user whose resolved capability set carries platform management
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			authctx.SetPermissions(c, authz.Permissions{Authenticated: true, ManagePlatform: true, Moderate: true})
			return c.Next()
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, email) {
			authctx.SetPermissions(c, authz.Permissions{Authenticated: true, ManagePlatform: true, Moderate: true})
			return c.Next()
		}

		sub, _ := claims["sub"].(string)
		if sub != "" {
			if userID, err := uuid.Parse(sub); err == nil {
				var user models.User
				if err := db.First(&user, "id = ?", userID).Error; err == nil {
					perms := authz.Resolve(&user, nil)
					if perms.ManagePlatform {
						authctx.SetPermissions(c, perms)
						return c.Next()
					}
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
