// Package authctx extracts the caller's identity and resolved capability set
// from the Fiber request context.
package authctx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
)

const permsKey = "perms"

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// SetPermissions stores the resolved capability set for downstream handlers.
func SetPermissions(c *fiber.Ctx, p authz.Permissions) {
	c.Locals(permsKey, p)
}

// GetPermissions returns the capability set resolved by the guard middleware.
// Routes without a guard see an empty (anonymous) set.
func GetPermissions(c *fiber.Ctx) authz.Permissions {
	if p, ok := c.Locals(permsKey).(authz.Permissions); ok {
		return p
	}
	return authz.Permissions{}
}
