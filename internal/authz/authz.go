// Package authz resolves a user's effective capabilities. Every guard in the
// API (route middleware and per-mutation ownership checks) goes through
// Resolve, so the rules live in exactly one place.
package authz

import (
	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

// Roles in ascending order of privilege.
const (
	RoleVisitor      = "visitor"
	RoleUser         = "user"
	RoleVerifiedUser = "verified_user"
	RoleBrandAdmin   = "brand_admin"
	RoleAdmin        = "admin"
)

var roleWeight = map[string]int{
	RoleVisitor:      1,
	RoleUser:         2,
	RoleVerifiedUser: 3,
	RoleBrandAdmin:   4,
	RoleAdmin:        5,
}

// Permissions is the typed capability set for one caller.
type Permissions struct {
	Authenticated  bool
	Verified       bool
	ManagePlatform bool // global admin console
	Moderate       bool // content moderation (admin)
	// Brands the caller may manage through the brand console. Populated from
	// brand_admins grants only; a global admin does not implicitly manage
	// every brand; the two consoles are separate surfaces.
	Brands []uuid.UUID
}

// Resolve computes the capability set for a user and their brand grants.
// A nil user is an anonymous visitor with no capabilities.
func Resolve(user *models.User, grants []models.BrandAdmin) Permissions {
	if user == nil {
		return Permissions{}
	}

	p := Permissions{Authenticated: true}

	switch user.Role {
	case RoleAdmin:
		p.ManagePlatform = true
		p.Moderate = true
		p.Verified = true
	case RoleVerifiedUser:
		p.Verified = true
	}

	if user.Role == RoleBrandAdmin {
		for _, g := range grants {
			if g.UserID == user.ID {
				p.Brands = append(p.Brands, g.BrandID)
			}
		}
	}

	return p
}

// CanManageBrand reports whether the caller holds a grant for the brand.
func (p Permissions) CanManageBrand(brandID uuid.UUID) bool {
	for _, id := range p.Brands {
		if id == brandID {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	_, ok := roleWeight[role]
	return ok
}
