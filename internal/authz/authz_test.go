package authz

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

func TestResolve(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	brandA := uuid.New()
	brandB := uuid.New()

	tests := []struct {
		name       string
		user       *models.User
		grants     []models.BrandAdmin
		wantAuth   bool
		wantVerif  bool
		wantPlat   bool
		wantMod    bool
		wantBrands int
	}{
		{
			name: "nil user is anonymous",
		},
		{
			name:     "regular user",
			user:     &models.User{ID: userID, Role: RoleUser},
			wantAuth: true,
		},
		{
			name:      "verified user",
			user:      &models.User{ID: userID, Role: RoleVerifiedUser},
			wantAuth:  true,
			wantVerif: true,
		},
		{
			name:      "admin gets platform and moderation but no brands",
			user:      &models.User{ID: userID, Role: RoleAdmin},
			grants:    []models.BrandAdmin{{UserID: userID, BrandID: brandA}},
			wantAuth:  true,
			wantVerif: true,
			wantPlat:  true,
			wantMod:   true,
		},
		{
			name: "brand admin collects own grants only",
			user: &models.User{ID: userID, Role: RoleBrandAdmin},
			grants: []models.BrandAdmin{
				{UserID: userID, BrandID: brandA},
				{UserID: userID, BrandID: brandB},
				{UserID: otherID, BrandID: brandA},
			},
			wantAuth:   true,
			wantBrands: 2,
		},
		{
			name:     "brand admin with no grants manages nothing",
			user:     &models.User{ID: userID, Role: RoleBrandAdmin},
			wantAuth: true,
		},
		{
			name:     "grants are ignored for non brand-admin roles",
			user:     &models.User{ID: userID, Role: RoleUser},
			grants:   []models.BrandAdmin{{UserID: userID, BrandID: brandA}},
			wantAuth: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.user, tt.grants)
			if got.Authenticated != tt.wantAuth {
				t.Errorf("Authenticated = %v, want %v", got.Authenticated, tt.wantAuth)
			}
			if got.Verified != tt.wantVerif {
				t.Errorf("Verified = %v, want %v", got.Verified, tt.wantVerif)
			}
			if got.ManagePlatform != tt.wantPlat {
				t.Errorf("ManagePlatform = %v, want %v", got.ManagePlatform, tt.wantPlat)
			}
			if got.Moderate != tt.wantMod {
				t.Errorf("Moderate = %v, want %v", got.Moderate, tt.wantMod)
			}
			if len(got.Brands) != tt.wantBrands {
				t.Errorf("len(Brands) = %d, want %d", len(got.Brands), tt.wantBrands)
			}
		})
	}
}

func TestCanManageBrand(t *testing.T) {
	brandA := uuid.New()
	brandB := uuid.New()

	p := Permissions{Brands: []uuid.UUID{brandA}}
	if !p.CanManageBrand(brandA) {
		t.Error("expected access to granted brand")
	}
	if p.CanManageBrand(brandB) {
		t.Error("expected no access to ungranted brand")
	}

	empty := Permissions{}
	if empty.CanManageBrand(brandA) {
		t.Error("empty permission set must not manage any brand")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleVisitor, RoleUser, RoleVerifiedUser, RoleBrandAdmin, RoleAdmin} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "root", "superadmin", "ADMIN"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}
