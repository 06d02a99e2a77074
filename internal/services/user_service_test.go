package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

func seedUserAndBrands(t *testing.T, db *gorm.DB) (*models.User, *models.Brand, *models.Brand) {
	t.Helper()

	user := models.User{Email: "ana@example.com", Name: "Ana", Role: authz.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	brandA := models.Brand{Name: "Toyota", Slug: "toyota", IsActive: true}
	if err := db.Create(&brandA).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	brandB := models.Brand{Name: "Chevrolet", Slug: "chevrolet", IsActive: true}
	if err := db.Create(&brandB).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return &user, &brandA, &brandB
}

func TestUpdateRoleValidation(t *testing.T) {
	db := newTestDB(t)
	user, _, _ := seedUserAndBrands(t, db)
	svc := NewUserService(db)

	if _, err := svc.UpdateRole(user.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("unknown role = %v, want ErrInvalidRole", err)
	}

	updated, err := svc.UpdateRole(user.ID, authz.RoleVerifiedUser)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != authz.RoleVerifiedUser {
		t.Errorf("role = %q, want %q", updated.Role, authz.RoleVerifiedUser)
	}
}

func TestGrantAndRevokeBrandAdmin(t *testing.T) {
	db := newTestDB(t)
	user, brandA, brandB := seedUserAndBrands(t, db)
	svc := NewUserService(db)

	if _, err := svc.GrantBrandAdmin(&dto.GrantBrandAdminRequest{UserID: user.ID, BrandID: brandA.ID}); err != nil {
		t.Fatalf("grant A: %v", err)
	}
	if _, err := svc.GrantBrandAdmin(&dto.GrantBrandAdminRequest{UserID: user.ID, BrandID: brandB.ID}); err != nil {
		t.Fatalf("grant B: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Role != authz.RoleBrandAdmin {
		t.Errorf("role after grant = %q, want %q", reloaded.Role, authz.RoleBrandAdmin)
	}

	if _, err := svc.GrantBrandAdmin(&dto.GrantBrandAdminRequest{UserID: user.ID, BrandID: brandA.ID}); !errors.Is(err, ErrAlreadyGrants) {
		t.Errorf("duplicate grant = %v, want ErrAlreadyGrants", err)
	}

	// Revoking one of two grants keeps the role.
	if err := svc.RevokeBrandAdmin(user.ID, brandA.ID); err != nil {
		t.Fatalf("revoke A: %v", err)
	}
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Role != authz.RoleBrandAdmin {
		t.Errorf("role after partial revoke = %q, want %q", reloaded.Role, authz.RoleBrandAdmin)
	}

	// Revoking the last grant demotes back to user.
	if err := svc.RevokeBrandAdmin(user.ID, brandB.ID); err != nil {
		t.Fatalf("revoke B: %v", err)
	}
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Role != authz.RoleUser {
		t.Errorf("role after full revoke = %q, want %q", reloaded.Role, authz.RoleUser)
	}
}

func TestGrantDoesNotDemoteAdmin(t *testing.T) {
	db := newTestDB(t)
	user, brandA, _ := seedUserAndBrands(t, db)
	svc := NewUserService(db)

	if _, err := svc.UpdateRole(user.ID, authz.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if _, err := svc.GrantBrandAdmin(&dto.GrantBrandAdminRequest{UserID: user.ID, BrandID: brandA.ID}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Role != authz.RoleAdmin {
		t.Errorf("role = %q, want %q (grant must not change an admin's role)", reloaded.Role, authz.RoleAdmin)
	}
}
