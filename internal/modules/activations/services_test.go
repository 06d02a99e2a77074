package activations

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.VehicleActivation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedClaimant(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Email: "owner@example.com", Name: "Owner", Role: authz.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func TestSubmitStartsPending(t *testing.T) {
	db := newTestDB(t)
	user := seedClaimant(t, db)
	svc := NewActivationService(db)

	activation, err := svc.Submit(user.ID, &SubmitActivationRequest{
		BrandID: uuid.New(),
		ModelID: uuid.New(),
		VIN:     "9BWZZZ377VT004251",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if activation.Status != models.ActivationStatusPending {
		t.Errorf("status = %q, want %q", activation.Status, models.ActivationStatusPending)
	}
	if activation.VerifiedBy != nil || activation.VerifiedAt != nil {
		t.Error("fresh activation must carry no decision audit fields")
	}

	if _, err := svc.Submit(user.ID, &SubmitActivationRequest{}); !errors.Is(err, ErrVINRequired) {
		t.Errorf("empty VIN = %v, want ErrVINRequired", err)
	}
}

func TestVerifyRecordsAuditAndPromotes(t *testing.T) {
	db := newTestDB(t)
	user := seedClaimant(t, db)
	svc := NewActivationService(db)
	admin := authz.Permissions{Authenticated: true, ManagePlatform: true}

	activation, err := svc.Submit(user.ID, &SubmitActivationRequest{BrandID: uuid.New(), VIN: "9BWZZZ377VT004251"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	verifierID := uuid.New()
	decided, err := svc.Verify(activation.ID, verifierID, "papers checked", admin)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if decided.Status != models.ActivationStatusVerified {
		t.Errorf("status = %q, want %q", decided.Status, models.ActivationStatusVerified)
	}
	if decided.VerifiedBy == nil || *decided.VerifiedBy != verifierID {
		t.Errorf("VerifiedBy = %v, want %s", decided.VerifiedBy, verifierID)
	}
	if decided.VerifiedAt == nil {
		t.Error("VerifiedAt not set")
	}
	if decided.Notes != "papers checked" {
		t.Errorf("Notes = %q", decided.Notes)
	}

	var reloaded models.User
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Role != authz.RoleVerifiedUser {
		t.Errorf("claimant role = %q, want %q", reloaded.Role, authz.RoleVerifiedUser)
	}
}

func TestRejectDoesNotPromote(t *testing.T) {
	db := newTestDB(t)
	user := seedClaimant(t, db)
	svc := NewActivationService(db)
	admin := authz.Permissions{Authenticated: true, ManagePlatform: true}

	activation, err := svc.Submit(user.ID, &SubmitActivationRequest{BrandID: uuid.New(), VIN: "9BWZZZ377VT004251"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.Reject(activation.ID, uuid.New(), "vin mismatch", admin); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Role != authz.RoleUser {
		t.Errorf("claimant role = %q, want %q", reloaded.Role, authz.RoleUser)
	}
}

func TestBrandScopedDecisions(t *testing.T) {
	db := newTestDB(t)
	user := seedClaimant(t, db)
	svc := NewActivationService(db)

	brandID := uuid.New()
	activation, err := svc.Submit(user.ID, &SubmitActivationRequest{BrandID: brandID, VIN: "9BWZZZ377VT004251"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	outsider := authz.Permissions{Authenticated: true, Brands: []uuid.UUID{uuid.New()}}
	if _, err := svc.Verify(activation.ID, uuid.New(), "", outsider); !errors.Is(err, ErrBrandForbidden) {
		t.Errorf("outsider Verify = %v, want ErrBrandForbidden", err)
	}

	owner := authz.Permissions{Authenticated: true, Brands: []uuid.UUID{brandID}}
	if _, err := svc.Verify(activation.ID, uuid.New(), "", owner); err != nil {
		t.Errorf("owner Verify: %v", err)
	}

	if _, err := svc.List("", outsider); err != nil {
		t.Errorf("scoped List: %v", err)
	}
	listed, err := svc.List(models.ActivationStatusVerified, owner)
	if err != nil {
		t.Fatalf("owner List: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("owner sees %d activations, want 1", len(listed))
	}
}
