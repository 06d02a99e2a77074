package services

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/dto"
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
	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Brand{}, &models.BrandAdmin{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret", Name: "Ana"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair not issued")
	}
	if resp.User.Role != authz.RoleUser {
		t.Errorf("role = %q, want %q", resp.User.Role, authz.RoleUser)
	}

	if _, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "supersecret"}); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestBridgeSessionUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	first, err := svc.BridgeSession(&dto.ProviderSessionRequest{
		ProviderID: "prov|123",
		Email:      "ana@example.com",
		Name:       "Ana",
	})
	if err != nil {
		t.Fatalf("first BridgeSession: %v", err)
	}
	if first.User.Role != authz.RoleUser {
		t.Errorf("role = %q, want %q", first.User.Role, authz.RoleUser)
	}

	// Same provider id with refreshed profile must reuse the user row.
	second, err := svc.BridgeSession(&dto.ProviderSessionRequest{
		ProviderID: "prov|123",
		Email:      "ana@example.com",
		Name:       "Ana García",
		AvatarURL:  "https://cdn.example.com/ana.png",
	})
	if err != nil {
		t.Fatalf("second BridgeSession: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("user recreated: %s != %s", second.User.ID, first.User.ID)
	}
	if second.User.Name != "Ana García" {
		t.Errorf("name not refreshed: %q", second.User.Name)
	}
	if second.User.AvatarURL != "https://cdn.example.com/ana.png" {
		t.Errorf("avatar not refreshed: %q", second.User.AvatarURL)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}

	if _, err := svc.BridgeSession(&dto.ProviderSessionRequest{}); !errors.Is(err, ErrProviderIDRequired) {
		t.Errorf("empty provider id = %v, want ErrProviderIDRequired", err)
	}
}

func TestBridgeSessionDoesNotTouchRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	first, err := svc.BridgeSession(&dto.ProviderSessionRequest{ProviderID: "prov|9", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("BridgeSession: %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", first.User.ID).Update("role", authz.RoleAdmin).Error; err != nil {
		t.Fatalf("promote: %v", err)
	}

	again, err := svc.BridgeSession(&dto.ProviderSessionRequest{ProviderID: "prov|9", Email: "admin@example.com", Name: "Root"})
	if err != nil {
		t.Fatalf("BridgeSession again: %v", err)
	}
	if again.User.Role != authz.RoleAdmin {
		t.Errorf("role after re-bridge = %q, want %q", again.User.Role, authz.RoleAdmin)
	}
}

func TestRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.RefreshToken == resp.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The consumed token is revoked and cannot be replayed.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("replayed token = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "ana@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh after logout = %v, want ErrInvalidToken", err)
	}
}
