package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/config"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/handlers"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/activations"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/catalog"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/community"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/events"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/leads"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/reviews"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/savedcars"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/settings"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/services"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.BrandAdmin{},
		&models.SystemLog{},
		&models.Brand{},
		&models.CarModel{},
		&models.Trim{},
		&models.Lead{},
		&models.VehicleActivation{},
		&models.ReviewPost{},
		&models.Comment{},
		&models.Community{},
		&models.CommunityPost{},
		&models.Event{},
		&models.Benefit{},
		&models.SavedCar{},
		&models.SiteSetting{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		handlers.NewHealthHandler(),
		handlers.NewUserHandler(services.NewUserService(db)),
		[]modules.Module{
			catalog.New(),
			leads.New(),
			activations.New(),
			reviews.New(),
			community.New(),
			events.New(),
			savedcars.New(),
			settings.New(),
		},
	)
	return app, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Test User", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func signToken(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(cfg.JWTAccessExpiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func seedTrim(t *testing.T, db *gorm.DB) (*models.Brand, *models.Trim) {
	t.Helper()
	brand := models.Brand{Name: "Toyota", Slug: "toyota", IsActive: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	model := models.CarModel{BrandID: brand.ID, Name: "Corolla", Segment: models.SegmentSedan, IsActive: true}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("seed model: %v", err)
	}
	trim := models.Trim{ModelID: model.ID, BrandID: &brand.ID, Name: "Corolla XEI CVT", Slug: "corolla-xei-cvt", Price: 31990, IsActive: true}
	if err := db.Create(&trim).Error; err != nil {
		t.Fatalf("seed trim: %v", err)
	}
	return &brand, &trim
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestLeadCaptureSessionAttribution(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, trim := seedTrim(t, db)
	user := createUser(t, db, "ana@example.com", authz.RoleUser)

	body := fmt.Sprintf(`{"trim_id":%q,"name":"Ana","email":"ana@example.com"}`, trim.ID)
	resp := doRequest(t, app, http.MethodPost, "/api/leads", signToken(t, cfg, user), body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var lead models.Lead
	if err := db.First(&lead, "email = ?", "ana@example.com").Error; err != nil {
		t.Fatalf("load lead: %v", err)
	}
	if lead.UserID == nil || *lead.UserID != user.ID {
		t.Fatalf("expected lead attributed to %s, got %v", user.ID, lead.UserID)
	}

	// Anonymous submissions still succeed, unattributed.
	body = fmt.Sprintf(`{"trim_id":%q,"name":"Luis","email":"luis@example.com"}`, trim.ID)
	resp = doRequest(t, app, http.MethodPost, "/api/leads", "", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for anonymous lead, got %d", resp.StatusCode)
	}
	lead = models.Lead{}
	if err := db.First(&lead, "email = ?", "luis@example.com").Error; err != nil {
		t.Fatalf("load anonymous lead: %v", err)
	}
	if lead.UserID != nil {
		t.Fatalf("expected anonymous lead unattributed, got user_id %v", *lead.UserID)
	}

	// A garbage token degrades to anonymous rather than rejecting the lead.
	body = fmt.Sprintf(`{"trim_id":%q,"name":"Marta","email":"marta@example.com"}`, trim.ID)
	resp = doRequest(t, app, http.MethodPost, "/api/leads", "not-a-token", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 with invalid token, got %d", resp.StatusCode)
	}
	lead = models.Lead{}
	if err := db.First(&lead, "email = ?", "marta@example.com").Error; err != nil {
		t.Fatalf("load lead: %v", err)
	}
	if lead.UserID != nil {
		t.Fatalf("expected unattributed lead for invalid token, got user_id %v", *lead.UserID)
	}
}

func TestAdminConsoleGuards(t *testing.T) {
	app, db, cfg := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/admin/users", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	plain := createUser(t, db, "plain@example.com", authz.RoleUser)
	resp = doRequest(t, app, http.MethodGet, "/api/admin/users", signToken(t, cfg, plain), "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user, got %d", resp.StatusCode)
	}

	admin := createUser(t, db, "admin@example.com", authz.RoleAdmin)
	resp = doRequest(t, app, http.MethodGet, "/api/admin/users", signToken(t, cfg, admin), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
}

func TestBrandConsoleGuards(t *testing.T) {
	app, db, cfg := newTestApp(t)
	brand, _ := seedTrim(t, db)
	path := "/api/brand/leads/" + brand.ID.String() + "/stats"

	resp := doRequest(t, app, http.MethodGet, path, "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	plain := createUser(t, db, "plain@example.com", authz.RoleUser)
	resp = doRequest(t, app, http.MethodGet, path, signToken(t, cfg, plain), "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user, got %d", resp.StatusCode)
	}

	// A global admin without grants does not get the brand console.
	admin := createUser(t, db, "admin@example.com", authz.RoleAdmin)
	resp = doRequest(t, app, http.MethodGet, path, signToken(t, cfg, admin), "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for grant-less admin, got %d", resp.StatusCode)
	}

	granted := createUser(t, db, "brand@example.com", authz.RoleBrandAdmin)
	if err := db.Create(&models.BrandAdmin{UserID: granted.ID, BrandID: brand.ID}).Error; err != nil {
		t.Fatalf("create grant: %v", err)
	}
	resp = doRequest(t, app, http.MethodGet, path, signToken(t, cfg, granted), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for granted brand admin, got %d", resp.StatusCode)
	}
}
