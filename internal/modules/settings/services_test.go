package settings

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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
	if err := db.AutoMigrate(&models.SiteSetting{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSetUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(db)

	if _, err := svc.Set("", "x"); !errors.Is(err, ErrKeyRequired) {
		t.Errorf("empty key = %v, want ErrKeyRequired", err)
	}

	created, err := svc.Set("site_name", "Car Connect")
	if err != nil {
		t.Fatalf("Set create: %v", err)
	}

	updated, err := svc.Set("site_name", "Car Connect Uruguay")
	if err != nil {
		t.Fatalf("Set update: %v", err)
	}
	if updated.ID != created.ID {
		t.Error("Set created a second row instead of updating")
	}
	if updated.Value != "Car Connect Uruguay" {
		t.Errorf("value = %q", updated.Value)
	}

	got, err := svc.Get("site_name")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != "Car Connect Uruguay" {
		t.Errorf("Get value = %q", got.Value)
	}
}

func TestSeedDefaultsKeepsOverrides(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(db)

	if _, err := svc.Set("site_name", "Custom Name"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := svc.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if err := svc.SeedDefaults(); err != nil {
		t.Fatalf("second SeedDefaults: %v", err)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if all["site_name"] != "Custom Name" {
		t.Errorf("site_name = %q, defaults must not overwrite", all["site_name"])
	}
	if len(all) != len(defaults) {
		t.Errorf("len(all) = %d, want %d", len(all), len(defaults))
	}
	if _, ok := all["contact_email"]; !ok {
		t.Error("default key contact_email missing")
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(db)

	if err := svc.Delete("nope"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("Delete missing = %v, want ErrSettingNotFound", err)
	}

	if _, err := svc.Set("temp", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := svc.Delete("temp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get("temp"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("Get after delete = %v, want ErrSettingNotFound", err)
	}
}
