package seed

import (
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
	if err := db.AutoMigrate(&models.Brand{}, &models.CarModel{}, &models.Trim{}, &models.Community{}, &models.Event{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestRunSeedsEmptyCatalog(t *testing.T) {
	db := newTestDB(t)

	seeded, err := Run(db)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !seeded {
		t.Fatal("Run on empty catalog must seed")
	}

	var trim models.Trim
	if err := db.Where("slug = ?", "corolla-xei-cvt").First(&trim).Error; err != nil {
		t.Fatalf("seeded trim not found: %v", err)
	}
	if trim.BrandID == nil {
		t.Error("seeded trim missing denormalized brand")
	}

	var model models.CarModel
	if err := db.First(&model, "id = ?", trim.ModelID).Error; err != nil {
		t.Fatalf("seeded trim's model not found: %v", err)
	}
	var brand models.Brand
	if err := db.First(&brand, "id = ?", model.BrandID).Error; err != nil {
		t.Fatalf("seeded model's brand not found: %v", err)
	}
	if brand.Slug != "toyota" {
		t.Errorf("trim chain resolves to %q, want toyota", brand.Slug)
	}

	var communities, events int64
	db.Model(&models.Community{}).Count(&communities)
	db.Model(&models.Event{}).Count(&events)
	if communities == 0 || events == 0 {
		t.Errorf("communities = %d, events = %d, want both > 0", communities, events)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	if _, err := Run(db); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	var before int64
	db.Model(&models.Trim{}).Count(&before)

	seeded, err := Run(db)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if seeded {
		t.Error("second Run must be a no-op")
	}

	var after int64
	db.Model(&models.Trim{}).Count(&after)
	if before != after {
		t.Errorf("trim count changed %d -> %d", before, after)
	}
}
