package savedcars

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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
	if err := db.AutoMigrate(&models.Brand{}, &models.CarModel{}, &models.Trim{}, &models.SavedCar{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTrim(t *testing.T, db *gorm.DB) *models.Trim {
	t.Helper()

	brand := models.Brand{Name: "Toyota", Slug: "toyota", IsActive: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	model := models.CarModel{BrandID: brand.ID, Name: "Corolla", IsActive: true}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("seed model: %v", err)
	}
	trim := models.Trim{ModelID: model.ID, BrandID: &brand.ID, Name: "Corolla XEI CVT", Slug: "corolla-xei-cvt", Price: 31990, IsActive: true}
	if err := db.Create(&trim).Error; err != nil {
		t.Fatalf("seed trim: %v", err)
	}
	return &trim
}

func TestSaveIsIdempotentPerUserTrim(t *testing.T) {
	db := newTestDB(t)
	trim := seedTrim(t, db)
	svc := NewSavedCarService(db)
	userID := uuid.New()

	if _, err := svc.Save(userID, trim.ID); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Save(userID, trim.ID); !errors.Is(err, ErrAlreadySaved) {
		t.Errorf("second Save = %v, want ErrAlreadySaved", err)
	}

	// A different user can bookmark the same trim.
	if _, err := svc.Save(uuid.New(), trim.ID); err != nil {
		t.Errorf("other user Save: %v", err)
	}

	if _, err := svc.Save(userID, uuid.New()); !errors.Is(err, ErrTrimNotFound) {
		t.Errorf("Save unknown trim = %v, want ErrTrimNotFound", err)
	}
}

func TestUnsave(t *testing.T) {
	db := newTestDB(t)
	trim := seedTrim(t, db)
	svc := NewSavedCarService(db)
	userID := uuid.New()

	if err := svc.Unsave(userID, trim.ID); !errors.Is(err, ErrNotSaved) {
		t.Errorf("Unsave before save = %v, want ErrNotSaved", err)
	}

	if _, err := svc.Save(userID, trim.ID); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Unsave(userID, trim.ID); err != nil {
		t.Fatalf("Unsave: %v", err)
	}

	entries, err := svc.List(userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}

func TestListKeepsBookmarkWhenTrimGone(t *testing.T) {
	db := newTestDB(t)
	trim := seedTrim(t, db)
	svc := NewSavedCarService(db)
	userID := uuid.New()

	if _, err := svc.Save(userID, trim.ID); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := svc.List(userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Car == nil {
		t.Fatalf("expected one entry with assembled car, got %+v", entries)
	}
	if entries[0].Car.Brand == nil {
		t.Error("assembled car missing brand")
	}

	if err := db.Delete(&models.Trim{}, "id = ?", trim.ID).Error; err != nil {
		t.Fatalf("delete trim: %v", err)
	}

	entries, err = svc.List(userID)
	if err != nil {
		t.Fatalf("List after trim delete: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("bookmark dropped with its trim, len = %d", len(entries))
	}
	if entries[0].Car != nil {
		t.Errorf("Car = %+v, want nil after trim delete", entries[0].Car)
	}
}
