package catalog

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
	if err := db.AutoMigrate(&models.Brand{}, &models.CarModel{}, &models.Trim{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func platformPerms() authz.Permissions {
	return authz.Permissions{Authenticated: true, ManagePlatform: true}
}

func seedChain(t *testing.T, db *gorm.DB) (*models.Brand, *models.CarModel, *models.Trim) {
	t.Helper()

	brands := NewBrandService(db)
	brand, err := brands.Create(&BrandRequest{Name: "Toyota", Slug: "toyota", Country: "Japón"})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	mdls := NewModelService(db)
	model, err := mdls.Create(&ModelRequest{BrandID: brand.ID, Name: "Corolla", Segment: models.SegmentSedan}, platformPerms())
	if err != nil {
		t.Fatalf("create model: %v", err)
	}

	trims := NewTrimService(db)
	trim, err := trims.Create(&TrimRequest{ModelID: model.ID, Name: "Corolla XEI CVT", Slug: "corolla-xei-cvt", Price: 31990}, platformPerms())
	if err != nil {
		t.Fatalf("create trim: %v", err)
	}

	return brand, model, trim
}

func TestBrandSlugRoundTrip(t *testing.T) {
	db := newTestDB(t)
	brand, _, _ := seedChain(t, db)

	got, err := NewBrandService(db).GetBySlug("toyota")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.ID != brand.ID {
		t.Errorf("got brand %s, want %s", got.ID, brand.ID)
	}

	if _, err := NewBrandService(db).GetBySlug("missing"); !errors.Is(err, ErrBrandNotFound) {
		t.Errorf("GetBySlug(missing) = %v, want ErrBrandNotFound", err)
	}
}

func TestBrandDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	seedChain(t, db)

	_, err := NewBrandService(db).Create(&BrandRequest{Name: "Toyota Dos", Slug: "toyota"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("Create duplicate slug = %v, want ErrSlugTaken", err)
	}
}

func TestTrimCreateDenormalizesBrand(t *testing.T) {
	db := newTestDB(t)
	brand, _, trim := seedChain(t, db)

	if trim.BrandID == nil || *trim.BrandID != brand.ID {
		t.Fatalf("trim.BrandID = %v, want %s", trim.BrandID, brand.ID)
	}

	listed, err := NewTrimService(db).List(TrimFilter{BrandID: &brand.ID})
	if err != nil {
		t.Fatalf("List by brand: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != trim.ID {
		t.Errorf("List by brand returned %d trims, want the created one", len(listed))
	}
}

func TestTrimDetailAssembly(t *testing.T) {
	db := newTestDB(t)
	brand, model, trim := seedChain(t, db)

	detail, err := NewTrimService(db).GetDetailBySlug("corolla-xei-cvt")
	if err != nil {
		t.Fatalf("GetDetailBySlug: %v", err)
	}
	if detail.ID != trim.ID {
		t.Errorf("detail.ID = %s, want %s", detail.ID, trim.ID)
	}
	if detail.Model == nil || detail.Model.ID != model.ID {
		t.Errorf("detail.Model = %v, want model %s", detail.Model, model.ID)
	}
	if detail.Brand == nil || detail.Brand.ID != brand.ID {
		t.Errorf("detail.Brand = %v, want brand %s", detail.Brand, brand.ID)
	}
}

func TestTrimDetailDegradesAfterModelDelete(t *testing.T) {
	db := newTestDB(t)
	_, model, trim := seedChain(t, db)

	if err := NewModelService(db).Delete(model.ID, platformPerms()); err != nil {
		t.Fatalf("delete model: %v", err)
	}

	detail, err := NewTrimService(db).GetDetail(trim.ID)
	if err != nil {
		t.Fatalf("GetDetail after model delete: %v", err)
	}
	if detail.Model != nil {
		t.Errorf("detail.Model = %v, want nil after model delete", detail.Model)
	}
	if detail.Brand != nil {
		t.Errorf("detail.Brand = %v, want nil after model delete", detail.Brand)
	}
}

func TestBrandScopedOwnership(t *testing.T) {
	db := newTestDB(t)
	brand, model, trim := seedChain(t, db)

	otherBrand := uuid.New()
	outsider := authz.Permissions{Authenticated: true, Brands: []uuid.UUID{otherBrand}}
	owner := authz.Permissions{Authenticated: true, Brands: []uuid.UUID{brand.ID}}

	trims := NewTrimService(db)
	if _, err := trims.Update(trim.ID, &TrimRequest{Price: 33990}, outsider); !errors.Is(err, ErrBrandForbidden) {
		t.Errorf("outsider Update = %v, want ErrBrandForbidden", err)
	}
	if err := trims.Delete(trim.ID, outsider); !errors.Is(err, ErrBrandForbidden) {
		t.Errorf("outsider Delete = %v, want ErrBrandForbidden", err)
	}

	updated, err := trims.Update(trim.ID, &TrimRequest{Price: 33990}, owner)
	if err != nil {
		t.Fatalf("owner Update: %v", err)
	}
	if updated.Price != 33990 {
		t.Errorf("price = %v, want 33990", updated.Price)
	}

	if _, err := trims.Create(&TrimRequest{ModelID: model.ID, Name: "Corolla GR", Slug: "corolla-gr", Price: 45990}, outsider); !errors.Is(err, ErrBrandForbidden) {
		t.Errorf("outsider Create = %v, want ErrBrandForbidden", err)
	}
}
