package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrBrandNotFound  = errors.New("brand not found")
	ErrModelNotFound  = errors.New("model not found")
	ErrTrimNotFound   = errors.New("trim not found")
	ErrSlugTaken      = errors.New("slug already in use")
	ErrNameRequired   = errors.New("name is required")
	ErrSlugRequired   = errors.New("slug is required")
	ErrBrandForbidden = errors.New("brand not managed by caller")
)

// --- DTOs ---

type BrandRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Country      string `json:"country"`
	LogoURL      string `json:"logo_url"`
	WebsiteURL   string `json:"website_url"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	IsActive     *bool  `json:"is_active"`
}

type ModelRequest struct {
	BrandID  uuid.UUID `json:"brand_id"`
	Name     string    `json:"name"`
	Segment  string    `json:"segment"`
	YearFrom int       `json:"year_from"`
	YearTo   int       `json:"year_to"`
	IsActive *bool     `json:"is_active"`
}

type TrimRequest struct {
	ModelID      uuid.UUID      `json:"model_id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Price        float64        `json:"price"`
	Currency     string         `json:"currency"`
	Engine       string         `json:"engine"`
	HorsePower   int            `json:"horse_power"`
	Transmission string         `json:"transmission"`
	FuelType     string         `json:"fuel_type"`
	Features     datatypes.JSON `json:"features"`
	Images       datatypes.JSON `json:"images"`
	IsFeatured   *bool          `json:"is_featured"`
	IsActive     *bool          `json:"is_active"`
}

// TrimDetail is a trim assembled with its parent chain. Model and Brand are
// null when the reference dangles; the read never fails because of them.
type TrimDetail struct {
	models.Trim
	Model *models.CarModel `json:"model"`
	Brand *models.Brand    `json:"brand"`
}

// =============================================================================
// BrandService
// =============================================================================

type BrandService struct {
	db *gorm.DB
}

func NewBrandService(db *gorm.DB) *BrandService {
	return &BrandService{db: db}
}

func (s *BrandService) List(includeInactive bool) ([]models.Brand, error) {
	q := s.db.Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var brands []models.Brand
	if err := q.Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (s *BrandService) GetBySlug(slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to fetch brand: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) Get(id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to fetch brand: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) Create(req *BrandRequest) (*models.Brand, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Slug == "" {
		return nil, ErrSlugRequired
	}

	brand := models.Brand{
		Name:         req.Name,
		Slug:         req.Slug,
		Country:      req.Country,
		LogoURL:      req.LogoURL,
		WebsiteURL:   req.WebsiteURL,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		IsActive:     true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := s.db.Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return &brand, nil
}

func (s *BrandService) Update(id uuid.UUID, req *BrandRequest) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to fetch brand: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.LogoURL != "" {
		updates["logo_url"] = req.LogoURL
	}
	if req.WebsiteURL != "" {
		updates["website_url"] = req.WebsiteURL
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = req.ContactEmail
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&brand).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to update brand: %w", err)
		}
	}

	if err := s.db.First(&brand, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload brand: %w", err)
	}
	return &brand, nil
}

// Delete removes the brand row only. Models and trims referencing it are
// left in place and degrade to null joins on read.
func (s *BrandService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Brand{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete brand: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}
	return nil
}

// =============================================================================
// ModelService
// =============================================================================

type ModelService struct {
	db *gorm.DB
}

func NewModelService(db *gorm.DB) *ModelService {
	return &ModelService{db: db}
}

func (s *ModelService) ListByBrand(brandID uuid.UUID) ([]models.CarModel, error) {
	var list []models.CarModel
	if err := s.db.Where("brand_id = ?", brandID).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return list, nil
}

func (s *ModelService) Get(id uuid.UUID) (*models.CarModel, error) {
	var m models.CarModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to fetch model: %w", err)
	}
	return &m, nil
}

// Create validates brand ownership for brand-scoped callers before writing.
func (s *ModelService) Create(req *ModelRequest, perms authz.Permissions) (*models.CarModel, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if err := s.checkBrandAccess(req.BrandID, perms); err != nil {
		return nil, err
	}

	m := models.CarModel{
		BrandID:  req.BrandID,
		Name:     req.Name,
		Segment:  req.Segment,
		YearFrom: req.YearFrom,
		YearTo:   req.YearTo,
		IsActive: true,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return &m, nil
}

func (s *ModelService) Update(id uuid.UUID, req *ModelRequest, perms authz.Permissions) (*models.CarModel, error) {
	var m models.CarModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to fetch model: %w", err)
	}

	// The target's current brand must be managed by the caller; so must the
	// destination brand when the model is being moved.
	if err := s.checkBrandAccess(m.BrandID, perms); err != nil {
		return nil, err
	}
	if req.BrandID != uuid.Nil && req.BrandID != m.BrandID {
		if err := s.checkBrandAccess(req.BrandID, perms); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.BrandID != uuid.Nil {
		updates["brand_id"] = req.BrandID
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Segment != "" {
		updates["segment"] = req.Segment
	}
	if req.YearFrom != 0 {
		updates["year_from"] = req.YearFrom
	}
	if req.YearTo != 0 {
		updates["year_to"] = req.YearTo
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&m).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update model: %w", err)
		}
	}

	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload model: %w", err)
	}
	return &m, nil
}

// Delete never errors on dangling trims; their lookups degrade to null.
func (s *ModelService) Delete(id uuid.UUID, perms authz.Permissions) error {
	var m models.CarModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModelNotFound
		}
		return fmt.Errorf("failed to fetch model: %w", err)
	}

	if err := s.checkBrandAccess(m.BrandID, perms); err != nil {
		return err
	}

	if err := s.db.Delete(&m).Error; err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	return nil
}

func (s *ModelService) checkBrandAccess(brandID uuid.UUID, perms authz.Permissions) error {
	if perms.ManagePlatform {
		return nil
	}
	if !perms.CanManageBrand(brandID) {
		return ErrBrandForbidden
	}
	return nil
}

// =============================================================================
// TrimService
// =============================================================================

type TrimService struct {
	db *gorm.DB
}

func NewTrimService(db *gorm.DB) *TrimService {
	return &TrimService{db: db}
}

type TrimFilter struct {
	ModelID  *uuid.UUID
	BrandID  *uuid.UUID
	Featured *bool
	Limit    int
}

func (s *TrimService) List(f TrimFilter) ([]models.Trim, error) {
	q := s.db.Where("is_active = ?", true).Order("created_at DESC")
	if f.ModelID != nil {
		q = q.Where("model_id = ?", *f.ModelID)
	}
	if f.BrandID != nil {
		q = q.Where("brand_id = ?", *f.BrandID)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var trims []models.Trim
	if err := q.Find(&trims).Error; err != nil {
		return nil, fmt.Errorf("failed to list trims: %w", err)
	}
	return trims, nil
}

// GetDetail assembles the trim with its parent model and brand through
// indexed point lookups. A missing hop degrades to null instead of erroring.
func (s *TrimService) GetDetail(id uuid.UUID) (*TrimDetail, error) {
	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrimNotFound
		}
		return nil, fmt.Errorf("failed to fetch trim: %w", err)
	}

	detail := &TrimDetail{Trim: trim}

	var model models.CarModel
	if err := s.db.First(&model, "id = ?", trim.ModelID).Error; err == nil {
		detail.Model = &model

		var brand models.Brand
		if err := s.db.First(&brand, "id = ?", model.BrandID).Error; err == nil {
			detail.Brand = &brand
		}
	}

	return detail, nil
}

func (s *TrimService) GetDetailBySlug(slug string) (*TrimDetail, error) {
	var trim models.Trim
	if err := s.db.Where("slug = ?", slug).First(&trim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrimNotFound
		}
		return nil, fmt.Errorf("failed to fetch trim: %w", err)
	}
	return s.GetDetail(trim.ID)
}

// Create resolves the trim's brand through its model and denormalizes it
// onto the row, keeping by-brand queries indexed. Brand-scoped callers must
// manage the resolved brand.
func (s *TrimService) Create(req *TrimRequest, perms authz.Permissions) (*models.Trim, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Slug == "" {
		return nil, ErrSlugRequired
	}

	var model models.CarModel
	if err := s.db.First(&model, "id = ?", req.ModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to fetch model: %w", err)
	}

	if !perms.ManagePlatform && !perms.CanManageBrand(model.BrandID) {
		return nil, ErrBrandForbidden
	}

	brandID := model.BrandID
	trim := models.Trim{
		ModelID:      req.ModelID,
		BrandID:      &brandID,
		Name:         req.Name,
		Slug:         req.Slug,
		Price:        req.Price,
		Currency:     req.Currency,
		Engine:       req.Engine,
		HorsePower:   req.HorsePower,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Features:     req.Features,
		Images:       req.Images,
		IsActive:     true,
	}
	if trim.Currency == "" {
		trim.Currency = "USD"
	}
	if req.IsFeatured != nil {
		trim.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		trim.IsActive = *req.IsActive
	}

	if err := s.db.Create(&trim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create trim: %w", err)
	}
	return &trim, nil
}

func (s *TrimService) Update(id uuid.UUID, req *TrimRequest, perms authz.Permissions) (*models.Trim, error) {
	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrimNotFound
		}
		return nil, fmt.Errorf("failed to fetch trim: %w", err)
	}

	if err := s.checkTrimAccess(&trim, perms); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ModelID != uuid.Nil && req.ModelID != trim.ModelID {
		var model models.CarModel
		if err := s.db.First(&model, "id = ?", req.ModelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrModelNotFound
			}
			return nil, fmt.Errorf("failed to fetch model: %w", err)
		}
		if !perms.ManagePlatform && !perms.CanManageBrand(model.BrandID) {
			return nil, ErrBrandForbidden
		}
		updates["model_id"] = req.ModelID
		updates["brand_id"] = model.BrandID
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Slug != "" {
		updates["slug"] = req.Slug
	}
	if req.Price != 0 {
		updates["price"] = req.Price
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.Engine != "" {
		updates["engine"] = req.Engine
	}
	if req.HorsePower != 0 {
		updates["horse_power"] = req.HorsePower
	}
	if req.Transmission != "" {
		updates["transmission"] = req.Transmission
	}
	if req.FuelType != "" {
		updates["fuel_type"] = req.FuelType
	}
	if len(req.Features) > 0 {
		updates["features"] = req.Features
	}
	if len(req.Images) > 0 {
		updates["images"] = req.Images
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&trim).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to update trim: %w", err)
		}
	}

	if err := s.db.First(&trim, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload trim: %w", err)
	}
	return &trim, nil
}

func (s *TrimService) Delete(id uuid.UUID, perms authz.Permissions) error {
	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrimNotFound
		}
		return fmt.Errorf("failed to fetch trim: %w", err)
	}

	if err := s.checkTrimAccess(&trim, perms); err != nil {
		return err
	}

	if err := s.db.Delete(&trim).Error; err != nil {
		return fmt.Errorf("failed to delete trim: %w", err)
	}
	return nil
}

// checkTrimAccess re-validates ownership at call time by re-resolving the
// trim's parent chain rather than trusting the denormalized column.
func (s *TrimService) checkTrimAccess(trim *models.Trim, perms authz.Permissions) error {
	if perms.ManagePlatform {
		return nil
	}

	var model models.CarModel
	if err := s.db.First(&model, "id = ?", trim.ModelID).Error; err != nil {
		// Dangling chain: nobody brand-scoped can claim it.
		return ErrBrandForbidden
	}
	if !perms.CanManageBrand(model.BrandID) {
		return ErrBrandForbidden
	}
	return nil
}
