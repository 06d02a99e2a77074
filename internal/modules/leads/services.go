package leads

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrLeadNotFound   = errors.New("lead not found")
	ErrTrimNotFound   = errors.New("trim not found")
	ErrInvalidStatus  = errors.New("invalid lead status")
	ErrNameRequired   = errors.New("name is required")
	ErrEmailRequired  = errors.New("email is required")
	ErrBrandForbidden = errors.New("brand not managed by caller")
)

// --- DTOs ---

type CreateLeadRequest struct {
	TrimID     uuid.UUID `json:"trim_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Message    string    `json:"message"`
	// Status is ignored on purpose: a new lead is always "new".
	Status string `json:"status,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BrandSummary, ModelSummary and CarSummary are the denormalized shapes the
// consoles render. Each level is null when its reference dangles.
type BrandSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type ModelSummary struct {
	ID      uuid.UUID     `json:"id"`
	Name    string        `json:"name"`
	Segment string        `json:"segment"`
	Brand   *BrandSummary `json:"brand"`
}

type CarSummary struct {
	ID    uuid.UUID     `json:"id"`
	Name  string        `json:"name"`
	Slug  string        `json:"slug"`
	Price float64       `json:"price"`
	Model *ModelSummary `json:"model"`
}

// LeadWithCar is a lead assembled with its car chain for display.
type LeadWithCar struct {
	models.Lead
	Car *CarSummary `json:"car"`
}

type LeadStats struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Contacted int64 `json:"contacted"`
	Qualified int64 `json:"qualified"`
	Converted int64 `json:"converted"`
	Lost      int64 `json:"lost"`
}

// =============================================================================
// LeadService
// =============================================================================

type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// Create stores a lead with status "new" regardless of input and
// denormalizes the brand resolved through trim -> model onto the row. A
// dangling chain leaves brand_id null; the submission still succeeds.
func (s *LeadService) Create(req *CreateLeadRequest, userID *uuid.UUID) (*models.Lead, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", req.TrimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrimNotFound
		}
		return nil, fmt.Errorf("failed to fetch trim: %w", err)
	}

	lead := models.Lead{
		TrimID:     req.TrimID,
		BrandID:    s.resolveBrand(&trim),
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Message:    req.Message,
		Status:     models.LeadStatusNew,
	}

	if err := s.db.Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return &lead, nil
}

// resolveBrand walks trim -> model -> brand id. Any missing hop yields nil.
func (s *LeadService) resolveBrand(trim *models.Trim) *uuid.UUID {
	var model models.CarModel
	if err := s.db.First(&model, "id = ?", trim.ModelID).Error; err != nil {
		return nil
	}
	brandID := model.BrandID
	return &brandID
}

// List returns all leads assembled newest first, for the admin console.
func (s *LeadService) List(limit, offset int) ([]LeadWithCar, error) {
	q := s.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []models.Lead
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return s.assembleAll(rows), nil
}

// ListRecentByBrand returns the newest leads for one brand. The query stays
// on the denormalized brand_id index; limit is applied in the query, not
// after materializing every lead.
func (s *LeadService) ListRecentByBrand(brandID uuid.UUID, limit int, perms authz.Permissions) ([]LeadWithCar, error) {
	if err := checkBrandAccess(brandID, perms); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []models.Lead
	if err := s.db.Where("brand_id = ?", brandID).
		Order("created_at DESC").Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return s.assembleAll(rows), nil
}

// CountNewByBrand counts leads whose chain resolves to the brand and whose
// status is still "new".
func (s *LeadService) CountNewByBrand(brandID uuid.UUID, perms authz.Permissions) (int64, error) {
	if err := checkBrandAccess(brandID, perms); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.Model(&models.Lead{}).
		Where("brand_id = ? AND status = ?", brandID, models.LeadStatusNew).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

// StatsByBrand aggregates lead counts per status for one brand.
func (s *LeadService) StatsByBrand(brandID uuid.UUID, perms authz.Permissions) (*LeadStats, error) {
	if err := checkBrandAccess(brandID, perms); err != nil {
		return nil, err
	}

	stats := &LeadStats{}
	counters := map[string]*int64{
		models.LeadStatusNew:       &stats.New,
		models.LeadStatusContacted: &stats.Contacted,
		models.LeadStatusQualified: &stats.Qualified,
		models.LeadStatusConverted: &stats.Converted,
		models.LeadStatusLost:      &stats.Lost,
	}

	type row struct {
		Status string
		N      int64
	}
	var rows []row
	if err := s.db.Model(&models.Lead{}).
		Select("status, count(*) as n").
		Where("brand_id = ?", brandID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}

	for _, r := range rows {
		stats.Total += r.N
		if c, ok := counters[r.Status]; ok {
			*c += r.N
		}
	}
	return stats, nil
}

// UpdateStatus sets any status from any prior status; there is no enforced
// transition table. Brand-scoped callers are re-validated against the lead's
// trim -> model chain at call time.
func (s *LeadService) UpdateStatus(id uuid.UUID, status string, perms authz.Permissions) (*models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, ErrInvalidStatus
	}

	var lead models.Lead
	if err := s.db.First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to fetch lead: %w", err)
	}

	if !perms.ManagePlatform {
		brandID := s.resolveLeadBrand(&lead)
		if brandID == nil || !perms.CanManageBrand(*brandID) {
			return nil, ErrBrandForbidden
		}
	}

	if err := s.db.Model(&lead).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	lead.Status = status
	return &lead, nil
}

// resolveLeadBrand re-resolves ownership through the live parent chain
// rather than trusting the denormalized column.
func (s *LeadService) resolveLeadBrand(lead *models.Lead) *uuid.UUID {
	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", lead.TrimID).Error; err != nil {
		return nil
	}
	return s.resolveBrand(&trim)
}

// Assemble attaches the car chain to one lead via indexed point lookups.
// Every missing hop degrades to null so list views stay resilient to
// dangling references.
func (s *LeadService) Assemble(lead models.Lead) LeadWithCar {
	out := LeadWithCar{Lead: lead}

	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", lead.TrimID).Error; err != nil {
		return out
	}
	car := &CarSummary{ID: trim.ID, Name: trim.Name, Slug: trim.Slug, Price: trim.Price}
	out.Car = car

	var model models.CarModel
	if err := s.db.First(&model, "id = ?", trim.ModelID).Error; err != nil {
		return out
	}
	car.Model = &ModelSummary{ID: model.ID, Name: model.Name, Segment: model.Segment}

	var brand models.Brand
	if err := s.db.First(&brand, "id = ?", model.BrandID).Error; err != nil {
		return out
	}
	car.Model.Brand = &BrandSummary{ID: brand.ID, Name: brand.Name, Slug: brand.Slug}

	return out
}

func (s *LeadService) assembleAll(rows []models.Lead) []LeadWithCar {
	out := make([]LeadWithCar, 0, len(rows))
	for _, l := range rows {
		out = append(out, s.Assemble(l))
	}
	return out
}

func checkBrandAccess(brandID uuid.UUID, perms authz.Permissions) error {
	if perms.ManagePlatform {
		return nil
	}
	if !perms.CanManageBrand(brandID) {
		return ErrBrandForbidden
	}
	return nil
}
