package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/authz"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrBenefitNotFound  = errors.New("benefit not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrStartsAtRequired = errors.New("starts_at is required")
	ErrBrandForbidden   = errors.New("no access to this brand")
	ErrBrandRequired    = errors.New("brand_id is required")
)

// --- DTOs ---

type EventRequest struct {
	BrandID     *uuid.UUID `json:"brand_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"image_url"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsPublished *bool      `json:"is_published"`
}

type BenefitRequest struct {
	BrandID     *uuid.UUID `json:"brand_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ValidUntil  *time.Time `json:"valid_until"`
	IsActive    *bool      `json:"is_active"`
}

// EventFilter narrows the public event listing.
type EventFilter struct {
	BrandID      *uuid.UUID
	UpcomingOnly bool
	Limit        int
}

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func (s *EventService) ListPublished(filter EventFilter) ([]models.Event, error) {
	q := s.db.Where("is_published = ?", true)
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.UpcomingOnly {
		q = q.Where("starts_at >= ?", time.Now())
	}
	q = q.Order("starts_at ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var list []models.Event
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list, nil
}

func (s *EventService) ListAll(perms authz.Permissions) ([]models.Event, error) {
	q := s.db.Order("starts_at ASC")
	if !perms.ManagePlatform {
		if len(perms.Brands) == 0 {
			return nil, ErrBrandForbidden
		}
		q = q.Where("brand_id IN ?", perms.Brands)
	}

	var list []models.Event
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list, nil
}

func (s *EventService) Create(req *EventRequest, perms authz.Permissions) (*models.Event, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.StartsAt == nil {
		return nil, ErrStartsAtRequired
	}
	if err := s.checkBrandAccess(req.BrandID, perms); err != nil {
		return nil, err
	}

	event := models.Event{
		BrandID:     req.BrandID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		StartsAt:    *req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Update(id uuid.UUID, req *EventRequest, perms authz.Permissions) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	if err := s.checkBrandAccess(event.BrandID, perms); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}

	if len(updates) > 0 {
		if err := s.db.Model(&event).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}

	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Delete(id uuid.UUID, perms authz.Permissions) error {
	var event models.Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to fetch event: %w", err)
	}

	if err := s.checkBrandAccess(event.BrandID, perms); err != nil {
		return err
	}

	if err := s.db.Delete(&event).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// checkBrandAccess enforces brand scoping for console callers. Platform
// operators pass through; brand operators need the target brand in their
// grant set and cannot manage site-wide (null-brand) entries.
func (s *EventService) checkBrandAccess(brandID *uuid.UUID, perms authz.Permissions) error {
	if perms.ManagePlatform {
		return nil
	}
	if brandID == nil {
		return ErrBrandRequired
	}
	if !perms.CanManageBrand(*brandID) {
		return ErrBrandForbidden
	}
	return nil
}

type BenefitService struct {
	db *gorm.DB
}

func NewBenefitService(db *gorm.DB) *BenefitService {
	return &BenefitService{db: db}
}

// ListActive returns benefits visible to verified owners. Expired entries are
// filtered out; a null valid_until never expires.
func (s *BenefitService) ListActive(brandID *uuid.UUID) ([]models.Benefit, error) {
	q := s.db.Where("is_active = ?", true).
		Where("valid_until IS NULL OR valid_until >= ?", time.Now())
	if brandID != nil {
		q = q.Where("brand_id = ? OR brand_id IS NULL", *brandID)
	}

	var list []models.Benefit
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	return list, nil
}

func (s *BenefitService) ListAll(perms authz.Permissions) ([]models.Benefit, error) {
	q := s.db.Order("created_at DESC")
	if !perms.ManagePlatform {
		if len(perms.Brands) == 0 {
			return nil, ErrBrandForbidden
		}
		q = q.Where("brand_id IN ?", perms.Brands)
	}

	var list []models.Benefit
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	return list, nil
}

func (s *BenefitService) Create(req *BenefitRequest, perms authz.Permissions) (*models.Benefit, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.checkBrandAccess(req.BrandID, perms); err != nil {
		return nil, err
	}

	benefit := models.Benefit{
		BrandID:     req.BrandID,
		Title:       req.Title,
		Description: req.Description,
		ValidUntil:  req.ValidUntil,
		IsActive:    true,
	}
	if req.IsActive != nil {
		benefit.IsActive = *req.IsActive
	}

	if err := s.db.Create(&benefit).Error; err != nil {
		return nil, fmt.Errorf("failed to create benefit: %w", err)
	}
	return &benefit, nil
}

func (s *BenefitService) Update(id uuid.UUID, req *BenefitRequest, perms authz.Permissions) (*models.Benefit, error) {
	var benefit models.Benefit
	if err := s.db.First(&benefit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBenefitNotFound
		}
		return nil, fmt.Errorf("failed to fetch benefit: %w", err)
	}

	if err := s.checkBrandAccess(benefit.BrandID, perms); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&benefit).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update benefit: %w", err)
		}
	}

	if err := s.db.First(&benefit, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload benefit: %w", err)
	}
	return &benefit, nil
}

func (s *BenefitService) Delete(id uuid.UUID, perms authz.Permissions) error {
	var benefit models.Benefit
	if err := s.db.First(&benefit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBenefitNotFound
		}
		return fmt.Errorf("failed to fetch benefit: %w", err)
	}

	if err := s.checkBrandAccess(benefit.BrandID, perms); err != nil {
		return err
	}

	if err := s.db.Delete(&benefit).Error; err != nil {
		return fmt.Errorf("failed to delete benefit: %w", err)
	}
	return nil
}

func (s *BenefitService) checkBrandAccess(brandID *uuid.UUID, perms authz.Permissions) error {
	if perms.ManagePlatform {
		return nil
	}
	if brandID == nil {
		return ErrBrandRequired
	}
	if !perms.CanManageBrand(*brandID) {
		return ErrBrandForbidden
	}
	return nil
}
