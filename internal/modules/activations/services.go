package activations

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
	ErrActivationNotFound = errors.New("activation not found")
	ErrVINRequired        = errors.New("vin is required")
	ErrBrandForbidden     = errors.New("brand not managed by caller")
)

// --- DTOs ---

type SubmitActivationRequest struct {
	BrandID uuid.UUID `json:"brand_id"`
	ModelID uuid.UUID `json:"model_id"`
	VIN     string    `json:"vin"`
}

type DecideActivationRequest struct {
	Notes string `json:"notes"`
}

type ActivationService struct {
	db *gorm.DB
}

func NewActivationService(db *gorm.DB) *ActivationService {
	return &ActivationService{db: db}
}

// Submit files a pending ownership claim for a VIN.
func (s *ActivationService) Submit(userID uuid.UUID, req *SubmitActivationRequest) (*models.VehicleActivation, error) {
	if req.VIN == "" {
		return nil, ErrVINRequired
	}

	activation := models.VehicleActivation{
		UserID:  userID,
		BrandID: req.BrandID,
		ModelID: req.ModelID,
		VIN:     req.VIN,
		Status:  models.ActivationStatusPending,
	}

	if err := s.db.Create(&activation).Error; err != nil {
		return nil, fmt.Errorf("failed to submit activation: %w", err)
	}
	return &activation, nil
}

func (s *ActivationService) ListMine(userID uuid.UUID) ([]models.VehicleActivation, error) {
	var list []models.VehicleActivation
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list activations: %w", err)
	}
	return list, nil
}

func (s *ActivationService) List(status string, perms authz.Permissions) ([]models.VehicleActivation, error) {
	q := s.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if !perms.ManagePlatform {
		if len(perms.Brands) == 0 {
			return nil, ErrBrandForbidden
		}
		q = q.Where("brand_id IN ?", perms.Brands)
	}

	var list []models.VehicleActivation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list activations: %w", err)
	}
	return list, nil
}

// Verify marks an activation verified and records who decided and when.
// When the activation was verified the claimant is promoted to
// verified_user unless already privileged.
func (s *ActivationService) Verify(id, verifierID uuid.UUID, notes string, perms authz.Permissions) (*models.VehicleActivation, error) {
	return s.decide(id, verifierID, models.ActivationStatusVerified, notes, perms)
}

// Reject marks an activation rejected with the same audit fields.
func (s *ActivationService) Reject(id, verifierID uuid.UUID, notes string, perms authz.Permissions) (*models.VehicleActivation, error) {
	return s.decide(id, verifierID, models.ActivationStatusRejected, notes, perms)
}

func (s *ActivationService) decide(id, verifierID uuid.UUID, status, notes string, perms authz.Permissions) (*models.VehicleActivation, error) {
	var activation models.VehicleActivation
	if err := s.db.First(&activation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivationNotFound
		}
		return nil, fmt.Errorf("failed to fetch activation: %w", err)
	}

	if !perms.ManagePlatform && !perms.CanManageBrand(activation.BrandID) {
		return nil, ErrBrandForbidden
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"verified_by": verifierID,
		"verified_at": now,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	if err := s.db.Model(&activation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update activation: %w", err)
	}

	activation.Status = status
	activation.VerifiedBy = &verifierID
	activation.VerifiedAt = &now
	if notes != "" {
		activation.Notes = notes
	}

	if status == models.ActivationStatusVerified {
		if err := s.db.Model(&models.User{}).
			Where("id = ? AND role = ?", activation.UserID, authz.RoleUser).
			Update("role", authz.RoleVerifiedUser).Error; err != nil {
			return nil, fmt.Errorf("failed to promote claimant: %w", err)
		}
	}

	return &activation, nil
}
