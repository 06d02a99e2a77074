package savedcars

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/catalog"
)

var (
	ErrAlreadySaved = errors.New("car already saved")
	ErrNotSaved     = errors.New("car is not saved")
	ErrTrimNotFound = errors.New("trim not found")
)

// SavedCarEntry pairs a bookmark with the assembled car it points at. Car is
// null when the trim has since been removed; the bookmark itself survives.
type SavedCarEntry struct {
	ID      uuid.UUID           `json:"id"`
	TrimID  uuid.UUID           `json:"trim_id"`
	SavedAt time.Time           `json:"saved_at"`
	Car     *catalog.TrimDetail `json:"car"`
}

type SavedCarService struct {
	db    *gorm.DB
	trims *catalog.TrimService
}

func NewSavedCarService(db *gorm.DB) *SavedCarService {
	return &SavedCarService{db: db, trims: catalog.NewTrimService(db)}
}

func (s *SavedCarService) Save(userID, trimID uuid.UUID) (*models.SavedCar, error) {
	var trim models.Trim
	if err := s.db.First(&trim, "id = ?", trimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrimNotFound
		}
		return nil, fmt.Errorf("failed to fetch trim: %w", err)
	}

	saved := models.SavedCar{UserID: userID, TrimID: trimID}
	if err := s.db.Create(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySaved
		}
		return nil, fmt.Errorf("failed to save car: %w", err)
	}
	return &saved, nil
}

func (s *SavedCarService) Unsave(userID, trimID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND trim_id = ?", userID, trimID).Delete(&models.SavedCar{})
	if result.Error != nil {
		return fmt.Errorf("failed to unsave car: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotSaved
	}
	return nil
}

// List returns the caller's bookmarks newest first, each with the assembled
// car attached where it still resolves.
func (s *SavedCarService) List(userID uuid.UUID) ([]SavedCarEntry, error) {
	var saved []models.SavedCar
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved cars: %w", err)
	}

	entries := make([]SavedCarEntry, 0, len(saved))
	for _, sc := range saved {
		entry := SavedCarEntry{ID: sc.ID, TrimID: sc.TrimID, SavedAt: sc.CreatedAt}
		if detail, err := s.trims.GetDetail(sc.TrimID); err == nil {
			entry.Car = detail
		} else if !errors.Is(err, catalog.ErrTrimNotFound) {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
