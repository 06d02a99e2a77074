package settings

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrKeyRequired     = errors.New("key is required")
)

// Defaults applied on boot for keys that do not exist yet. Existing values
// are never overwritten.
var defaults = map[string]string{
	"site_name":          "Car Connect Uruguay",
	"site_tagline":       "Tu próximo auto, más cerca",
	"contact_email":      "hola@carconnect.uy",
	"contact_phone":      "",
	"instagram_url":      "",
	"featured_headline":  "Destacados de la semana",
	"leads_notify_email": "",
}

type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// GetAll returns every setting as a flat key/value map.
func (s *SettingService) GetAll() (map[string]string, error) {
	var rows []models.SiteSetting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *SettingService) Get(key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to fetch setting: %w", err)
	}
	return &setting, nil
}

// Set upserts one key.
func (s *SettingService) Set(key, value string) (*models.SiteSetting, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	var setting models.SiteSetting
	err := s.db.Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		if err := s.db.Model(&setting).Update("value", value).Error; err != nil {
			return nil, fmt.Errorf("failed to update setting: %w", err)
		}
		setting.Value = value
		return &setting, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.SiteSetting{Key: key, Value: value}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, fmt.Errorf("failed to create setting: %w", err)
		}
		return &setting, nil
	default:
		return nil, fmt.Errorf("failed to fetch setting: %w", err)
	}
}

func (s *SettingService) Delete(key string) error {
	result := s.db.Where("key = ?", key).Delete(&models.SiteSetting{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

// SeedDefaults inserts any missing default keys. Safe to run on every boot.
func (s *SettingService) SeedDefaults() error {
	for key, value := range defaults {
		var count int64
		if err := s.db.Model(&models.SiteSetting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check setting %q: %w", key, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.SiteSetting{Key: key, Value: value}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return fmt.Errorf("failed to seed setting %q: %w", key, err)
		}
	}
	return nil
}
