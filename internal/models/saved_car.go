package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedCar bookmarks a Trim for a user. One row per (user, trim).
type SavedCar struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_cars_user_trim" json:"user_id"`
	TrimID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_cars_user_trim;index" json:"trim_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SavedCar) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
