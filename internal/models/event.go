package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a marketplace event. BrandID is null for site-wide events and set
// for brand-hosted ones.
type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID     *uuid.UUID `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"size:2000" json:"description,omitempty"`
	Location    string     `gorm:"size:255" json:"location,omitempty"`
	ImageURL    string     `gorm:"size:500" json:"image_url,omitempty"`
	StartsAt    time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	IsPublished bool       `gorm:"not null;default:false;index" json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Benefit is a perk offered to verified owners, optionally scoped to a brand.
type Benefit struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID     *uuid.UUID `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"size:2000" json:"description,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (b *Benefit) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
