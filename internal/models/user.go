package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on first authenticated session (identity bridge) or via
// email/password registration. Users are soft-deleted only.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"size:255" json:"-"`
	Name         string         `gorm:"size:255" json:"name"`
	AvatarURL    string         `gorm:"size:500" json:"avatar_url,omitempty"`
	Role         string         `gorm:"size:20;not null;default:'user';index" json:"role"`
	ProviderID   *string        `gorm:"size:255;uniqueIndex" json:"-"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BrandAdmin grants a user brand-scoped management rights over one brand.
// A user may hold several rows (multi-brand admin).
type BrandAdmin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_brand_admins_brand_user" json:"brand_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_brand_admins_brand_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *BrandAdmin) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
