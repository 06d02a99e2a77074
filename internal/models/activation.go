package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivationStatusPending  = "pending"
	ActivationStatusVerified = "verified"
	ActivationStatusRejected = "rejected"
)

// VehicleActivation is a user's claim of ownership of a VIN, subject to
// admin or brand-admin verification. Verify/reject records who decided and
// when.
type VehicleActivation struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	BrandID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"brand_id"`
	ModelID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"model_id"`
	VIN        string     `gorm:"not null;size:64" json:"vin"`
	Status     string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes      string     `gorm:"size:1000" json:"notes,omitempty"`
	VerifiedBy *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (a *VehicleActivation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
