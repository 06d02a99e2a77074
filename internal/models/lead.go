package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead statuses. Any status is settable from any prior value by an admin;
// there is deliberately no enforced transition table.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead is a prospective buyer's contact submission tied to a Trim. BrandID is
// denormalized from the trim's model chain at write time; it stays null when
// the chain does not resolve.
type Lead struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TrimID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"trim_id"`
	BrandID    *uuid.UUID `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name       string     `gorm:"not null;size:255" json:"name"`
	Email      string     `gorm:"not null;size:255" json:"email"`
	Phone      string     `gorm:"size:50" json:"phone"`
	Department string     `gorm:"size:100" json:"department"`
	Message    string     `gorm:"size:2000" json:"message,omitempty"`
	Status     string     `gorm:"size:20;not null;default:'new';index" json:"status"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func IsValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}
