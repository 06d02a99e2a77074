package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Brand is a car manufacturer present in the catalog.
type Brand struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Slug         string    `gorm:"not null;size:255;uniqueIndex" json:"slug"`
	Country      string    `gorm:"size:100" json:"country"`
	LogoURL      string    `gorm:"size:500" json:"logo_url,omitempty"`
	WebsiteURL   string    `gorm:"size:500" json:"website_url,omitempty"`
	ContactEmail string    `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone string    `gorm:"size:50" json:"contact_phone,omitempty"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// CarModel belongs to one Brand. Referential integrity is not enforced:
// deleting a brand or model leaves children dangling and reads degrade to
// null joins instead of erroring.
type CarModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Segment   string    `gorm:"size:50;index" json:"segment"`
	YearFrom  int       `json:"year_from"`
	YearTo    int       `json:"year_to"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CarModel) TableName() string {
	return "car_models"
}

func (m *CarModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Model segments.
const (
	SegmentSedan     = "sedan"
	SegmentSUV       = "suv"
	SegmentPickup    = "pickup"
	SegmentHatchback = "hatchback"
	SegmentCoupe     = "coupe"
	SegmentVan       = "van"
)

// Trim is a sellable configuration of a CarModel. BrandID is denormalized
// from the parent model at write time so by-brand queries stay indexed.
type Trim struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ModelID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"model_id"`
	BrandID      *uuid.UUID     `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Slug         string         `gorm:"not null;size:255;uniqueIndex" json:"slug"`
	Price        float64        `gorm:"not null" json:"price"`
	Currency     string         `gorm:"size:10;default:'USD'" json:"currency"`
	Engine       string         `gorm:"size:100" json:"engine,omitempty"`
	HorsePower   int            `json:"horse_power,omitempty"`
	Transmission string         `gorm:"size:50" json:"transmission,omitempty"`
	FuelType     string         `gorm:"size:50" json:"fuel_type,omitempty"`
	Features     datatypes.JSON `json:"features,omitempty"`
	Images       datatypes.JSON `json:"images,omitempty"`
	IsFeatured   bool           `gorm:"not null;default:false;index" json:"is_featured"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (t *Trim) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
