// Package seed loads demo marketplace data. Run is a no-op once the catalog
// has any brand, so it is safe to invoke on every boot and from the admin
// console.
package seed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/models"
)

type trimSpec struct {
	Name         string
	Slug         string
	Price        float64
	Engine       string
	HorsePower   int
	Transmission string
	FuelType     string
	Features     []string
	IsFeatured   bool
}

type modelSpec struct {
	Name     string
	Segment  string
	YearFrom int
	Trims    []trimSpec
}

type brandSpec struct {
	Name    string
	Slug    string
	Country string
	Models  []modelSpec
}

var demoBrands = []brandSpec{
	{
		Name: "Toyota", Slug: "toyota", Country: "Japón",
		Models: []modelSpec{
			{
				Name: "Corolla", Segment: models.SegmentSedan, YearFrom: 2023,
				Trims: []trimSpec{
					{Name: "Corolla XLI", Slug: "corolla-xli", Price: 27990, Engine: "2.0L", HorsePower: 170, Transmission: "CVT", FuelType: "Nafta", Features: []string{"Pantalla 8\"", "Android Auto", "6 airbags"}},
					{Name: "Corolla XEI CVT", Slug: "corolla-xei-cvt", Price: 31990, Engine: "2.0L", HorsePower: 170, Transmission: "CVT", FuelType: "Nafta", Features: []string{"Tapizado de cuero", "Toyota Safety Sense", "Llantas 17\""}, IsFeatured: true},
				},
			},
			{
				Name: "Hilux", Segment: models.SegmentPickup, YearFrom: 2022,
				Trims: []trimSpec{
					{Name: "Hilux SRV 4x4", Slug: "hilux-srv-4x4", Price: 52990, Engine: "2.8L Turbodiésel", HorsePower: 204, Transmission: "Automática", FuelType: "Diésel", Features: []string{"Tracción 4x4", "Control de descenso"}},
				},
			},
		},
	},
	{
		Name: "Volkswagen", Slug: "volkswagen", Country: "Alemania",
		Models: []modelSpec{
			{
				Name: "Polo", Segment: models.SegmentHatchback, YearFrom: 2023,
				Trims: []trimSpec{
					{Name: "Polo Track MSI", Slug: "polo-track-msi", Price: 21990, Engine: "1.6L MSI", HorsePower: 110, Transmission: "Manual", FuelType: "Nafta", Features: []string{"VW Play", "4 airbags"}},
					{Name: "Polo Highline TSI", Slug: "polo-highline-tsi", Price: 28490, Engine: "1.0L TSI", HorsePower: 115, Transmission: "Automática", FuelType: "Nafta", Features: []string{"Techo panorámico", "Digital cockpit"}, IsFeatured: true},
				},
			},
		},
	},
	{
		Name: "Chevrolet", Slug: "chevrolet", Country: "Estados Unidos",
		Models: []modelSpec{
			{
				Name: "Onix", Segment: models.SegmentHatchback, YearFrom: 2023,
				Trims: []trimSpec{
					{Name: "Onix LT Turbo", Slug: "onix-lt-turbo", Price: 22490, Engine: "1.0L Turbo", HorsePower: 116, Transmission: "Manual", FuelType: "Nafta", Features: []string{"MyLink 8\"", "Wi-Fi a bordo"}},
				},
			},
			{
				Name: "Tracker", Segment: models.SegmentSUV, YearFrom: 2023,
				Trims: []trimSpec{
					{Name: "Tracker Premier", Slug: "tracker-premier", Price: 33990, Engine: "1.2L Turbo", HorsePower: 132, Transmission: "Automática", FuelType: "Nafta", Features: []string{"Techo solar", "Carga inalámbrica", "6 airbags"}, IsFeatured: true},
				},
			},
		},
	},
}

var demoCommunities = []models.Community{
	{Name: "Toyoteros Uruguay", Slug: "toyoteros-uruguay", Description: "La comunidad de fanáticos Toyota del Uruguay.", IsActive: true},
	{Name: "Pickups del Este", Slug: "pickups-del-este", Description: "Rutas, campamentos y todo sobre pickups.", IsActive: true},
	{Name: "Primer Auto", Slug: "primer-auto", Description: "Consejos para quienes compran su primer 0km.", IsActive: true},
}

var demoEvents = []struct {
	Title    string
	Location string
	InDays   int
}{
	{Title: "Expo Auto Montevideo", Location: "Rural del Prado, Montevideo", InDays: 21},
	{Title: "Test Drive Day", Location: "Punta Carretas Shopping", InDays: 7},
	{Title: "Encuentro de Clásicos", Location: "Parque Batlle", InDays: 35},
}

// Run seeds demo data when the catalog is empty. It returns true when data
// was inserted.
func Run(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.Brand{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check catalog: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := seedCatalog(tx); err != nil {
			return err
		}
		if err := seedCommunities(tx); err != nil {
			return err
		}
		return seedEvents(tx)
	})
	if err != nil {
		return false, err
	}

	slog.Info("seeded demo data", "brands", len(demoBrands), "communities", len(demoCommunities), "events", len(demoEvents))
	return true, nil
}

func seedCatalog(tx *gorm.DB) error {
	for _, bs := range demoBrands {
		brand := models.Brand{Name: bs.Name, Slug: bs.Slug, Country: bs.Country, IsActive: true}
		if err := tx.Create(&brand).Error; err != nil {
			return fmt.Errorf("failed to seed brand %q: %w", bs.Slug, err)
		}

		for _, ms := range bs.Models {
			model := models.CarModel{
				BrandID:  brand.ID,
				Name:     ms.Name,
				Segment:  ms.Segment,
				YearFrom: ms.YearFrom,
				IsActive: true,
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to seed model %q: %w", ms.Name, err)
			}

			for _, ts := range ms.Trims {
				features, err := json.Marshal(ts.Features)
				if err != nil {
					return err
				}

				trim := models.Trim{
					ModelID:      model.ID,
					BrandID:      &brand.ID,
					Name:         ts.Name,
					Slug:         ts.Slug,
					Price:        ts.Price,
					Currency:     "USD",
					Engine:       ts.Engine,
					HorsePower:   ts.HorsePower,
					Transmission: ts.Transmission,
					FuelType:     ts.FuelType,
					Features:     features,
					IsFeatured:   ts.IsFeatured,
					IsActive:     true,
				}
				if err := tx.Create(&trim).Error; err != nil {
					return fmt.Errorf("failed to seed trim %q: %w", ts.Slug, err)
				}
			}
		}
	}
	return nil
}

func seedCommunities(tx *gorm.DB) error {
	for i := range demoCommunities {
		community := demoCommunities[i]
		if err := tx.Create(&community).Error; err != nil {
			return fmt.Errorf("failed to seed community %q: %w", community.Slug, err)
		}
	}
	return nil
}

func seedEvents(tx *gorm.DB) error {
	for _, es := range demoEvents {
		event := models.Event{
			Title:       es.Title,
			Location:    es.Location,
			StartsAt:    time.Now().AddDate(0, 0, es.InDays),
			IsPublished: true,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to seed event %q: %w", es.Title, err)
		}
	}
	return nil
}
