package modules_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/activations"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/catalog"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/community"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/events"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/leads"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/reviews"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/savedcars"
	"github.com/Sporthubuy/car-connect-uruguay-sub000/internal/modules/settings"
)

// Every module owns its tables; migration is driven off Models(), so a
// module that forgets to list an entity ships without its table.
func TestModuleModelsMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	mods := []modules.Module{
		catalog.New(),
		leads.New(),
		activations.New(),
		reviews.New(),
		community.New(),
		events.New(),
		savedcars.New(),
		settings.New(),
	}

	for _, m := range mods {
		entities := m.Models()
		if len(entities) == 0 {
			t.Fatalf("module %s owns no models", m.ID())
		}
		if err := db.AutoMigrate(entities...); err != nil {
			t.Fatalf("migrate %s: %v", m.ID(), err)
		}
	}

	tables := []string{
		"brands", "car_models", "trims",
		"leads", "vehicle_activations",
		"review_posts", "comments",
		"communities", "community_posts",
		"events", "benefits",
		"saved_cars", "site_settings",
	}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s after module migration", table)
		}
	}
}
