package database

import (
	"pulse/internal/eventstore"

	"gorm.io/gorm"
)

// Migrate runs auto-migrations for the raw event tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&eventstore.UserProfile{},
		&eventstore.ActivityEvent{},
		&eventstore.EmailEvent{},
		&eventstore.CampaignClick{},
		&eventstore.ProFeature{},
	)
}
