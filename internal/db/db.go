package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"yof-server/internal/coach"
	"yof-server/internal/config"
	"yof-server/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto-migrate user model
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}

	// Auto-migrate coach models
	if err := db.AutoMigrate(&coach.Goal{}, &coach.Routine{}, &coach.JournalEntry{}); err != nil {
		return err
	}

	DB = db
	config.Logger.Infow("database connected and migrated")
	return nil
}
