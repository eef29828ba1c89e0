package migration

import (
	"fmt"

	"fittrack/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Warnf("create uuid-ossp extension: %v", err)
		}
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := db.AutoMigrate(&entities.FoodLog{}); err != nil {
		return fmt.Errorf("migrate food logs: %w", err)
	}
	if err := db.AutoMigrate(&entities.ActivityLog{}); err != nil {
		return fmt.Errorf("migrate activity logs: %w", err)
	}

	log.Info("Database migration complete")
	return nil
}
