package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fittrack/internal/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the database selected by DB_DRIVER ("postgres" or
// "sqlite"). Timestamps are always stored in UTC.
func ConnectDB() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	switch driver := utils.GetConfig("DB_DRIVER"); driver {
	case "sqlite":
		path := utils.GetConfig("DB_PATH")
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		return OpenSQLite(path, gormConfig)
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		db, err := gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func OpenSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if gormConfig == nil {
		gormConfig = &gorm.Config{NowFunc: func() time.Time { return time.Now().UTC() }}
	}
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
