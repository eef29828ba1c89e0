package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/cmd/config"
	migration "fittrack/cmd/database/migrate"
	"fittrack/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()
	if utils.GetConfig("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
			log.Errorf("HTTP server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("API server stopped")
}
