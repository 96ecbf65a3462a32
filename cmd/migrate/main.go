package main

import (
	"log"

	"milk-platform-be/internal/config"
	"milk-platform-be/internal/model"
	"milk-platform-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running migration for %d tables...", len(model.All()))
	if err := model.Migrate(db); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}
	log.Println("Success: Database migration completed.")
}
