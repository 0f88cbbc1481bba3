package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/kinoteka/movie-catalog/internal/config"
	"github.com/kinoteka/movie-catalog/internal/database"
)

// Seeds the catalog tables with demo genres and movies. The schema must
// already exist (see migrations/001_init.sql).
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed complete")
}
