package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/bettrack/api/internal/adapters/repository/postgres"
	"github.com/bettrack/api/internal/config"
)

// Removes expired refresh-token rows. Runs independently of the API
// server, e.g. from cron.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	tokenRepo := postgres.NewRefreshTokenRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting refresh token cleanup job...")

	n, err := tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("Error deleting expired tokens: %v", err)
	}

	log.Printf("Refresh token cleanup completed successfully. %d rows removed.", n)
}
