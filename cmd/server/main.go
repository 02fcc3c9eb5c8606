package main

import (
	"context"
	"log"
	"os"

	"github.com/cardkeep/cardkeep/internal/server"
	"github.com/cardkeep/cardkeep/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; missing file is fine.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	cfg := config.LoadConfig()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}

	app.Run(context.Background())
}
