package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cardkeep/cardkeep/internal/client/cli"
	"github.com/cardkeep/cardkeep/internal/client/config"
	"github.com/cardkeep/cardkeep/internal/logging"
)

func main() {
	// Optional .env for local development; missing file is fine.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	cfg := config.LoadConfig()
	if addr := os.Getenv("CARDKEEP_SERVER"); addr != "" {
		cfg.ServerEndpointAddr = addr
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}

	app.Run(ctx)
}
