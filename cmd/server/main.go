package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"imagefolio/internal/api"
	"imagefolio/internal/auth"
	"imagefolio/internal/config"
	"imagefolio/internal/media"
	"imagefolio/internal/storage"
	"imagefolio/internal/upload"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	}))

	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET_KEY is not set")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.TempDir, 0o770); err != nil {
		slog.Error("Failed to create the upload temp dir", "dir", cfg.TempDir, "error", err)
		os.Exit(1)
	}

	db, err := storage.NewPostgresDatabase(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to init the database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	relay, err := media.NewS3Relay(context.Background(), cfg.Media)
	if err != nil {
		slog.Error("Failed to init the media relay", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(db, []byte(cfg.JWTSecret), cfg.TokenTTL)
	pipeline := upload.NewPipeline(relay, db, cfg.TempDir, cfg.MaxUploadSize)
	server := api.NewServer(cfg, authSvc, pipeline, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server run error", "error", err)
		os.Exit(1)
	}
}
