package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/ModCompare/internal/app"
	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/logging"
	"github.com/JonMunkholm/ModCompare/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists; real environment variables take precedence
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to open data source", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// Warm the cache so a broken data file shows up at startup
	if table, err := a.Service.Table(ctx); err != nil {
		slog.Warn("initial table load failed", "error", err)
	} else {
		slog.Info("models available", "count", table.RowCount(), "source", a.Service.SourceKey())
	}

	server := web.NewServer(a.Service, a.Builder, cfg)

	// Serve until SIGINT/SIGTERM; Run returns after the graceful shutdown drains
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Server.Addr(), cfg.Server.ShutdownTimeout); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
