package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gulfwatch/red-tide-etl/internal/adapter/sheets"
	"github.com/gulfwatch/red-tide-etl/internal/adapter/wordpress"
	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/observability"
	"github.com/gulfwatch/red-tide-etl/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateWordPress(); err != nil {
		slog.Error("invalid wordpress config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetClient, err := sheets.NewClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create sheets client", "error", err)
		os.Exit(1)
	}

	wpClient := wordpress.NewClient(cfg, logger)
	name, err := wpClient.VerifyAuth(ctx)
	if err != nil {
		logger.Error("wordpress auth check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("wordpress authenticated", "user", name)

	syncer := pipeline.NewSyncer(sheetClient, wpClient, location, logger, metrics)

	report, err := syncer.Sync(ctx)
	if err != nil {
		logger.Error("sync failed", "error", err)
		os.Exit(1)
	}

	attempted, synced := report.Total()
	if synced < attempted {
		logger.Warn("some posts failed to sync", "failed", attempted-synced)
		os.Exit(1)
	}
}
