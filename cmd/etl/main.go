package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gulfwatch/red-tide-etl/internal/adapter/fwc"
	httpadapter "github.com/gulfwatch/red-tide-etl/internal/adapter/http"
	kafkaadapter "github.com/gulfwatch/red-tide-etl/internal/adapter/kafka"
	"github.com/gulfwatch/red-tide-etl/internal/adapter/sheets"
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

	source := fwc.NewClient(cfg, logger)

	// Optional downstream status feed (feature-flagged via KAFKA_ENABLED).
	var publisher pipeline.StatusPublisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = kafkaWriter
		logger.Info("kafka status feed enabled", "topic", cfg.KafkaStatusTopic)
	} else {
		logger.Info("kafka status feed disabled")
	}

	p := pipeline.New(source, sheetClient, sheetClient, publisher, location, cfg.RunInterval, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the ingestion pipeline.
	runErr := make(chan error, 1)
	go func() {
		runErr <- p.Run(ctx)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-runErr:
		if err != nil {
			logger.Error("pipeline error", "error", err)
			exitCode = 1
		}
		stop()
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	os.Exit(exitCode)
}
