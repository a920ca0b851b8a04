package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-ops-service/internal/adapter/fleet"
	"github.com/couchcryptid/climate-ops-service/internal/adapter/gis"
	"github.com/couchcryptid/climate-ops-service/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/climate-ops-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-ops-service/internal/adapter/weather"
	"github.com/couchcryptid/climate-ops-service/internal/analysis"
	"github.com/couchcryptid/climate-ops-service/internal/config"
	"github.com/couchcryptid/climate-ops-service/internal/deploy"
	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
	"github.com/couchcryptid/climate-ops-service/internal/ops"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Feature source: live WFS behind a TTL cache, or local fixtures when
	// GIS_FIXTURE_DIR is set.
	var source domain.FeatureSource
	if cfg.MockMode() {
		source = gis.NewFixtureSource(cfg.GISFixtureDir, logger)
		logger.Info("serving layer fixtures", "dir", cfg.GISFixtureDir)
	} else {
		source = gis.NewCachedSource(
			gis.NewClient(cfg, logger, metrics),
			cfg.GISCacheSize,
			cfg.GISCacheTTL,
			metrics,
		)
		logger.Info("wfs source enabled", "base_url", cfg.GISBaseURL,
			"cache_size", cfg.GISCacheSize, "cache_ttl", cfg.GISCacheTTL)
	}

	// Alert publishing (feature-flagged via ALERTS_ENABLED).
	var publisher ops.AlertPublisher
	var closer interface{ Close() error }
	if cfg.AlertsEnabled {
		kp := kafkaadapter.NewPublisher(cfg, logger, metrics)
		publisher = kp
		closer = kp
		logger.Info("alert publishing enabled", "topic", cfg.KafkaAlertTopic)
	} else {
		logger.Info("alert publishing disabled")
	}

	svc := ops.New(
		analysis.New(source, logger, metrics),
		deploy.New(logger, metrics),
		weather.NewProvider(cfg, logger),
		fleet.NewRoster(),
		publisher,
		logger,
		metrics,
	)

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
