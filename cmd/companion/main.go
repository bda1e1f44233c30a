package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-life/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-life/internal/adapter/kafka"
	"github.com/couchcryptid/weather-life/internal/adapter/mapbox"
	"github.com/couchcryptid/weather-life/internal/config"
	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/location"
	"github.com/couchcryptid/weather-life/internal/observability"
	"github.com/couchcryptid/weather-life/internal/pipeline"
	"github.com/couchcryptid/weather-life/internal/sos"
	"github.com/couchcryptid/weather-life/internal/weather"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

const deviceInfo = "weather-life-companion"

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.ReverseGeocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	tracker := location.NewTracker()
	if cfg.Location != nil {
		tracker = location.NewStaticTracker(cfg.Location.Lat, cfg.Location.Lon)
		logger.Info("using configured location", "lat", cfg.Location.Lat, "lon", cfg.Location.Lon)
	}

	// Interfaces stay nil when Kafka is off so nothing is published.
	var (
		kafkaPub     *kafkaadapter.Publisher
		warningsPub  pipeline.Publisher
		sosPublisher sos.Publisher
	)
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		warningsPub, sosPublisher = kafkaPub, kafkaPub
		logger.Info("kafka publishing enabled",
			"brokers", cfg.KafkaBrokers,
			"warnings_topic", cfg.KafkaWarningsTopic,
			"sos_topic", cfg.KafkaSOSTopic,
		)
	}

	evaluator := pipeline.NewEvaluator(domain.DefaultRandom, clock, cfg.DisplayTimezone)
	p := pipeline.New(tracker, evaluator, warningsPub, clock, cfg.RefreshInterval, logger, metrics)

	sosSvc := sos.NewService(sos.Config{
		Clock:       clock,
		Countdown:   cfg.SOSCountdown,
		AutoResolve: cfg.SOSAutoResolve,
		Locator:     tracker,
		Publisher:   sosPublisher,
		DeviceInfo:  deviceInfo,
		Logger:      logger,
		Metrics:     metrics,
	})

	api := &httpadapter.API{
		Warnings:  p,
		Evaluator: evaluator,
		Weather:   weather.NewGenerator(domain.DefaultRandom, clock, cfg.DisplayTimezone, geocoder, logger),
		Location:  tracker,
		SOS:       sosSvc,
		Contacts:  cfg.EmergencyContacts,
		Logger:    logger,
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	sosSvc.Close()
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
