package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // DISPLAY_TIMEZONE must resolve on hosts without zoneinfo

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/weather-life/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	RefreshInterval time.Duration
	DisplayTimezone *time.Location

	// Static device location. Nil until the display layer reports one.
	Location *domain.Geo

	SOSCountdown   int
	SOSAutoResolve time.Duration

	EmergencyContacts []domain.EmergencyContact

	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaWarningsTopic string
	KafkaSOSTopic      string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parsePositiveDuration("REFRESH_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	autoResolve, err := parsePositiveDuration("SOS_AUTO_RESOLVE", "30s")
	if err != nil {
		return nil, err
	}

	countdown, err := strconv.Atoi(sharedcfg.EnvOrDefault("SOS_COUNTDOWN", "3"))
	if err != nil || countdown <= 0 {
		return nil, errors.New("invalid SOS_COUNTDOWN")
	}

	tz, err := time.LoadLocation(sharedcfg.EnvOrDefault("DISPLAY_TIMEZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}

	location, err := parseLocation()
	if err != nil {
		return nil, err
	}

	contacts := DefaultContacts()
	if path := os.Getenv("EMERGENCY_CONTACTS_FILE"); path != "" {
		contacts, err = LoadContacts(path)
		if err != nil {
			return nil, err
		}
	}

	mapboxCacheSize := parseMapboxCacheSize()

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RefreshInterval: refreshInterval,
		DisplayTimezone: tz,
		Location:        location,

		SOSCountdown:      countdown,
		SOSAutoResolve:    autoResolve,
		EmergencyContacts: contacts,

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaWarningsTopic: sharedcfg.EnvOrDefault("KAFKA_WARNINGS_TOPIC", "disaster-warnings"),
		KafkaSOSTopic:      sharedcfg.EnvOrDefault("KAFKA_SOS_TOPIC", "sos-alerts"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: mapboxCacheSize,
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaWarningsTopic == "" {
			return nil, errors.New("KAFKA_WARNINGS_TOPIC is required")
		}
		if cfg.KafkaSOSTopic == "" {
			return nil, errors.New("KAFKA_SOS_TOPIC is required")
		}
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseLocation reads LOCATION_LAT and LOCATION_LON. Both or neither must
// be set.
func parseLocation() (*domain.Geo, error) {
	latStr, lonStr := os.Getenv("LOCATION_LAT"), os.Getenv("LOCATION_LON")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("LOCATION_LAT and LOCATION_LON must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, errors.New("invalid LOCATION_LAT")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, errors.New("invalid LOCATION_LON")
	}
	return &domain.Geo{Lat: lat, Lon: lon}, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
