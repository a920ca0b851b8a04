// Package config loads service settings from the environment.
//
// Load resolution order:
//  1. .env file via godotenv (non-fatal if absent, never overrides real env).
//  2. Environment variables via envconfig struct tags.
//  3. Struct-level validation via go-playground/validator.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	// Geospatial (WFS) source configuration.
	GISBaseURL   string        `envconfig:"GIS_BASE_URL" default:"https://climate.gg.go.kr/ols/api/geoserver/wfs" validate:"required,url"`
	GISAPIKey    string        `envconfig:"GIS_API_KEY"`
	GISTimeout   time.Duration `envconfig:"GIS_TIMEOUT" default:"10s" validate:"gt=0"`
	GISCacheSize int           `envconfig:"GIS_CACHE_SIZE" default:"256" validate:"gt=0"`
	GISCacheTTL  time.Duration `envconfig:"GIS_CACHE_TTL" default:"5m" validate:"gt=0"`

	// When set, the service reads layer fixtures from this directory instead
	// of calling the WFS endpoint. Used for development and demos.
	GISFixtureDir string `envconfig:"GIS_FIXTURE_DIR"`

	// Weather source configuration. Without an API key the service serves
	// synthetic per-mode conditions.
	WeatherBaseURL string        `envconfig:"WEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5" validate:"required,url"`
	WeatherAPIKey  string        `envconfig:"WEATHER_API_KEY"`
	WeatherTimeout time.Duration `envconfig:"WEATHER_TIMEOUT" default:"5s" validate:"gt=0"`

	// Emergency alert publishing (feature-flagged).
	AlertsEnabled   bool     `envconfig:"ALERTS_ENABLED" default:"false"`
	KafkaBrokers    []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaAlertTopic string   `envconfig:"KAFKA_ALERT_TOPIC" default:"emergency-alerts"`
}

// MockMode reports whether the feature source reads local fixtures.
func (c *Config) MockMode() bool {
	return c.GISFixtureDir != ""
}

// Load reads configuration from the environment, applying defaults where
// unset.
func Load() (*Config, error) {
	// Silently succeeds when no .env file exists.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if cfg.AlertsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaAlertTopic == "" {
			return nil, errors.New("ALERTS_ENABLED is true but KAFKA_ALERT_TOPIC is not set")
		}
	}
	if !cfg.MockMode() && cfg.GISAPIKey == "" {
		return nil, errors.New("GIS_API_KEY is required unless GIS_FIXTURE_DIR is set")
	}

	return &cfg, nil
}
