package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIS_FIXTURE_DIR", "testdata/layers")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.GISTimeout)
	assert.Equal(t, 256, cfg.GISCacheSize)
	assert.Equal(t, 5*time.Minute, cfg.GISCacheTTL)
	assert.False(t, cfg.AlertsEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.MockMode())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("GIS_API_KEY", "k-123")
	t.Setenv("GIS_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.GISTimeout)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.MockMode())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("GIS_FIXTURE_DIR", "testdata/layers")
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("GIS_FIXTURE_DIR", "testdata/layers")
		t.Setenv("GIS_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("live mode requires api key", func(t *testing.T) {
		t.Setenv("GIS_API_KEY", "")
		t.Setenv("GIS_FIXTURE_DIR", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("alerts require a topic", func(t *testing.T) {
		t.Setenv("GIS_FIXTURE_DIR", "testdata/layers")
		t.Setenv("ALERTS_ENABLED", "true")
		t.Setenv("KAFKA_ALERT_TOPIC", "")
		_, err := Load()
		assert.Error(t, err)
	})
}
