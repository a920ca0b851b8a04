// Package gis provides feature sources backed by the provincial WFS endpoint,
// a TTL cache wrapper, and a fixture source for offline development.
package gis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/couchcryptid/climate-ops-service/internal/config"
	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

// Client implements domain.FeatureSource against a GeoServer WFS endpoint.
// A circuit breaker shields the upstream during outages; while open,
// QueryLayer fails fast and the analyzer treats the layer as empty.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[domain.FeatureCollection]
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a WFS feature source from the service configuration.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	cb := gobreaker.NewCircuitBreaker[domain.FeatureCollection](gobreaker.Settings{
		Name:        "wfs",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		baseURL: cfg.GISBaseURL,
		apiKey:  cfg.GISAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.GISTimeout,
		},
		breaker: cb,
		logger:  logger,
		metrics: metrics,
	}
}

// QueryLayer fetches up to maxFeatures features from one hazard layer.
func (c *Client) QueryLayer(ctx context.Context, layer string, maxFeatures int) (domain.FeatureCollection, error) {
	start := time.Now()
	fc, err := c.breaker.Execute(func() (domain.FeatureCollection, error) {
		return c.fetch(ctx, layer, maxFeatures)
	})
	c.metrics.SourceFetchDuration.WithLabelValues(layer).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.SourceFetches.WithLabelValues(layer, "error").Inc()
		return domain.FeatureCollection{}, fmt.Errorf("query layer %s: %w", layer, err)
	}
	c.metrics.SourceFetches.WithLabelValues(layer, "success").Inc()
	c.logger.Debug("layer fetched", "layer", layer, "features", len(fc.Features))
	return fc, nil
}

func (c *Client) fetch(ctx context.Context, layer string, maxFeatures int) (domain.FeatureCollection, error) {
	params := url.Values{
		"apiKey":       {c.apiKey},
		"service":      {"WFS"},
		"version":      {"1.1.0"},
		"request":      {"GetFeature"},
		"typeName":     {layer},
		"outputFormat": {"application/json"},
		"maxFeatures":  {strconv.Itoa(maxFeatures)},
		"srsName":      {"EPSG:4326"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("wfs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.FeatureCollection{}, fmt.Errorf("wfs error: status %d: %s", resp.StatusCode, body)
	}

	var fc domain.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("decode response: %w", err)
	}
	return fc, nil
}
