// Package weather supplies current conditions for the narrative layer. With
// an API key configured it reads the upstream observation endpoint; without
// one, or when the upstream fails, it serves synthetic per-mode conditions so
// briefings and alerts always have weather context.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/couchcryptid/climate-ops-service/internal/config"
	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

const observationLocation = "Suwon, Gyeonggi-do"

// Provider implements domain.WeatherProvider.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewProvider creates a weather provider from the service configuration.
func NewProvider(cfg *config.Config, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL: cfg.WeatherBaseURL,
		apiKey:  cfg.WeatherAPIKey,
		httpClient: &http.Client{
			Timeout: cfg.WeatherTimeout,
		},
		logger: logger,
	}
}

// Snapshot returns current conditions, active alerts, and the short-range
// forecast. Upstream failure falls back to synthetic conditions and is never
// surfaced as an error.
func (p *Provider) Snapshot(ctx context.Context, mode domain.Mode) (domain.WeatherSnapshot, error) {
	if p.apiKey == "" {
		return Synthetic(mode), nil
	}

	current, err := p.fetchCurrent(ctx)
	if err != nil {
		p.logger.Warn("weather fetch failed, serving synthetic conditions", "error", err, "mode", mode)
		return Synthetic(mode), nil
	}

	snap := Synthetic(mode)
	snap.Current = current
	return snap, nil
}

func (p *Provider) fetchCurrent(ctx context.Context) (domain.CurrentConditions, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", domain.RegionCenter.Lat)},
		"lon":   {fmt.Sprintf("%.4f", domain.RegionCenter.Lng)},
		"appid": {p.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.CurrentConditions{}, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var obs observation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("decode response: %w", err)
	}

	return obs.conditions(), nil
}

// Observation endpoint response types.

type observation struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneHour float64 `json:"1h"`
	} `json:"snow"`
	Visibility float64 `json:"visibility"`
}

func (o observation) conditions() domain.CurrentConditions {
	c := domain.CurrentConditions{
		Temperature:   o.Main.Temp,
		FeelsLike:     o.Main.FeelsLike,
		Humidity:      o.Main.Humidity,
		WindSpeed:     o.Wind.Speed,
		WindDirection: compassDirection(o.Wind.Deg),
		Visibility:    o.Visibility,
	}
	switch {
	case o.Snow.OneHour > 0:
		c.Precipitation = o.Snow.OneHour
		c.PrecipitationType = "snow"
	case o.Rain.OneHour > 0:
		c.Precipitation = o.Rain.OneHour
		c.PrecipitationType = "rain"
	default:
		c.PrecipitationType = "none"
	}
	return c
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func compassDirection(deg float64) string {
	idx := int((deg+22.5)/45) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}
