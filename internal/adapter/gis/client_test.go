package gis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-ops-service/internal/config"
	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

const testAPIKey = "test-key"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string, timeout time.Duration) *Client {
	cfg := &config.Config{
		GISBaseURL: baseURL,
		GISAPIKey:  testAPIKey,
		GISTimeout: timeout,
	}
	return NewClient(cfg, testLogger(), observability.NewMetricsForTesting())
}

func TestClient_QueryLayer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, testAPIKey, q.Get("apiKey"))
		assert.Equal(t, "WFS", q.Get("service"))
		assert.Equal(t, "1.1.0", q.Get("version"))
		assert.Equal(t, "GetFeature", q.Get("request"))
		assert.Equal(t, domain.LayerFloodMap100yr, q.Get("typeName"))
		assert.Equal(t, "application/json", q.Get("outputFormat"))
		assert.Equal(t, "200", q.Get("maxFeatures"))
		assert.Equal(t, "EPSG:4326", q.Get("srsName"))

		fc := domain.FeatureCollection{
			Features: []domain.Feature{
				{
					ID:         "cfm_sgg_41_100yr_1h.101",
					Geometry:   domain.Geometry{Type: "Point", Coordinates: []byte(`[127.01, 37.30]`)},
					Properties: domain.Properties{"grid_code": float64(4), "sgg_nm": "Suwon-si"},
				},
			},
			TotalFeatures: 1,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(fc))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	fc, err := c.QueryLayer(context.Background(), domain.LayerFloodMap100yr, 200)
	require.NoError(t, err)

	require.Len(t, fc.Features, 1)
	assert.Equal(t, "cfm_sgg_41_100yr_1h.101", fc.Features[0].ID)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, 4, fc.Features[0].Properties.Int("grid_code", 0))
}

func TestClient_QueryLayer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	_, err := c.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_QueryLayer_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50*time.Millisecond)
	_, err := c.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.Error(t, err)
}

func TestClient_QueryLayer_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	for range 6 {
		_, err := c.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
		require.Error(t, err)
	}
	assert.Equal(t, 6, requests)

	// Breaker is open now; the next call fails without reaching the server.
	_, err := c.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.Error(t, err)
	assert.Equal(t, 6, requests)
}
