package gis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

type countingSource struct {
	calls int
	err   error
	fc    domain.FeatureCollection
}

func (s *countingSource) QueryLayer(_ context.Context, _ string, _ int) (domain.FeatureCollection, error) {
	s.calls++
	if s.err != nil {
		return domain.FeatureCollection{}, s.err
	}
	return s.fc, nil
}

func oneFeature() domain.FeatureCollection {
	return domain.FeatureCollection{
		Features:      []domain.Feature{{ID: "slop_20_ovr.1"}},
		TotalFeatures: 1,
	}
}

func fakeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 7, 14, 9, 30, 0, 0, time.UTC))
	domain.SetClock(clock)
	t.Cleanup(func() { domain.SetClock(nil) })
	return clock
}

func TestCachedSource_Hit(t *testing.T) {
	fakeClock(t)
	src := &countingSource{fc: oneFeature()}
	cached := NewCachedSource(src, 8, 5*time.Minute, observability.NewMetricsForTesting())

	first, err := cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)
	second, err := cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first, second)
}

func TestCachedSource_MaxFeaturesIsPartOfTheKey(t *testing.T) {
	fakeClock(t)
	src := &countingSource{fc: oneFeature()}
	cached := NewCachedSource(src, 8, 5*time.Minute, observability.NewMetricsForTesting())

	_, err := cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)
	_, err = cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
}

func TestCachedSource_TTLExpiry(t *testing.T) {
	clock := fakeClock(t)
	src := &countingSource{fc: oneFeature()}
	cached := NewCachedSource(src, 8, 5*time.Minute, observability.NewMetricsForTesting())

	_, err := cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	_, err = cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "entry still fresh")

	clock.Advance(2 * time.Minute)
	_, err = cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "entry expired")
}

func TestCachedSource_ErrorsAndEmptyResultsNotCached(t *testing.T) {
	fakeClock(t)

	src := &countingSource{err: errors.New("upstream down")}
	cached := NewCachedSource(src, 8, 5*time.Minute, observability.NewMetricsForTesting())

	_, err := cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.Error(t, err)
	_, err = cached.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.Error(t, err)
	assert.Equal(t, 2, src.calls)

	empty := &countingSource{}
	cachedEmpty := NewCachedSource(empty, 8, 5*time.Minute, observability.NewMetricsForTesting())
	_, err = cachedEmpty.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)
	_, err = cachedEmpty.QueryLayer(context.Background(), domain.LayerSteepSlope, 200)
	require.NoError(t, err)
	assert.Equal(t, 2, empty.calls)
}

func TestCachedSource_LRUEviction(t *testing.T) {
	fakeClock(t)
	src := &countingSource{fc: oneFeature()}
	cached := NewCachedSource(src, 2, 5*time.Minute, observability.NewMetricsForTesting())

	for i := range 3 {
		_, err := cached.QueryLayer(context.Background(), fmt.Sprintf("layer_%d", i), 100)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.calls)

	// layer_0 was evicted; layer_2 is still resident.
	_, err := cached.QueryLayer(context.Background(), "layer_0", 100)
	require.NoError(t, err)
	assert.Equal(t, 4, src.calls)

	_, err = cached.QueryLayer(context.Background(), "layer_2", 100)
	require.NoError(t, err)
	assert.Equal(t, 4, src.calls)
}
