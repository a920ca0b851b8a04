package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	zones := []RiskZone{
		{RiskScore: 95},
		{RiskScore: 80},
		{RiskScore: 79},
		{RiskScore: 50},
		{RiskScore: 49},
		{RiskScore: 10, SourceLayer: LayerHeatShelter},
	}

	t.Run("buckets by tier", func(t *testing.T) {
		s := Summarize(ModeSummer, zones)
		assert.Equal(t, 6, s.TotalZones)
		assert.Equal(t, 2, s.HighRisk)
		assert.Equal(t, 2, s.MediumRisk)
		assert.Equal(t, 2, s.LowRisk)
		assert.Nil(t, s.Shelters)
	})

	t.Run("heat mode counts shelters", func(t *testing.T) {
		s := Summarize(ModeHeat, zones)
		require.NotNil(t, s.Shelters)
		assert.Equal(t, 1, *s.Shelters)
	})

	t.Run("heat mode with no shelters still sets the field", func(t *testing.T) {
		s := Summarize(ModeHeat, nil)
		require.NotNil(t, s.Shelters)
		assert.Equal(t, 0, *s.Shelters)
		assert.Equal(t, 0, s.TotalZones)
	})

	t.Run("empty input", func(t *testing.T) {
		s := Summarize(ModeWinter, nil)
		assert.Equal(t, RiskSummary{}, s)
	})
}
