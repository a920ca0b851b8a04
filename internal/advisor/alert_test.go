package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

func TestGenerateEmergencyAlert(t *testing.T) {
	frozenClock(t)

	t.Run("escalates at three critical zones", func(t *testing.T) {
		zones := []domain.RiskZone{zone("a", 95), zone("b", 90), zone("c", 85), zone("d", 82)}
		alert := GenerateEmergencyAlert(domain.ModeSummer, zones, summerWeather())

		assert.Equal(t, AlertTypeEmergency, alert.Type)
		assert.Equal(t, []string{"CBS", "SMS"}, alert.Channels)
		assert.Equal(t, []string{"a", "b", "c"}, alert.BasedOnZones)
		assert.Equal(t, "draft", alert.Status)
		assert.True(t, strings.HasPrefix(alert.ID, "ALERT-"))
		assert.Contains(t, alert.Content, "flood warning")
		assert.Contains(t, alert.TargetArea, "Gyeonggi")
		require.Len(t, alert.ActionItems, 4)
	})

	t.Run("advisory below three critical zones", func(t *testing.T) {
		zones := []domain.RiskZone{zone("a", 95), zone("b", 60)}
		alert := GenerateEmergencyAlert(domain.ModeWinter, zones, summerWeather())

		assert.Equal(t, AlertTypeAdvisory, alert.Type)
		assert.Equal(t, []string{"a"}, alert.BasedOnZones)
		assert.Contains(t, alert.Title, "icing")
	})
}

func TestGenerateSituationReport(t *testing.T) {
	frozenClock(t)
	resources := Resources(domain.ModeLandslide)

	t.Run("level escalation", func(t *testing.T) {
		var zones []domain.RiskZone
		for range 4 {
			zones = append(zones, zone("z", 90))
		}
		rpt := GenerateSituationReport(domain.ModeLandslide, zones, resources)
		assert.Equal(t, StatusLevel3, rpt.Overview.CurrentStatus)

		rpt = GenerateSituationReport(domain.ModeLandslide, zones[:2], resources)
		assert.Equal(t, StatusLevel2, rpt.Overview.CurrentStatus)

		rpt = GenerateSituationReport(domain.ModeLandslide, nil, resources)
		assert.Equal(t, StatusWatch, rpt.Overview.CurrentStatus)
		assert.Equal(t, "none", rpt.Overview.EstimatedDamage)
	})

	t.Run("summary counts deployed equipment", func(t *testing.T) {
		rpt := GenerateSituationReport(domain.ModeLandslide, []domain.RiskZone{zone("a", 90)}, resources)

		assert.True(t, strings.HasPrefix(rpt.ID, "RPT-"))
		assert.Contains(t, rpt.ExecutiveSummary, "10 units of equipment")
		assert.Contains(t, rpt.Response.OngoingActions[0], "excavator")
		assert.Equal(t, []string{"Suwon-si"}, rpt.Overview.AffectedAreas)
	})
}

func TestResources(t *testing.T) {
	t.Run("per-mode rosters", func(t *testing.T) {
		winter := Resources(domain.ModeWinter)
		require.Len(t, winter, 2)
		assert.Equal(t, domain.VehicleSnowplow, winter[0].Type)

		summer := Resources(domain.ModeSummer)
		require.Len(t, summer, 3)
		assert.Equal(t, domain.VehiclePumpTruck, summer[0].Type)
	})

	t.Run("returns a copy", func(t *testing.T) {
		rs := Resources(domain.ModeHeat)
		rs[0].Deployed = 99
		assert.Equal(t, 4, Resources(domain.ModeHeat)[0].Deployed)
	})
}

func TestRecommendMode(t *testing.T) {
	tests := []struct {
		name string
		cur  domain.CurrentConditions
		want domain.Mode
		ok   bool
	}{
		{"heavy rain picks landslide", domain.CurrentConditions{Temperature: 22, Precipitation: 60}, domain.ModeLandslide, true},
		{"moderate rain picks flood", domain.CurrentConditions{Temperature: 25, Precipitation: 12}, domain.ModeSummer, true},
		{"hot and dry picks heat", domain.CurrentConditions{Temperature: 36}, domain.ModeHeat, true},
		{"freezing picks winter", domain.CurrentConditions{Temperature: -3}, domain.ModeWinter, true},
		{"snow picks winter above freezing", domain.CurrentConditions{Temperature: 5, PrecipitationType: "snow"}, domain.ModeWinter, true},
		{"mild weather picks nothing", domain.CurrentConditions{Temperature: 18}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := RecommendMode(tt.cur)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, mode)
		})
	}
}
