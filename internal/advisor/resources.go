package advisor

import (
	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// ResourceSummary is a per-equipment-class fleet rollup.
type ResourceSummary struct {
	Type        domain.VehicleType `json:"type"`
	Total       int                `json:"total"`
	Available   int                `json:"available"`
	Deployed    int                `json:"deployed"`
	Maintenance int                `json:"maintenance"`
}

// Personnel is the response staffing rollup.
type Personnel struct {
	Total     int `json:"total"`
	OnDuty    int `json:"onDuty"`
	Deployed  int `json:"deployed"`
	Available int `json:"available"`
}

// modeResources is the static per-mode equipment roster. Live telemetry for
// these counts is out of reach of the platform, so the rollup mirrors the
// provincial equipment register.
var modeResources = map[domain.Mode][]ResourceSummary{
	domain.ModeWinter: {
		{Type: domain.VehicleSnowplow, Total: 15, Available: 8, Deployed: 5, Maintenance: 2},
		{Type: domain.VehicleAmbulance, Total: 10, Available: 7, Deployed: 2, Maintenance: 1},
	},
	domain.ModeSummer: {
		{Type: domain.VehiclePumpTruck, Total: 12, Available: 6, Deployed: 4, Maintenance: 2},
		{Type: domain.VehicleAmbulance, Total: 10, Available: 6, Deployed: 3, Maintenance: 1},
		{Type: domain.VehicleFireEngine, Total: 8, Available: 5, Deployed: 2, Maintenance: 1},
	},
	domain.ModeLandslide: {
		{Type: domain.VehicleExcavator, Total: 8, Available: 4, Deployed: 3, Maintenance: 1},
		{Type: domain.VehicleAmbulance, Total: 10, Available: 5, Deployed: 4, Maintenance: 1},
		{Type: domain.VehicleFireEngine, Total: 8, Available: 4, Deployed: 3, Maintenance: 1},
	},
	domain.ModeHeat: {
		{Type: domain.VehicleMobileShelter, Total: 10, Available: 5, Deployed: 4, Maintenance: 1},
		{Type: domain.VehicleAmbulance, Total: 10, Available: 6, Deployed: 3, Maintenance: 1},
	},
}

// Resources returns the equipment rollup for the mode.
func Resources(mode domain.Mode) []ResourceSummary {
	rs := modeResources[mode]
	out := make([]ResourceSummary, len(rs))
	copy(out, rs)
	return out
}

// PersonnelRoster returns the current staffing rollup.
func PersonnelRoster() Personnel {
	return Personnel{Total: 60, OnDuty: 45, Deployed: 28, Available: 17}
}

// RecommendMode derives the suggested operating mode from current weather.
// Landslide outranks flood outranks heat outranks icing, matching the order
// in which each becomes life-threatening.
func RecommendMode(cur domain.CurrentConditions) (domain.Mode, bool) {
	switch {
	case cur.Precipitation >= 20:
		return domain.ModeLandslide, true
	case cur.Precipitation >= 10:
		return domain.ModeSummer, true
	case cur.Temperature >= 33:
		return domain.ModeHeat, true
	case cur.Temperature <= 3 || cur.PrecipitationType == "snow" || cur.PrecipitationType == "sleet":
		return domain.ModeWinter, true
	}
	return "", false
}
