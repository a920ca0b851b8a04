package weather

import (
	"time"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// syntheticProfile is the representative hazard-season weather for one mode.
type syntheticProfile struct {
	temperature   float64
	feelsLike     float64
	humidity      float64
	precipitation float64
	precipType    string
	windSpeed     float64
	visibility    float64
	uvIndex       float64
	condition     string
	alertType     string
	alertSeverity string
	alertTitle    string
	alertDesc     string
}

var profiles = map[domain.Mode]syntheticProfile{
	domain.ModeWinter: {
		temperature:   -3,
		feelsLike:     -8,
		humidity:      45,
		precipitation: 2,
		precipType:    "snow",
		windSpeed:     12,
		visibility:    500,
		uvIndex:       3,
		condition:     "snow",
		alertType:     "cold-wave",
		alertSeverity: "warning",
		alertTitle:    "Cold Wave Warning",
		alertDesc:     "Sub-zero temperatures with snowfall. Black ice expected on bridges and shaded road sections.",
	},
	domain.ModeSummer: {
		temperature:   28,
		feelsLike:     32,
		humidity:      85,
		precipitation: 45,
		precipType:    "rain",
		windSpeed:     8,
		visibility:    10000,
		uvIndex:       3,
		condition:     "heavy-rain",
		alertType:     "heavy-rain",
		alertSeverity: "warning",
		alertTitle:    "Heavy Rain Warning",
		alertDesc:     "Hourly rainfall exceeding 40mm. Low-lying districts at risk of inundation.",
	},
	domain.ModeLandslide: {
		temperature:   22,
		feelsLike:     24,
		humidity:      90,
		precipitation: 60,
		precipType:    "rain",
		windSpeed:     15,
		visibility:    10000,
		uvIndex:       3,
		condition:     "heavy-rain",
		alertType:     "landslide",
		alertSeverity: "warning",
		alertTitle:    "Landslide Watch",
		alertDesc:     "Saturated slopes after sustained heavy rainfall. Grade-1 hazard zones under watch.",
	},
	domain.ModeHeat: {
		temperature:   36,
		feelsLike:     42,
		humidity:      70,
		precipitation: 0,
		precipType:    "none",
		windSpeed:     3,
		visibility:    10000,
		uvIndex:       11,
		condition:     "clear",
		alertType:     "heatwave",
		alertSeverity: "emergency",
		alertTitle:    "Heatwave Emergency",
		alertDesc:     "Daytime highs above 35C for a third consecutive day. Heat illness risk is severe.",
	},
}

// Synthetic returns the representative weather snapshot for the mode,
// timestamped with the shared service clock.
func Synthetic(mode domain.Mode) domain.WeatherSnapshot {
	prof, ok := profiles[mode]
	if !ok {
		prof = profiles[domain.ModeSummer]
	}
	now := domain.Clock().Now()

	return domain.WeatherSnapshot{
		Timestamp: now,
		Location:  observationLocation,
		Current: domain.CurrentConditions{
			Temperature:       prof.temperature,
			FeelsLike:         prof.feelsLike,
			Humidity:          prof.humidity,
			Precipitation:     prof.precipitation,
			PrecipitationType: prof.precipType,
			WindSpeed:         prof.windSpeed,
			WindDirection:     "NW",
			Visibility:        prof.visibility,
			UVIndex:           prof.uvIndex,
		},
		Alerts: []domain.WeatherAlert{
			{
				Type:        prof.alertType,
				Severity:    prof.alertSeverity,
				Title:       prof.alertTitle,
				Description: prof.alertDesc,
				StartTime:   now,
				EndTime:     now.Add(6 * time.Hour),
			},
		},
		Hourly: syntheticHourly(prof),
	}
}

// syntheticHourly drifts the current conditions over the next six hours.
// Precipitation builds toward mid-window then tapers, matching the typical
// shape of a convective event.
func syntheticHourly(prof syntheticProfile) []domain.HourlyForecast {
	hours := make([]domain.HourlyForecast, 0, 7)
	for h := range 7 {
		precip := prof.precipitation
		switch {
		case h >= 2 && h <= 4:
			precip = prof.precipitation * 1.3
		case h > 4:
			precip = prof.precipitation * 0.6
		}

		probability := 10.0
		if prof.precipitation > 0 {
			probability = 80
		}

		hours = append(hours, domain.HourlyForecast{
			Hour:                     h,
			Temperature:              prof.temperature - float64(h)*0.5,
			Precipitation:            precip,
			PrecipitationProbability: probability,
			WindSpeed:                prof.windSpeed,
			Condition:                prof.condition,
		})
	}
	return hours
}
