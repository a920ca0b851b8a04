package advisor

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// Recommendation is one prioritized action in a briefing.
type Recommendation struct {
	ID              string             `json:"id"`
	Priority        string             `json:"priority"`
	Action          string             `json:"action"`
	Reason          string             `json:"reason"`
	TargetZone      string             `json:"targetZone,omitempty"`
	ResourceType    domain.VehicleType `json:"resourceType,omitempty"`
	ResourceCount   int                `json:"resourceCount,omitempty"`
	EstimatedImpact string             `json:"estimatedImpact"`
}

// RiskPrediction is one hour of the projected risk level.
type RiskPrediction struct {
	Hour      int      `json:"hour"`
	RiskLevel int      `json:"riskLevel"`
	Factors   []string `json:"factors"`
}

// Forecast is the short/mid-term outlook with a trend classification.
type Forecast struct {
	ShortTerm string `json:"shortTerm"`
	MidTerm   string `json:"midTerm"`
	Trend     string `json:"trend"`
}

// KeyMetrics is the briefing's headline numbers.
type KeyMetrics struct {
	TotalRiskZones              int `json:"totalRiskZones"`
	CriticalZones               int `json:"criticalZones"`
	DeployedResources           int `json:"deployedResources"`
	EstimatedAffectedPopulation int `json:"estimatedAffectedPopulation"`
}

// Briefing is the full situation briefing for one mode.
type Briefing struct {
	ID               string           `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	Mode             domain.Mode      `json:"mode"`
	SituationSummary string           `json:"situationSummary"`
	KeyMetrics       KeyMetrics       `json:"keyMetrics"`
	Recommendations  []Recommendation `json:"recommendations"`
	Forecast         Forecast         `json:"forecast"`
	RiskPrediction   []RiskPrediction `json:"riskPrediction"`
}

// riskPatterns encodes the known per-mode risk drift over the next six
// hours: winter risk rises overnight, summer peaks with rainfall, landslide
// risk accumulates, heat peaks midafternoon.
var riskPatterns = map[domain.Mode][7]int{
	domain.ModeWinter:    {0, 5, 10, 15, 12, 8, 5},
	domain.ModeSummer:    {0, 8, 15, 20, 18, 10, 5},
	domain.ModeLandslide: {0, 10, 20, 25, 22, 15, 10},
	domain.ModeHeat:      {0, 5, 10, 15, 18, 15, 10},
}

var forecastTexts = map[domain.Mode]struct{ shortTerm, midTerm string }{
	domain.ModeWinter: {
		shortTerm: "Next 1-2 hours: temperatures keep falling, icing sections spread. Pre-treat major roads first.",
		midTerm:   "Next 3-6 hours: overnight low reached before dawn, icing risk peaks. Expect morning commute congestion.",
	},
	domain.ModeSummer: {
		shortTerm: "Next 1-2 hours: rainfall intensifies, low-lying areas begin to flood. Ready the pumps.",
		midTerm:   "Next 3-6 hours: rainfall peaks then tapers. Keep traffic controls until drainage completes.",
	},
	domain.ModeLandslide: {
		shortTerm: "Next 1-2 hours: soil moisture expected to reach saturation. Complete evacuations in risk zones.",
		midTerm:   "Next 3-6 hours: small collapses possible under further rain. Step up monitoring.",
	},
	domain.ModeHeat: {
		shortTerm: "Next 1-2 hours: daily maximum reached, heat illness risk peaks. Advise against outdoor activity.",
		midTerm:   "Next 3-6 hours: temperatures ease after sunset, tropical night possible. Keep night patrols running.",
	},
}

// GenerateBriefing builds the full situation briefing from the zone list
// and current weather. Deterministic apart from the identifier and the clock.
func GenerateBriefing(mode domain.Mode, zones []domain.RiskZone, weather domain.WeatherSnapshot) Briefing {
	now := domain.Clock().Now()

	var critical, warning int
	for _, z := range zones {
		switch {
		case z.RiskScore >= 80:
			critical++
		case z.RiskScore >= 50:
			warning++
		}
	}

	prediction := riskPrediction(mode, zones, weather)

	return Briefing{
		ID:               "BRIEF-" + uuid.NewString(),
		Timestamp:        now,
		Mode:             mode,
		SituationSummary: situationSummary(mode, zones, weather, critical, warning),
		KeyMetrics: KeyMetrics{
			TotalRiskZones:              len(zones),
			CriticalZones:               critical,
			DeployedResources:           len(zones) * 6 / 10,
			EstimatedAffectedPopulation: critical * 15000,
		},
		Recommendations: recommendations(mode, zones, critical),
		Forecast:        forecast(mode, prediction),
		RiskPrediction:  prediction,
	}
}

func situationSummary(mode domain.Mode, zones []domain.RiskZone, weather domain.WeatherSnapshot, critical, warning int) string {
	cur := weather.Current
	switch mode {
	case domain.ModeWinter:
		return fmt.Sprintf(
			"Temperature %.0f°C, feels like %.0f°C: icing conditions are met. Black-ice risk detected on %d sections across the province, %d of which need immediate action. Snowfall of %.0fmm/h is expected to worsen road conditions.",
			cur.Temperature, cur.FeelsLike, len(zones), critical, cur.Precipitation)
	case domain.ModeSummer:
		return fmt.Sprintf(
			"Rainfall of %.0fmm/h is in progress. Flood risk detected on %d sections across the province; pump deployment to %d high-risk sections is urgent. Rainfall intensity is expected to rise over the next 2-3 hours.",
			cur.Precipitation, len(zones), critical)
	case domain.ModeLandslide:
		return fmt.Sprintf(
			"Concentrated rainfall has produced landslide warning signs at %d mountain sites. Urgent evacuation is needed at %d grade-1 risk zones. Soil saturation is approaching its threshold and further rain sharply raises collapse risk.",
			len(zones), critical)
	case domain.ModeHeat:
		return fmt.Sprintf(
			"Temperature %.0f°C, feels like %.0f°C: heatwave warning level. Heat illness risk is elevated in %d climate-vulnerable areas; %d areas with concentrated elderly residents need urgent patrols. %d areas are on watch.",
			cur.Temperature, cur.FeelsLike, len(zones), critical, warning)
	}
	return ""
}

func recommendations(mode domain.Mode, zones []domain.RiskZone, critical int) []Recommendation {
	info := mode.Info()
	var recs []Recommendation

	var top *domain.RiskZone
	for i := range zones {
		if zones[i].RiskScore >= 80 {
			top = &zones[i]
			break
		}
	}

	if top != nil {
		recs = append(recs, Recommendation{
			ID:              "REC-001",
			Priority:        "critical",
			Action:          fmt.Sprintf("Deploy %s to %s immediately", info.Vehicle, top.Name),
			Reason:          fmt.Sprintf("Risk %d%%, top response priority. %s", top.RiskScore, top.Reason),
			TargetZone:      top.ID,
			ResourceType:    info.Vehicle,
			ResourceCount:   2,
			EstimatedImpact: "Expected 30% risk reduction in the zone",
		})
	}

	if critical > 1 {
		recs = append(recs, Recommendation{
			ID:              "REC-002",
			Priority:        "high",
			Action:          fmt.Sprintf("Stage units across %d high-risk zones in sequence", critical),
			Reason:          fmt.Sprintf("%d zones are above 80%% risk. Prepare for simultaneous incidents", critical),
			ResourceType:    info.Vehicle,
			ResourceCount:   min(critical, 5),
			EstimatedImpact: "40% faster response across all high-risk zones",
		})
	}

	recs = append(recs, Recommendation{
		ID:              "REC-003",
		Priority:        "high",
		Action:          "Send emergency public alert",
		Reason:          fmt.Sprintf("Residents of %d high-risk zones need advance warning", critical),
		EstimatedImpact: "Expected 50% reduction in affected residents",
	})

	recs = append(recs, modeRecommendation(mode))
	return recs
}

// modeRecommendation is the fixed fourth slot: one mode-specific action.
func modeRecommendation(mode domain.Mode) Recommendation {
	switch mode {
	case domain.ModeWinter:
		return Recommendation{
			ID:              "REC-004",
			Priority:        "medium",
			Action:          "Widen the de-icing salt coverage",
			Reason:          "Falling temperatures are expected to spread icing sections",
			EstimatedImpact: "25% better icing accident prevention",
		}
	case domain.ModeSummer:
		return Recommendation{
			ID:              "REC-004",
			Priority:        "medium",
			Action:          "Prepare underpass closures in advance",
			Reason:          "Rainfall intensity rising, underpass flooding likely",
			EstimatedImpact: "Prevents stranded-vehicle incidents",
		}
	case domain.ModeLandslide:
		return Recommendation{
			ID:              "REC-004",
			Priority:        "critical",
			Action:          "Advise residents in risk zones to evacuate early",
			Reason:          "Soil saturation expected to reach its threshold",
			EstimatedImpact: "Minimizes casualties",
		}
	default:
		return Recommendation{
			ID:              "REC-004",
			Priority:        "high",
			Action:          "Run urgent patrols of elderly residents living alone",
			Reason:          "Heat-stroke-vulnerable residents need close management",
			EstimatedImpact: "60% lower heat illness mortality",
		}
	}
}

// riskPrediction projects the risk level over the next six hours by adding
// the mode's drift pattern to the current average zone score.
func riskPrediction(mode domain.Mode, zones []domain.RiskZone, weather domain.WeatherSnapshot) []RiskPrediction {
	current := 30.0
	if len(zones) > 0 {
		sum := 0
		for _, z := range zones {
			sum += z.RiskScore
		}
		current = float64(sum) / float64(len(zones))
	}

	pattern := riskPatterns[mode]
	predictions := make([]RiskPrediction, 0, len(pattern))
	for hour, delta := range pattern {
		level := int(math.Min(100, current+float64(delta)))
		predictions = append(predictions, RiskPrediction{
			Hour:      hour,
			RiskLevel: level,
			Factors:   predictionFactors(mode, weather, hour),
		})
	}
	return predictions
}

func predictionFactors(mode domain.Mode, weather domain.WeatherSnapshot, hour int) []string {
	var factors []string
	switch mode {
	case domain.ModeWinter:
		if hour >= 2 {
			factors = append(factors, "overnight temperature drop")
		}
		if weather.Current.Precipitation > 0 {
			factors = append(factors, "continued snowfall")
		}
	case domain.ModeSummer:
		if weather.Current.Precipitation > 30 {
			factors = append(factors, "rainfall intensity rising")
		}
		factors = append(factors, "drainage capacity limits")
	case domain.ModeLandslide:
		factors = append(factors, "accumulating rainfall")
		if hour >= 3 {
			factors = append(factors, "soil saturation")
		}
	case domain.ModeHeat:
		if hour >= 2 && hour <= 4 {
			factors = append(factors, "peak solar radiation")
		}
		factors = append(factors, "urban heat island effect")
	}
	return factors
}

// forecast classifies the six-hour trend: worsening when the projected peak
// clears the current level by more than 10 points, improving when it falls
// more than 10 points below, stable otherwise.
func forecast(mode domain.Mode, predictions []RiskPrediction) Forecast {
	current := predictions[0].RiskLevel
	peak := current
	for _, p := range predictions {
		if p.RiskLevel > peak {
			peak = p.RiskLevel
		}
	}

	trend := "stable"
	switch {
	case peak > current+10:
		trend = "worsening"
	case peak < current-10:
		trend = "improving"
	}

	texts := forecastTexts[mode]
	return Forecast{ShortTerm: texts.shortTerm, MidTerm: texts.midTerm, Trend: trend}
}
