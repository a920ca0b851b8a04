package domain

// Hazard categories for attribute-driven scoring.
const (
	CategoryFlood     = "flood"
	CategoryLandslide = "landslide"
	CategoryIce       = "ice"
	CategoryHeat      = "heat"
)

// RiskScore grades a feature's attributes on the hazard category's ladder.
// Each ladder reads the category's grading column with the layer's
// documented default, so an attribute-less feature still scores sensibly.
func RiskScore(category string, p Properties) int {
	switch category {
	case CategoryFlood:
		grid := p.Float("grid_code", 0)
		switch {
		case grid >= 4:
			return 95
		case grid >= 3:
			return 85
		case grid >= 2:
			return 70
		default:
			return 50
		}
	case CategoryLandslide:
		switch p.Int("grade", 1) {
		case 1:
			return 95
		case 2:
			return 80
		default:
			return 60
		}
	case CategoryIce:
		slope := p.Float("slope_deg", 20)
		switch {
		case slope >= 30:
			return 95
		case slope >= 25:
			return 85
		case slope >= 20:
			return 75
		default:
			return 60
		}
	case CategoryHeat:
		score := p.Int("score", 50)
		if score > 100 {
			return 100
		}
		if score < 0 {
			return 0
		}
		return score
	}
	return 50
}

// StatusForScore maps a risk score to its response state.
func StatusForScore(score int) Status {
	switch {
	case score >= 80:
		return StatusNeedsAction
	case score >= 50:
		return StatusInProgress
	default:
		return StatusResolved
	}
}
