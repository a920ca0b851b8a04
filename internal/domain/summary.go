package domain

// Summarize buckets zones into score tiers. High is 80 and above, medium 50
// to 79, low everything else. In heat mode the shelter count is surfaced
// separately so the dashboard can show coverage next to exposure.
func Summarize(mode Mode, zones []RiskZone) RiskSummary {
	s := RiskSummary{TotalZones: len(zones)}
	shelters := 0
	for _, z := range zones {
		switch {
		case z.RiskScore >= 80:
			s.HighRisk++
		case z.RiskScore >= 50:
			s.MediumRisk++
		default:
			s.LowRisk++
		}
		if z.SourceLayer == LayerHeatShelter {
			shelters++
		}
	}
	if mode == ModeHeat {
		s.Shelters = &shelters
	}
	return s
}
