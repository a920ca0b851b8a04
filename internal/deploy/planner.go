// Package deploy matches available vehicles to dispatch-worthy risk zones.
// The planner is a greedy nearest-vehicle assignment over haversine
// distance, zones taken in descending score order.
package deploy

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

// dispatchThreshold is the minimum score that makes a zone dispatch-worthy.
const dispatchThreshold = 50

// Average road speeds in km/h per vehicle class, used for the ETA estimate.
// Heavy tracked equipment moves slower than trucks.
const (
	defaultSpeedKmh       = 40.0
	excavatorSpeedKmh     = 25.0
	mobileShelterSpeedKmh = 30.0
)

// stagingMinutes is the fixed crew prep time added to every ETA.
const stagingMinutes = 3

// Planner builds deployment plans for one mode at a time.
type Planner struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Planner.
func New(logger *slog.Logger, metrics *observability.Metrics) *Planner {
	return &Planner{logger: logger, metrics: metrics}
}

// Plan matches vehicles to zones. Zones below the dispatch threshold and
// vehicles that are not idle are ignored. Empty input on either side yields
// an empty plan, never an error.
func (p *Planner) Plan(mode domain.Mode, zones []domain.RiskZone, fleet []domain.Vehicle) domain.DeploymentPlan {
	targets := dispatchWorthy(zones)
	available := idleVehicles(fleet)

	var suggestions []domain.DeploymentSuggestion
	assigned := make(map[string]bool, len(available))

	for _, zone := range targets {
		if len(assigned) == len(available) {
			break
		}
		ranked := rankByDistance(zone, available, assigned)
		primary := ranked[0]

		vehicle := primary.vehicle
		vehicle.AssignedZone = zone.ID
		vehicle.ETA = primary.eta
		assigned[vehicle.ID] = true

		var alternatives []domain.Vehicle
		for _, alt := range ranked[1:] {
			if len(alternatives) == 2 {
				break
			}
			alternatives = append(alternatives, alt.vehicle)
		}

		suggestions = append(suggestions, domain.DeploymentSuggestion{
			ID:               fmt.Sprintf("DEP-%03d", len(suggestions)+1),
			Priority:         priorityFor(zone.RiskScore),
			TargetZone:       zone,
			Vehicle:          vehicle,
			Distance:         primary.distance,
			EstimatedArrival: primary.eta,
			Reason: fmt.Sprintf("Risk %d%% zone, nearest available %s is %.1fkm out",
				zone.RiskScore, vehicle.Type, primary.distance),
			AlternativeVehicles: alternatives,
		})
	}

	p.metrics.SuggestionsBuilt.WithLabelValues(string(mode)).Add(float64(len(suggestions)))
	p.logger.Debug("deployment plan built",
		"mode", mode, "targets", len(targets), "available", len(available), "suggestions", len(suggestions))

	return domain.DeploymentPlan{
		Suggestions: suggestions,
		Summary:     summarize(zones, available, suggestions),
	}
}

func dispatchWorthy(zones []domain.RiskZone) []domain.RiskZone {
	var out []domain.RiskZone
	for _, z := range zones {
		if z.RiskScore >= dispatchThreshold {
			out = append(out, z)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	return out
}

func idleVehicles(fleet []domain.Vehicle) []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range fleet {
		if v.Status == domain.VehicleIdle {
			out = append(out, v)
		}
	}
	return out
}

type rankedVehicle struct {
	vehicle  domain.Vehicle
	distance float64
	eta      int
}

// rankByDistance orders unassigned vehicles by distance to the zone.
// Callers guarantee at least one unassigned vehicle remains.
func rankByDistance(zone domain.RiskZone, vehicles []domain.Vehicle, assigned map[string]bool) []rankedVehicle {
	var ranked []rankedVehicle
	for _, v := range vehicles {
		if assigned[v.ID] {
			continue
		}
		d := distanceKm(v.Location, zone.Coordinates)
		ranked = append(ranked, rankedVehicle{vehicle: v, distance: d, eta: etaMinutes(v.Type, d)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].distance < ranked[j].distance })
	return ranked
}

func priorityFor(score int) domain.SuggestionPriority {
	switch {
	case score >= 90:
		return domain.PriorityCritical
	case score >= 70:
		return domain.PriorityHigh
	default:
		return domain.PriorityMedium
	}
}

// distanceKm is the haversine great-circle distance, rounded to 0.1km.
func distanceKm(a, b domain.Coordinate) float64 {
	const earthRadiusKm = 6371.0

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
	return math.Round(d*10) / 10
}

// etaMinutes estimates travel time from distance and vehicle class, plus
// fixed staging time. Strictly non-decreasing in distance within a class.
func etaMinutes(vt domain.VehicleType, distanceKm float64) int {
	speed := defaultSpeedKmh
	switch vt {
	case domain.VehicleExcavator:
		speed = excavatorSpeedKmh
	case domain.VehicleMobileShelter:
		speed = mobileShelterSpeedKmh
	}
	return int(math.Ceil(distanceKm/speed*60)) + stagingMinutes
}

func summarize(zones []domain.RiskZone, available []domain.Vehicle, suggestions []domain.DeploymentSuggestion) domain.DeploymentSummary {
	critical := 0
	for _, z := range zones {
		if z.RiskScore >= 80 {
			critical++
		}
	}

	avgETA := 0
	if len(suggestions) > 0 {
		sum := 0
		for _, s := range suggestions {
			sum += s.EstimatedArrival
		}
		avgETA = sum / len(suggestions)
	}

	coveredCritical := 0
	for _, s := range suggestions {
		if s.TargetZone.RiskScore >= 80 {
			coveredCritical++
		}
	}

	var recs []string
	if uncovered := critical - coveredCritical; uncovered > 0 {
		recs = append(recs, fmt.Sprintf("Insufficient vehicles: %d critical zones uncovered. Request support from neighboring districts.", uncovered))
	}
	if len(available) == 0 {
		recs = append(recs, "No vehicles available. Recall returning units or request mutual aid.")
	}
	if avgETA > 30 {
		recs = append(recs, fmt.Sprintf("Average arrival time %d min exceeds 30 min. Stage units closer to the risk zones.", avgETA))
	}

	return domain.DeploymentSummary{
		CriticalZonesCount: critical,
		AvailableVehicles:  len(available),
		AverageETA:         avgETA,
		Recommendations:    recs,
	}
}
