package deploy

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

func testPlanner() *Planner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, observability.NewMetricsForTesting())
}

func planZone(id string, score int, lat, lng float64) domain.RiskZone {
	return domain.RiskZone{
		ID:          id,
		Name:        "Suwon-si flood risk zone",
		Coordinates: domain.Coordinate{Lat: lat, Lng: lng},
		RiskScore:   score,
		Mode:        domain.ModeSummer,
	}
}

func vehicle(id string, status domain.VehicleStatus, lat, lng float64) domain.Vehicle {
	return domain.Vehicle{
		ID:       id,
		Type:     domain.VehiclePumpTruck,
		Name:     id,
		Status:   status,
		Location: domain.Coordinate{Lat: lat, Lng: lng},
	}
}

func TestPlan(t *testing.T) {
	p := testPlanner()

	t.Run("nearest idle vehicle wins the top zone", func(t *testing.T) {
		zones := []domain.RiskZone{
			planZone("z-high", 92, 37.26, 127.03),
			planZone("z-mid", 75, 37.66, 127.22),
		}
		fleet := []domain.Vehicle{
			vehicle("v-near", domain.VehicleIdle, 37.27, 127.04),
			vehicle("v-far", domain.VehicleIdle, 37.70, 127.20),
			vehicle("v-busy", domain.VehicleWorking, 37.26, 127.03),
		}

		plan := p.Plan(domain.ModeSummer, zones, fleet)

		require.Len(t, plan.Suggestions, 2)
		top := plan.Suggestions[0]
		assert.Equal(t, "DEP-001", top.ID)
		assert.Equal(t, "z-high", top.TargetZone.ID)
		assert.Equal(t, "v-near", top.Vehicle.ID)
		assert.Equal(t, domain.PriorityCritical, top.Priority)
		assert.Equal(t, "z-high", top.Vehicle.AssignedZone)
		assert.Greater(t, top.EstimatedArrival, 0)

		second := plan.Suggestions[1]
		assert.Equal(t, "z-mid", second.TargetZone.ID)
		assert.Equal(t, "v-far", second.Vehicle.ID)
		assert.Equal(t, domain.PriorityHigh, second.Priority)
	})

	t.Run("no vehicle assigned twice", func(t *testing.T) {
		zones := []domain.RiskZone{
			planZone("z1", 95, 37.26, 127.03),
			planZone("z2", 90, 37.40, 127.10),
			planZone("z3", 85, 37.50, 126.90),
		}
		fleet := []domain.Vehicle{
			vehicle("v1", domain.VehicleIdle, 37.30, 127.00),
			vehicle("v2", domain.VehicleIdle, 37.45, 127.05),
		}

		plan := p.Plan(domain.ModeSummer, zones, fleet)

		require.Len(t, plan.Suggestions, 2)
		seen := make(map[string]bool)
		for _, s := range plan.Suggestions {
			assert.False(t, seen[s.Vehicle.ID], "vehicle %s assigned twice", s.Vehicle.ID)
			seen[s.Vehicle.ID] = true
		}
	})

	t.Run("zones below threshold are skipped", func(t *testing.T) {
		zones := []domain.RiskZone{
			planZone("z-low", 40, 37.26, 127.03),
			planZone("z-shelter", 10, 37.30, 127.05),
		}
		fleet := []domain.Vehicle{vehicle("v1", domain.VehicleIdle, 37.30, 127.00)}

		plan := p.Plan(domain.ModeSummer, zones, fleet)
		assert.Empty(t, plan.Suggestions)
		assert.Equal(t, 1, plan.Summary.AvailableVehicles)
	})

	t.Run("graceful empty on both sides", func(t *testing.T) {
		empty := p.Plan(domain.ModeSummer, nil, []domain.Vehicle{vehicle("v1", domain.VehicleIdle, 37.3, 127.0)})
		assert.Empty(t, empty.Suggestions)
		assert.Equal(t, 0, empty.Summary.CriticalZonesCount)

		empty = p.Plan(domain.ModeSummer, []domain.RiskZone{planZone("z1", 95, 37.3, 127.0)}, nil)
		assert.Empty(t, empty.Suggestions)
		assert.Equal(t, 0, empty.Summary.AvailableVehicles)
		assert.Equal(t, 1, empty.Summary.CriticalZonesCount)
		assert.Equal(t, 0, empty.Summary.AverageETA)
	})

	t.Run("alternatives are the next nearest unassigned", func(t *testing.T) {
		zones := []domain.RiskZone{planZone("z1", 95, 37.26, 127.03)}
		fleet := []domain.Vehicle{
			vehicle("v1", domain.VehicleIdle, 37.27, 127.04),
			vehicle("v2", domain.VehicleIdle, 37.30, 127.06),
			vehicle("v3", domain.VehicleIdle, 37.40, 127.10),
			vehicle("v4", domain.VehicleIdle, 37.60, 127.30),
		}

		plan := p.Plan(domain.ModeSummer, zones, fleet)

		require.Len(t, plan.Suggestions, 1)
		s := plan.Suggestions[0]
		assert.Equal(t, "v1", s.Vehicle.ID)
		require.Len(t, s.AlternativeVehicles, 2)
		assert.Equal(t, "v2", s.AlternativeVehicles[0].ID)
		assert.Equal(t, "v3", s.AlternativeVehicles[1].ID)
	})

	t.Run("uncovered critical zones produce a recommendation", func(t *testing.T) {
		zones := []domain.RiskZone{
			planZone("z1", 95, 37.26, 127.03),
			planZone("z2", 90, 37.40, 127.10),
		}
		fleet := []domain.Vehicle{vehicle("v1", domain.VehicleIdle, 37.30, 127.00)}

		plan := p.Plan(domain.ModeSummer, zones, fleet)

		require.Len(t, plan.Suggestions, 1)
		assert.Equal(t, 2, plan.Summary.CriticalZonesCount)
		require.NotEmpty(t, plan.Summary.Recommendations)
		assert.Contains(t, plan.Summary.Recommendations[0], "1 critical zones uncovered")
	})

	t.Run("no available vehicles recommendation", func(t *testing.T) {
		zones := []domain.RiskZone{planZone("z1", 95, 37.26, 127.03)}
		fleet := []domain.Vehicle{vehicle("v1", domain.VehicleWorking, 37.30, 127.00)}

		plan := p.Plan(domain.ModeSummer, zones, fleet)
		assert.Empty(t, plan.Suggestions)
		found := false
		for _, r := range plan.Summary.Recommendations {
			if r == "No vehicles available. Recall returning units or request mutual aid." {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestDistanceAndETA(t *testing.T) {
	t.Run("haversine sanity", func(t *testing.T) {
		suwon := domain.Coordinate{Lat: 37.2636, Lng: 127.0286}
		seongnam := domain.Coordinate{Lat: 37.4200, Lng: 127.1267}
		d := distanceKm(suwon, seongnam)
		assert.InDelta(t, 19.4, d, 1.0)
		assert.Equal(t, 0.0, distanceKm(suwon, suwon))
	})

	t.Run("eta is monotone in distance", func(t *testing.T) {
		prev := 0
		for _, d := range []float64{0, 1, 5, 10, 20, 50} {
			eta := etaMinutes(domain.VehiclePumpTruck, d)
			assert.GreaterOrEqual(t, eta, prev)
			prev = eta
		}
	})

	t.Run("slow classes take longer", func(t *testing.T) {
		assert.Greater(t, etaMinutes(domain.VehicleExcavator, 20), etaMinutes(domain.VehiclePumpTruck, 20))
		assert.Greater(t, etaMinutes(domain.VehicleMobileShelter, 20), etaMinutes(domain.VehiclePumpTruck, 20))
	})

	t.Run("staging time floor", func(t *testing.T) {
		assert.Equal(t, stagingMinutes, etaMinutes(domain.VehiclePumpTruck, 0))
	})
}
