// Package fleet provides the response-fleet roster. Vehicle telemetry has no
// public upstream, so the roster places one unit of the mode's primary
// vehicle class at each of five depot locations across the province.
package fleet

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// Depot coordinates: Suwon, Seongnam, Anyang, Bucheon, Ansan.
var depots = []domain.Coordinate{
	{Lat: 37.2636, Lng: 127.0286},
	{Lat: 37.3595, Lng: 127.1086},
	{Lat: 37.4292, Lng: 126.9876},
	{Lat: 37.5034, Lng: 126.7660},
	{Lat: 37.3180, Lng: 126.8309},
}

// Roster implements domain.FleetProvider.
type Roster struct{}

// NewRoster creates the static fleet roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Vehicles returns the five-unit roster for the mode's primary vehicle
// class. The first two units are idle and dispatchable; the rest are already
// committed, exercising the planner's availability filtering.
func (r *Roster) Vehicles(_ context.Context, mode domain.Mode) ([]domain.Vehicle, error) {
	vt := mode.Info().Vehicle
	if vt == "" {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	vehicles := make([]domain.Vehicle, 0, len(depots))
	for idx, loc := range depots {
		status := domain.VehicleWorking
		eta := 5 + idx*5
		switch {
		case idx < 2:
			status = domain.VehicleIdle
			eta = 0
		case idx < 4:
			status = domain.VehicleDispatched
		}

		vehicles = append(vehicles, domain.Vehicle{
			ID:       fmt.Sprintf("%s-%02d", vt, idx+1),
			Type:     vt,
			Name:     fmt.Sprintf("%s %d", displayName(vt), idx+1),
			Status:   status,
			Location: loc,
			Driver:   fmt.Sprintf("Driver %d", idx+1),
			ETA:      eta,
		})
	}
	return vehicles, nil
}

func displayName(vt domain.VehicleType) string {
	words := strings.Split(string(vt), "-")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
