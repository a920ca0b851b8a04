// Command validate checks a layer fixture directory for integrity: every
// known layer parses as GeoJSON, geometries resolve to coordinates inside
// the province, and the attributes each scoring ladder reads are present.
// Exits non-zero when any check fails.
//
// Usage:
//
//	go run ./cmd/validate -fixtures data/fixtures
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// requiredAttrs lists, per layer, the attribute keys the risk builders read.
var requiredAttrs = map[string][]string{
	domain.LayerSteepSlope:      {"slope_deg"},
	domain.LayerHighAltitude:    {},
	domain.LayerMountainRivers:  {},
	domain.LayerRoads:           {"rd_type"},
	domain.LayerFloodMap100yr:   {"grid_code"},
	domain.LayerImpervious:      {"impvs_rate"},
	domain.LayerLandslideGrade1: {},
	domain.LayerLandslideWeak:   {},
	domain.LayerClimateScore:    {"htwv_dngr_scr"},
	domain.LayerHeatShelter:     {"nm"},
}

func main() {
	fixtures := flag.String("fixtures", "", "fixture directory to validate")
	flag.Parse()

	if *fixtures == "" {
		flag.Usage()
		os.Exit(2)
	}

	failures := 0
	for layer, attrs := range requiredAttrs {
		if err := validateLayer(*fixtures, layer, attrs); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", layer, err)
			failures++
			continue
		}
		fmt.Printf("ok   %s\n", layer)
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d layers failed validation\n", failures, len(requiredAttrs))
		os.Exit(1)
	}
	fmt.Printf("all %d layers valid\n", len(requiredAttrs))
}

func validateLayer(dir, layer string, attrs []string) error {
	path := filepath.Join(dir, layer+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var fc domain.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if len(fc.Features) == 0 {
		return fmt.Errorf("no features")
	}

	knownGeometry := map[string]bool{
		"Point": true, "Polygon": true, "MultiPolygon": true,
		"LineString": true, "MultiLineString": true,
	}

	for _, f := range fc.Features {
		if f.ID == "" {
			return fmt.Errorf("feature with empty id")
		}
		if !knownGeometry[f.Geometry.Type] {
			return fmt.Errorf("feature %s has unsupported geometry type %q", f.ID, f.Geometry.Type)
		}
		coord := domain.ResolveCoordinate(f)
		if !domain.InBounds(coord) {
			return fmt.Errorf("feature %s resolves outside the province: [%f, %f]", f.ID, coord.Lat, coord.Lng)
		}
		for _, key := range attrs {
			if _, ok := f.Properties[key]; !ok {
				return fmt.Errorf("feature %s missing attribute %q", f.ID, key)
			}
		}
	}
	return nil
}
