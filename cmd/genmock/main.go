// Command genmock generates GeoJSON layer fixtures for the analysis test
// suites and for running the service with GIS_FIXTURE_DIR set. Attribute
// distributions mirror what the provincial WFS layers actually carry, so
// fixture-backed analyses exercise every scoring ladder.
//
// Usage:
//
//	go run ./cmd/genmock -out data/fixtures -per-layer 40 -seed 1
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// Region centers used to scatter synthetic features across the province.
var regions = []struct {
	name string
	lat  float64
	lng  float64
}{
	{"Suwon-si", 37.2636, 127.0286},
	{"Seongnam-si", 37.4200, 127.1267},
	{"Yongin-si", 37.2411, 127.1776},
	{"Goyang-si", 37.6584, 126.8320},
	{"Anyang-si", 37.3943, 126.9568},
	{"Namyangju-si", 37.6360, 127.2165},
	{"Hwaseong-si", 37.1995, 126.8315},
	{"Pyeongtaek-si", 36.9921, 127.1127},
	{"Gwangju-si", 37.4292, 127.2550},
	{"Pocheon-si", 37.8949, 127.2003},
}

var roadTypes = []string{"expressway", "national highway", "local road"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for layer fixtures")
	perLayer := flag.Int("per-layer", 40, "features per layer")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required -out flag")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	layers := map[string]func(*rand.Rand, int) domain.Properties{
		domain.LayerSteepSlope:     slopeProps,
		domain.LayerHighAltitude:   altitudeProps,
		domain.LayerMountainRivers: riverProps,
		domain.LayerRoads:          roadProps,
		domain.LayerFloodMap100yr:  floodProps,
		domain.LayerImpervious:     imperviousProps,
		domain.LayerLandslideGrade1: func(r *rand.Rand, i int) domain.Properties {
			return landslideProps(r, i, 1)
		},
		domain.LayerLandslideWeak: func(r *rand.Rand, i int) domain.Properties {
			return landslideProps(r, i, 2)
		},
		domain.LayerClimateScore: climateProps,
		domain.LayerHeatShelter:  shelterProps,
	}

	for layer, props := range layers {
		fc := buildCollection(rng, layer, *perLayer, props)
		path := filepath.Join(*out, layer+".json")
		if err := writeJSON(path, fc); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d features)\n", path, len(fc.Features))
	}
	return nil
}

func buildCollection(rng *rand.Rand, layer string, n int, props func(*rand.Rand, int) domain.Properties) domain.FeatureCollection {
	features := make([]domain.Feature, 0, n)
	for i := range n {
		region := regions[rng.Intn(len(regions))]
		lat := region.lat + (rng.Float64()-0.5)*0.08
		lng := region.lng + (rng.Float64()-0.5)*0.08

		p := props(rng, i)
		p["sgg_nm"] = region.name

		features = append(features, domain.Feature{
			ID:         fmt.Sprintf("%s.%d", layer, i+1),
			Geometry:   geometry(rng, lat, lng),
			Properties: p,
		})
	}
	return domain.FeatureCollection{Features: features, TotalFeatures: n}
}

// geometry emits a point or a small square polygon around the center, so
// fixtures exercise both resolver paths.
func geometry(rng *rand.Rand, lat, lng float64) domain.Geometry {
	if rng.Intn(2) == 0 {
		coords, _ := json.Marshal([]float64{lng, lat})
		return domain.Geometry{Type: "Point", Coordinates: coords}
	}
	d := 0.002
	ring := [][][]float64{{
		{lng - d, lat - d},
		{lng + d, lat - d},
		{lng + d, lat + d},
		{lng - d, lat + d},
		{lng - d, lat - d},
	}}
	coords, _ := json.Marshal(ring)
	return domain.Geometry{Type: "Polygon", Coordinates: coords}
}

func slopeProps(rng *rand.Rand, _ int) domain.Properties {
	return domain.Properties{
		"slope_deg": 15 + rng.Float64()*25,
		"area":      1000 + rng.Float64()*9000,
	}
}

func altitudeProps(rng *rand.Rand, _ int) domain.Properties {
	return domain.Properties{
		"altitude": 1000 + rng.Float64()*400,
		"area":     2000 + rng.Float64()*8000,
	}
}

func riverProps(rng *rand.Rand, i int) domain.Properties {
	return domain.Properties{
		"river_nm": fmt.Sprintf("Stream %d", i+1),
		"length":   200 + rng.Float64()*1800,
	}
}

func roadProps(rng *rand.Rand, i int) domain.Properties {
	return domain.Properties{
		"rd_nm":   fmt.Sprintf("Route %d", 40+i),
		"rd_type": roadTypes[rng.Intn(len(roadTypes))],
		"length":  500 + rng.Float64()*4500,
	}
}

func floodProps(rng *rand.Rand, _ int) domain.Properties {
	return domain.Properties{
		"grid_code": 1 + rng.Intn(4),
		"area":      500 + rng.Float64()*4500,
	}
}

func imperviousProps(rng *rand.Rand, _ int) domain.Properties {
	return domain.Properties{
		"impvs_rate": 60 + rng.Float64()*35,
	}
}

func landslideProps(rng *rand.Rand, i int, grade int) domain.Properties {
	return domain.Properties{
		"grade":  grade,
		"emd_nm": fmt.Sprintf("Dong %d", i+1),
		"area":   300 + rng.Float64()*2700,
	}
}

func climateProps(rng *rand.Rand, _ int) domain.Properties {
	return domain.Properties{
		"htwv_dngr_scr":    30 + rng.Float64()*65,
		"hvyrain_dngr_scr": 20 + rng.Float64()*60,
		"ldsld_dngr_scr":   10 + rng.Float64()*50,
		"stdg_nm":          "Jungang-dong",
	}
}

func shelterProps(rng *rand.Rand, i int) domain.Properties {
	return domain.Properties{
		"nm":       fmt.Sprintf("Cooling Shelter %d", i+1),
		"addr":     fmt.Sprintf("%d Civic Center Way", 100+i),
		"tel":      "031-120",
		"capacity": 50 + rng.Intn(450),
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
