package domain

import (
	"encoding/json"
	"strings"
)

// Service-area bounding box. Coordinates outside it are treated as axis
// swaps or projection garbage from the upstream layers.
const (
	minLat = 36.95
	maxLat = 38.05
	minLng = 126.35
	maxLng = 127.85
)

// RegionCenter is the service-area centroid, the fallback of last resort.
var RegionCenter = Coordinate{Lat: 37.4138, Lng: 127.0296}

// gazetteer maps municipality name fragments to their city-hall
// coordinates. Matched by substring against a feature's display name.
var gazetteer = []struct {
	name  string
	coord Coordinate
}{
	{"Suwon", Coordinate{37.2636, 127.0286}},
	{"Seongnam", Coordinate{37.4200, 127.1267}},
	{"Yongin", Coordinate{37.2411, 127.1776}},
	{"Anyang", Coordinate{37.3943, 126.9568}},
	{"Ansan", Coordinate{37.3219, 126.8309}},
	{"Goyang", Coordinate{37.6584, 126.8320}},
	{"Bucheon", Coordinate{37.5034, 126.7660}},
	{"Gwangmyeong", Coordinate{37.4786, 126.8644}},
	{"Pyeongtaek", Coordinate{36.9921, 127.0857}},
	{"Siheung", Coordinate{37.3800, 126.8029}},
	{"Paju", Coordinate{37.7126, 126.7610}},
	{"Uijeongbu", Coordinate{37.7381, 127.0337}},
	{"Gimpo", Coordinate{37.6152, 126.7156}},
	{"Hwaseong", Coordinate{37.1994, 126.8312}},
	{"Gwangju", Coordinate{37.4095, 127.2550}},
	{"Gunpo", Coordinate{37.3617, 126.9352}},
	{"Osan", Coordinate{37.1498, 127.0697}},
	{"Hanam", Coordinate{37.5393, 127.2148}},
	{"Yangju", Coordinate{37.7853, 127.0456}},
	{"Icheon", Coordinate{37.2723, 127.4349}},
	{"Guri", Coordinate{37.5943, 127.1295}},
	{"Namyangju", Coordinate{37.6360, 127.2166}},
	{"Pocheon", Coordinate{37.8949, 127.2003}},
	{"Yangpyeong", Coordinate{37.4917, 127.4877}},
	{"Dongducheon", Coordinate{37.9035, 127.0604}},
	{"Gwacheon", Coordinate{37.4292, 126.9876}},
	{"Uiwang", Coordinate{37.3449, 126.9683}},
	{"Yeoju", Coordinate{37.2983, 127.6375}},
	{"Gapyeong", Coordinate{37.8315, 127.5095}},
	{"Yeoncheon", Coordinate{38.0965, 127.0747}},
	{"Gyeonggi", RegionCenter},
}

// InBounds reports whether c lies inside the service area.
func InBounds(c Coordinate) bool {
	return c.Lat >= minLat && c.Lat <= maxLat && c.Lng >= minLng && c.Lng <= maxLng
}

// DisplayName extracts a human-readable feature name, scanning the usual
// municipality, neighborhood, generic-name, and address columns in order.
func DisplayName(p Properties, def string) string {
	if name, ok := p.FirstString("sgg_nm", "emd_nm", "nm", "addr"); ok {
		return name
	}
	return def
}

// FallbackCoordinate locates a feature by name when its geometry is unusable.
// A gazetteer hit gets a small random offset so stacked features stay
// distinguishable on the map; misses land on the region center. The result
// is clamped into the service area: jitter near an edge, and gazetteer
// entries whose seat sits just past the provincial box (Yeoncheon), would
// otherwise leak out of bounds.
func FallbackCoordinate(name string) Coordinate {
	for _, entry := range gazetteer {
		if strings.Contains(name, entry.name) {
			return clampToBounds(Coordinate{
				Lat: entry.coord.Lat + jitterOffset(),
				Lng: entry.coord.Lng + jitterOffset(),
			})
		}
	}
	return clampToBounds(Coordinate{
		Lat: RegionCenter.Lat + jitterOffset(),
		Lng: RegionCenter.Lng + jitterOffset(),
	})
}

func clampToBounds(c Coordinate) Coordinate {
	return Coordinate{
		Lat: min(max(c.Lat, minLat), maxLat),
		Lng: min(max(c.Lng, minLng), maxLng),
	}
}

// ResolveCoordinate reduces a feature's geometry to one representative point.
// Out-of-bounds results are retried with swapped axes before falling back to
// the gazetteer, because some layers ship lat-first coordinates.
func ResolveCoordinate(f Feature) Coordinate {
	name := DisplayName(f.Properties, "")
	c, ok := representativePoint(f.Geometry)
	if !ok {
		return FallbackCoordinate(name)
	}
	if InBounds(c) {
		return c
	}
	swapped := Coordinate{Lat: c.Lng, Lng: c.Lat}
	if InBounds(swapped) {
		return swapped
	}
	return FallbackCoordinate(name)
}

// representativePoint dispatches on geometry type. GeoJSON positions are
// lng-first; the returned Coordinate is lat-first.
func representativePoint(g Geometry) (Coordinate, bool) {
	switch g.Type {
	case "Point":
		var pos []float64
		if err := json.Unmarshal(g.Coordinates, &pos); err != nil || len(pos) < 2 {
			return Coordinate{}, false
		}
		return Coordinate{Lat: pos[1], Lng: pos[0]}, true
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil || len(rings) == 0 {
			return Coordinate{}, false
		}
		return ringMean(rings[0])
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil || len(polys) == 0 || len(polys[0]) == 0 {
			return Coordinate{}, false
		}
		return ringMean(polys[0][0])
	case "LineString":
		var line [][]float64
		if err := json.Unmarshal(g.Coordinates, &line); err != nil || len(line) == 0 {
			return Coordinate{}, false
		}
		return midVertex(line)
	case "MultiLineString":
		var lines [][][]float64
		if err := json.Unmarshal(g.Coordinates, &lines); err != nil || len(lines) == 0 || len(lines[0]) == 0 {
			return Coordinate{}, false
		}
		return midVertex(lines[0])
	}
	return Coordinate{}, false
}

func ringMean(ring [][]float64) (Coordinate, bool) {
	var sumLat, sumLng float64
	n := 0
	for _, pos := range ring {
		if len(pos) < 2 {
			continue
		}
		sumLng += pos[0]
		sumLat += pos[1]
		n++
	}
	if n == 0 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}, true
}

func midVertex(line [][]float64) (Coordinate, bool) {
	pos := line[len(line)/2]
	if len(pos) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: pos[1], Lng: pos[0]}, true
}
