package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// analyzeWinter combines steep-slope, high-altitude, shaded-stream, and
// major-road features into icing risk zones.
func (a *Analyzer) analyzeWinter(ctx context.Context) Result {
	queries := []layerQuery{
		{layer: domain.LayerSteepSlope, max: 200, build: buildSlopeZones},
		{layer: domain.LayerHighAltitude, max: 150, build: buildAltitudeZones},
		{layer: domain.LayerMountainRivers, max: 100, build: buildRiverZones},
		{layer: domain.LayerRoads, max: 100, build: buildRoadZones},
	}
	slots, failed := a.runQueries(ctx, queries)
	if failed == len(queries) {
		return Result{Degraded: true}
	}
	return Result{Zones: flatten(slots, winterCap)}
}

func buildSlopeZones(features []domain.Feature) []domain.RiskZone {
	zones := make([]domain.RiskZone, 0, len(features))
	for idx, f := range features {
		score := domain.RiskScore(domain.CategoryIce, f.Properties)
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("ICE-SLOPE-", f, idx),
			Name:        "Steep-slope icing section",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   score,
			Reason:      "Steep section over 20 degrees, skid hazard when road surface ices",
			Status:      domain.StatusForScore(score),
			Mode:        domain.ModeWinter,
			SourceLayer: domain.LayerSteepSlope,
			Details: map[string]any{
				"slope": f.Properties.Float("slope_deg", 20),
				"area":  f.Properties.Float("area", 0),
			},
		})
	}
	return zones
}

func buildAltitudeZones(features []domain.Feature) []domain.RiskZone {
	zones := make([]domain.RiskZone, 0, len(features))
	for idx, f := range features {
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("ICE-ALT-", f, idx),
			Name:        "Highland icing zone",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   88,
			Reason:      "Terrain above 1000m, low temperatures keep ice on the road",
			Status:      domain.StatusForScore(88),
			Mode:        domain.ModeWinter,
			SourceLayer: domain.LayerHighAltitude,
			Details: map[string]any{
				"altitude": f.Properties.Float("altitude", 1000),
				"area":     f.Properties.Float("area", 0),
			},
		})
	}
	return zones
}

func buildRiverZones(features []domain.Feature) []domain.RiskZone {
	zones := make([]domain.RiskZone, 0, len(features))
	for idx, f := range features {
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("ICE-RIVER-", f, idx),
			Name:        "Shaded section along mountain stream",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   78,
			Reason:      "Adjacent to a mountain stream, moisture and shade promote icing",
			Status:      domain.StatusForScore(78),
			Mode:        domain.ModeWinter,
			SourceLayer: domain.LayerMountainRivers,
			Details: map[string]any{
				"river_name": f.Properties.String("river_nm", ""),
			},
		})
	}
	return zones
}

// buildRoadZones keeps only expressway and national-road features; minor
// roads are not icing-management targets.
func buildRoadZones(features []domain.Feature) []domain.RiskZone {
	var zones []domain.RiskZone
	for idx, f := range features {
		roadType := f.Properties.String("rd_type", "")
		lower := strings.ToLower(roadType)
		if !strings.Contains(lower, "expressway") && !strings.Contains(lower, "national") {
			continue
		}
		name := f.Properties.String("rd_nm", "Major road")
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("ICE-ROAD-", f, idx),
			Name:        name + " icing watch",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   72,
			Reason:      "Major arterial road, heavy traffic raises accident severity when iced",
			Status:      domain.StatusForScore(72),
			Mode:        domain.ModeWinter,
			SourceLayer: domain.LayerRoads,
			Details: map[string]any{
				"road_name": f.Properties.String("rd_nm", ""),
				"road_type": roadType,
				"length":    f.Properties.Float("length", 0),
			},
		})
	}
	return zones
}

// analyzeSummer combines 100-year flood-map features with high-impervious
// surface clusters.
func (a *Analyzer) analyzeSummer(ctx context.Context) Result {
	queries := []layerQuery{
		{layer: domain.LayerFloodMap100yr, max: 200, build: buildFloodZones},
		{layer: domain.LayerImpervious, max: 100, build: buildImperviousZones},
	}
	slots, failed := a.runQueries(ctx, queries)
	if failed == len(queries) {
		return Result{Degraded: true}
	}
	return Result{Zones: flatten(slots, summerCap)}
}

func buildFloodZones(features []domain.Feature) []domain.RiskZone {
	var zones []domain.RiskZone
	for idx, f := range features {
		score := domain.RiskScore(domain.CategoryFlood, f.Properties)
		if score < 50 {
			continue
		}
		grade := "N/A"
		if g := f.Properties.Float("grid_code", 0); g > 0 {
			grade = fmt.Sprintf("%.0f", g)
		}
		region := f.Properties.String("sgg_nm", "Gyeonggi")
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("FLOOD-", f, idx),
			Name:        region + " flood risk zone",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   score,
			Reason:      fmt.Sprintf("Expected inundation in a 100-year storm (depth grade: %s)", grade),
			Status:      domain.StatusForScore(score),
			Mode:        domain.ModeSummer,
			SourceLayer: domain.LayerFloodMap100yr,
			Details: map[string]any{
				"grid_code": f.Properties.Float("grid_code", 0),
				"area":      f.Properties.Float("area", 0),
				"sgg_nm":    region,
			},
		})
	}
	return zones
}

func buildImperviousZones(features []domain.Feature) []domain.RiskZone {
	var zones []domain.RiskZone
	for idx, f := range features {
		rate := f.Properties.Float("impvs_rate", 0)
		if rate < 80 {
			continue
		}
		score := int(math.Min(95, 50+rate*0.5))
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("IMPERV-", f, idx),
			Name:        "Impervious surface cluster",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   score,
			Reason:      fmt.Sprintf("Impervious surface rate %.0f%%, poor drainage expected", rate),
			Status:      domain.StatusForScore(score),
			Mode:        domain.ModeSummer,
			SourceLayer: domain.LayerImpervious,
			Details: map[string]any{
				"impervious_rate": rate,
			},
		})
	}
	return zones
}

// analyzeLandslide combines grade-1 designations with vulnerable-region
// designations.
func (a *Analyzer) analyzeLandslide(ctx context.Context) Result {
	queries := []layerQuery{
		{layer: domain.LayerLandslideGrade1, max: 200, build: buildGrade1Zones},
		{layer: domain.LayerLandslideWeak, max: 100, build: buildWeakRegionZones},
	}
	slots, failed := a.runQueries(ctx, queries)
	if failed == len(queries) {
		return Result{Degraded: true}
	}
	return Result{Zones: flatten(slots, landslideCap)}
}

func buildGrade1Zones(features []domain.Feature) []domain.RiskZone {
	zones := make([]domain.RiskZone, 0, len(features))
	for idx, f := range features {
		name := strings.TrimSpace(f.Properties.String("sgg_nm", "") + " landslide grade-1 zone")
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("LANDSLIDE-G1-", f, idx),
			Name:        name,
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   95,
			Reason:      "Designated grade-1 landslide risk area, top watch priority",
			Status:      domain.StatusForScore(95),
			Mode:        domain.ModeLandslide,
			SourceLayer: domain.LayerLandslideGrade1,
			Details: map[string]any{
				"sgg_nm": f.Properties.String("sgg_nm", ""),
				"emd_nm": f.Properties.String("emd_nm", ""),
			},
		})
	}
	return zones
}

func buildWeakRegionZones(features []domain.Feature) []domain.RiskZone {
	zones := make([]domain.RiskZone, 0, len(features))
	for idx, f := range features {
		details := make(map[string]any, len(f.Properties))
		for k, v := range f.Properties {
			details[k] = v
		}
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("LANDSLIDE-WEAK-", f, idx),
			Name:        "Landslide-vulnerable area",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   82,
			Reason:      "Designated landslide-vulnerable area, caution during heavy rain",
			Status:      domain.StatusForScore(82),
			Mode:        domain.ModeLandslide,
			SourceLayer: domain.LayerLandslideWeak,
			Details:     details,
		})
	}
	return zones
}

// analyzeHeat scores climate-vulnerability features, then appends cooling
// shelters as safe infrastructure after the risk ranking is fixed.
func (a *Analyzer) analyzeHeat(ctx context.Context) Result {
	queries := []layerQuery{
		{layer: domain.LayerClimateScore, max: 300, build: buildHeatZones},
		{layer: domain.LayerHeatShelter, max: 100, build: buildShelterZones},
	}
	slots, failed := a.runQueries(ctx, queries)
	if failed == len(queries) {
		return Result{Degraded: true}
	}
	zones := flatten(slots[:1], heatCap)
	zones = append(zones, slots[1]...)
	return Result{Zones: zones}
}

func buildHeatZones(features []domain.Feature) []domain.RiskZone {
	var zones []domain.RiskZone
	for idx, f := range features {
		heatScore := f.Properties.Float("htwv_dngr_scr", 0)
		if heatScore < 50 {
			continue
		}
		score := int(math.Min(95, math.Round(heatScore)))
		sgg := f.Properties.String("sgg_nm", "")
		stdg := f.Properties.String("stdg_nm", "")
		location := strings.TrimSpace(sgg + " " + stdg)
		if location == "" {
			location = "Gyeonggi"
		}
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("HEAT-", f, idx),
			Name:        location + " heatwave-vulnerable area",
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   score,
			Reason:      fmt.Sprintf("Heatwave danger score %.1f. Vulnerable residents (elderly living alone, outdoor workers) likely concentrated. Mobile shelter deployment advised.", heatScore),
			Status:      domain.StatusForScore(score),
			Mode:        domain.ModeHeat,
			SourceLayer: domain.LayerClimateScore,
			Details: map[string]any{
				"heat_score":      heatScore,
				"sgg_nm":          sgg,
				"stdg_nm":         stdg,
				"rain_score":      f.Properties.Float("hvyrain_dngr_scr", 0),
				"landslide_score": f.Properties.Float("ldsld_dngr_scr", 0),
			},
		})
	}
	return zones
}

// ShelterScore is the fixed score for cooling shelters. Shelters are safe
// infrastructure, listed for coverage context, never ranked as risks.
const ShelterScore = 10

func buildShelterZones(features []domain.Feature) []domain.RiskZone {
	zones := make([]domain.RiskZone, 0, len(features))
	for idx, f := range features {
		name := f.Properties.String("nm", "Cooling shelter")
		addr := f.Properties.String("addr", "")
		reason := "Existing cooling shelter (address unknown)"
		if addr != "" {
			reason = fmt.Sprintf("Existing cooling shelter (%s)", addr)
		}
		zones = append(zones, domain.RiskZone{
			ID:          zoneID("SHELTER-", f, idx),
			Name:        name,
			Coordinates: domain.ResolveCoordinate(f),
			RiskScore:   ShelterScore,
			Reason:      reason,
			Status:      domain.StatusResolved,
			Mode:        domain.ModeHeat,
			SourceLayer: domain.LayerHeatShelter,
			Details: map[string]any{
				"name":     name,
				"address":  addr,
				"tel":      f.Properties.String("tel", ""),
				"capacity": f.Properties.Int("capacity", 0),
			},
		})
	}
	return zones
}
