// Package domain models risk zones derived from the Gyeonggi climate
// platform's geospatial hazard layers.
//
// # Data Source
//
// Hazard features come from a GeoServer WFS endpoint operated by the
// provincial climate platform. Each layer is queried with GetFeature
// (outputFormat=application/json, srsName=EPSG:4326) and returns a GeoJSON
// feature collection. The layers the analyzers consume:
//
//	cfm_sgg_41_100yr_1h  100-year / 1-hour urban flood depth map
//	impvs                impervious surface ratio
//	slop_20_ovr          slopes of 20 degrees or more
//	altd_1000_ovr        terrain above 1000 m elevation
//	mountdstc_rvr        mountain streams (shade proxy)
//	sprd_rw_41           provincial road network
//	ldsld_grd1           landslide hazard grade-1 districts
//	ldsld_weak_rgn       landslide-vulnerable regions
//	clim_weak_rgn_scr    climate vulnerability scores
//	swtr_rstar           heatwave cooling shelters
//
// # Attribute Conventions
//
// Feature attribute keys are inconsistently cased upstream: the same layer
// can emit grid_code on one feature and GRID_CODE on the next. All attribute
// reads go through [Properties], which tries the lowercase key first and the
// uppercase variant second, substituting a typed default when both are
// missing or malformed. Numeric attributes occasionally arrive as strings
// and are parsed leniently.
//
// # Scoring
//
// Risk scores are 0-100 integers derived from category-specific thresholds:
//
//	flood:     grid_code >=4 -> 95 | >=3 -> 85 | >=2 -> 70 | else 50
//	landslide: grade 1 -> 95 | 2 -> 80 | else 60
//	ice:       slope_deg >=30 -> 95 | >=25 -> 85 | >=20 -> 75 | else 60
//	heat:      vulnerability score passed through, capped at 100
//
// Zone status follows fixed score tiers (>=80 needs-action, >=50
// in-progress, else resolved), except cooling shelters which are safe
// infrastructure and always resolved.
//
// # Coordinates
//
// Every zone coordinate is validated against the province bounding box
// (lat 36.95-38.05, lng 126.35-127.85). Out-of-range geometry first gets an
// axis-order swap (some layers emit lat/lng inverted), then falls back to a
// gazetteer lookup on region-name attributes, and finally to the province
// centroid. Fallback coordinates carry a small random jitter so stacked
// zones do not render on the exact same point; see [SetRand] for making the
// jitter deterministic in tests.
package domain
