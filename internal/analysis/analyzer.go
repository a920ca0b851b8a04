// Package analysis builds scored risk zones per operating mode. Each mode
// queries a fixed set of hazard layers concurrently, tolerates individual
// layer failures, and folds the survivors into one sorted, capped zone list.
package analysis

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

// Per-mode result caps, applied after the score-descending sort. The heat
// cap covers risk zones only; shelters are appended afterwards.
const (
	winterCap    = 25
	summerCap    = 20
	landslideCap = 20
	heatCap      = 20
)

// Analyzer runs per-mode zone building against a feature source.
type Analyzer struct {
	source  domain.FeatureSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Analyzer.
func New(source domain.FeatureSource, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{source: source, logger: logger, metrics: metrics}
}

// Result is one mode analysis. Degraded is set when every layer query for
// the mode failed; the zone list is then empty but the result is still
// well-formed.
type Result struct {
	Zones    []domain.RiskZone
	Degraded bool
}

// layerQuery binds one hazard layer to its zone builder.
type layerQuery struct {
	layer string
	max   int
	build func(features []domain.Feature) []domain.RiskZone
}

// DataSources lists the layer identifiers an analysis for the mode draws on,
// for display in the result envelope.
func DataSources(mode domain.Mode) []string {
	switch mode {
	case domain.ModeWinter:
		return []string{domain.LayerSteepSlope, domain.LayerMountainRivers, domain.LayerHighAltitude}
	case domain.ModeSummer:
		return []string{domain.LayerFloodMap100yr, domain.LayerImpervious, "tm_fldn_trce"}
	case domain.ModeLandslide:
		return []string{domain.LayerLandslideGrade1, domain.LayerLandslideWeak, "ldsld_ocrn_prst"}
	case domain.ModeHeat:
		return []string{domain.LayerClimateScore, domain.LayerHeatShelter}
	}
	return nil
}

// Analyze builds the zone list for one mode. It never returns an error; a
// total source outage yields a degraded empty result.
func (a *Analyzer) Analyze(ctx context.Context, mode domain.Mode) Result {
	a.metrics.AnalysesTotal.WithLabelValues(string(mode)).Inc()

	var res Result
	switch mode {
	case domain.ModeWinter:
		res = a.analyzeWinter(ctx)
	case domain.ModeSummer:
		res = a.analyzeSummer(ctx)
	case domain.ModeLandslide:
		res = a.analyzeLandslide(ctx)
	case domain.ModeHeat:
		res = a.analyzeHeat(ctx)
	default:
		return Result{}
	}

	if res.Degraded {
		a.metrics.AnalysesDegraded.WithLabelValues(string(mode)).Inc()
		a.logger.Error("all sources failed, returning degraded result", "mode", mode)
	}
	a.metrics.ZonesBuilt.WithLabelValues(string(mode)).Add(float64(len(res.Zones)))
	return res
}

// runQueries fetches all layers concurrently. Slot order matches query order
// so insertion order stays deterministic regardless of completion order. A
// failed layer contributes an empty slot.
func (a *Analyzer) runQueries(ctx context.Context, queries []layerQuery) (slots [][]domain.RiskZone, failed int) {
	slots = make([][]domain.RiskZone, len(queries))

	var mu sync.Mutex
	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			fc, err := a.source.QueryLayer(ctx, q.layer, q.max)
			if err != nil {
				a.logger.Warn("layer query failed, continuing without it", "layer", q.layer, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			slots[i] = q.build(fc.Features)
			return nil
		})
	}
	_ = g.Wait()
	return slots, failed
}

// flatten concatenates slot results in query order, sorts descending by
// score (stable, preserving insertion order on ties), and caps the length.
func flatten(slots [][]domain.RiskZone, limit int) []domain.RiskZone {
	var zones []domain.RiskZone
	for _, s := range slots {
		zones = append(zones, s...)
	}
	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].RiskScore > zones[j].RiskScore
	})
	if len(zones) > limit {
		zones = zones[:limit]
	}
	return zones
}

// zoneID builds a stable zone identifier from the source feature, falling
// back to the feature's position within its layer.
func zoneID(prefix string, f domain.Feature, idx int) string {
	if f.ID != "" {
		return prefix + f.ID
	}
	return prefix + strconv.Itoa(idx)
}
