package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis and deployment paths.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec // labels: mode
	AnalysesDegraded *prometheus.CounterVec // labels: mode
	ZonesBuilt       *prometheus.CounterVec // labels: mode

	// Feature source metrics.
	SourceFetches       *prometheus.CounterVec   // labels: layer, outcome={success,error}
	SourceFetchDuration *prometheus.HistogramVec // labels: layer
	SourceCache         *prometheus.CounterVec   // labels: result={hit,miss}

	// Deployment planner metrics.
	SuggestionsBuilt *prometheus.CounterVec // labels: mode
	AlertsPublished  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "analyses_total",
			Help:      "Total risk analyses run, by operating mode.",
		}, []string{"mode"}),
		AnalysesDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "analyses_degraded_total",
			Help:      "Analyses that returned a degraded result because every source failed.",
		}, []string{"mode"}),
		ZonesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "zones_built_total",
			Help:      "Risk zones produced across all analyses, by operating mode.",
		}, []string{"mode"}),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "source_fetches_total",
			Help:      "Feature source queries by layer and outcome.",
		}, []string{"layer", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_ops",
			Name:      "source_fetch_duration_seconds",
			Help:      "WFS layer query duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"layer"}),
		SourceCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "source_cache_total",
			Help:      "Feature cache lookups by result.",
		}, []string{"result"}),
		SuggestionsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "deployment_suggestions_total",
			Help:      "Deployment suggestions produced, by operating mode.",
		}, []string{"mode"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_ops",
			Name:      "alerts_published_total",
			Help:      "Emergency alerts written to the sink topic.",
		}),
	}

	prometheus.MustRegister(
		m.AnalysesTotal,
		m.AnalysesDegraded,
		m.ZonesBuilt,
		m.SourceFetches,
		m.SourceFetchDuration,
		m.SourceCache,
		m.SuggestionsBuilt,
		m.AlertsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AnalysesTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_ops", Name: "analyses_total"}, []string{"mode"}),
		AnalysesDegraded:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_ops", Name: "analyses_degraded_total"}, []string{"mode"}),
		ZonesBuilt:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_ops", Name: "zones_built_total"}, []string{"mode"}),
		SourceFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_ops", Name: "source_fetches_total"}, []string{"layer", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "climate_ops", Name: "source_fetch_duration_seconds"}, []string{"layer"}),
		SourceCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_ops", Name: "source_cache_total"}, []string{"result"}),
		SuggestionsBuilt:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_ops", Name: "deployment_suggestions_total"}, []string{"mode"}),
		AlertsPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_ops", Name: "alerts_published_total"}),
	}
}
