// Package ops composes analysis, narratives, and deployment planning into
// the operations surface the HTTP layer serves. Entry points return complete
// values even when upstream sources fail; degradation is expressed in the
// payload, never as an error.
package ops

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/climate-ops-service/internal/advisor"
	"github.com/couchcryptid/climate-ops-service/internal/analysis"
	"github.com/couchcryptid/climate-ops-service/internal/deploy"
	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

// AlertPublisher sends a finalized emergency alert to the broadcast channel.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert advisor.EmergencyAlert) error
}

// Service wires the analyzer, planner, and external providers together.
type Service struct {
	analyzer  *analysis.Analyzer
	planner   *deploy.Planner
	weather   domain.WeatherProvider
	fleet     domain.FleetProvider
	publisher AlertPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Service. publisher may be nil when no broadcast channel is
// configured; alerts are then generated but not published.
func New(
	analyzer *analysis.Analyzer,
	planner *deploy.Planner,
	weather domain.WeatherProvider,
	fleet domain.FleetProvider,
	publisher AlertPublisher,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		analyzer:  analyzer,
		planner:   planner,
		weather:   weather,
		fleet:     fleet,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one non-degraded analysis has
// completed, or an error describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no successful analysis completed yet")
	}
	return nil
}

// Analyze runs a full risk analysis for the mode and assembles the result
// payload. Total source failure yields an empty zone set with a retry notice
// in the agent log.
func (s *Service) Analyze(ctx context.Context, mode domain.Mode) domain.AnalysisResult {
	res := s.analyzer.Analyze(ctx, mode)

	result := domain.AnalysisResult{
		Mode:        mode,
		Zones:       res.Zones,
		Summary:     domain.Summarize(mode, res.Zones),
		DataSources: analysis.DataSources(mode),
		Timestamp:   domain.Clock().Now(),
	}
	if res.Degraded {
		result.AgentMessages = advisor.DegradedMessages()
		return result
	}

	result.AgentMessages = advisor.AgentMessages(mode, res.Zones, result.DataSources)
	s.ready.Store(true)
	return result
}

// Briefing generates the command briefing for the mode from fresh analysis
// and weather data.
func (s *Service) Briefing(ctx context.Context, mode domain.Mode) advisor.Briefing {
	res := s.analyzer.Analyze(ctx, mode)
	return advisor.GenerateBriefing(mode, res.Zones, s.snapshot(ctx, mode))
}

// DeploymentPlan runs analysis and matches the current fleet against
// dispatch-worthy zones.
func (s *Service) DeploymentPlan(ctx context.Context, mode domain.Mode) domain.DeploymentPlan {
	res := s.analyzer.Analyze(ctx, mode)
	return s.planner.Plan(mode, res.Zones, s.vehicles(ctx, mode))
}

// Vehicles returns the current fleet roster for the mode.
func (s *Service) Vehicles(ctx context.Context, mode domain.Mode) []domain.Vehicle {
	return s.vehicles(ctx, mode)
}

// Weather returns the current weather snapshot for the mode.
func (s *Service) Weather(ctx context.Context, mode domain.Mode) domain.WeatherSnapshot {
	return s.snapshot(ctx, mode)
}

// RecommendedMode suggests the operating mode best matching current
// conditions. ok is false when no hazard threshold is met.
func (s *Service) RecommendedMode(ctx context.Context, mode domain.Mode) (domain.Mode, bool) {
	return advisor.RecommendMode(s.snapshot(ctx, mode).Current)
}

// Alert generates a draft emergency alert for the mode and, when a broadcast
// publisher is configured, hands it off for delivery.
func (s *Service) Alert(ctx context.Context, mode domain.Mode) advisor.EmergencyAlert {
	res := s.analyzer.Analyze(ctx, mode)
	alert := advisor.GenerateEmergencyAlert(mode, res.Zones, s.snapshot(ctx, mode))

	if s.publisher != nil {
		if err := s.publisher.PublishAlert(ctx, alert); err != nil {
			s.logger.Error("alert publish failed", "error", err, "alert_id", alert.ID)
		}
	}
	return alert
}

// Report generates the formal situation report for the mode.
func (s *Service) Report(ctx context.Context, mode domain.Mode) advisor.SituationReport {
	res := s.analyzer.Analyze(ctx, mode)
	return advisor.GenerateSituationReport(mode, res.Zones, advisor.Resources(mode))
}

// Resources returns the static resource ledger for the mode.
func (s *Service) Resources(mode domain.Mode) []advisor.ResourceSummary {
	return advisor.Resources(mode)
}

// Personnel returns the response personnel roster.
func (s *Service) Personnel() advisor.Personnel {
	return advisor.PersonnelRoster()
}

func (s *Service) snapshot(ctx context.Context, mode domain.Mode) domain.WeatherSnapshot {
	snap, err := s.weather.Snapshot(ctx, mode)
	if err != nil {
		s.logger.Warn("weather snapshot failed", "error", err, "mode", mode)
		return domain.WeatherSnapshot{Timestamp: domain.Clock().Now(), Location: "Gyeonggi-do"}
	}
	return snap
}

func (s *Service) vehicles(ctx context.Context, mode domain.Mode) []domain.Vehicle {
	fleet, err := s.fleet.Vehicles(ctx, mode)
	if err != nil {
		s.logger.Warn("fleet roster failed", "error", err, "mode", mode)
		return nil
	}
	return fleet
}
