package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Mode is one of the four operating modes that partition all analysis state.
type Mode string

const (
	ModeWinter    Mode = "winter"
	ModeSummer    Mode = "summer"
	ModeLandslide Mode = "landslide"
	ModeHeat      Mode = "heat"
)

// Modes lists every operating mode in display order.
func Modes() []Mode {
	return []Mode{ModeWinter, ModeSummer, ModeLandslide, ModeHeat}
}

// Valid reports whether m is a known operating mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeWinter, ModeSummer, ModeLandslide, ModeHeat:
		return true
	}
	return false
}

// ModeInfo carries per-mode display metadata and the primary response vehicle.
type ModeInfo struct {
	Label       string
	Description string
	Vehicle     VehicleType
}

var modeInfo = map[Mode]ModeInfo{
	ModeWinter: {
		Label:       "Road Icing",
		Description: "detects black-ice-prone road sections from slope, elevation, and shade data",
		Vehicle:     VehicleSnowplow,
	},
	ModeSummer: {
		Label:       "Flooding",
		Description: "detects inundation-prone sections from extreme-rainfall and impervious-surface data",
		Vehicle:     VehiclePumpTruck,
	},
	ModeLandslide: {
		Label:       "Landslide",
		Description: "detects collapse-prone sections from hazard grades and vulnerable-region data",
		Vehicle:     VehicleExcavator,
	},
	ModeHeat: {
		Label:       "Heatwave",
		Description: "supports heatwave response from climate vulnerability and cooling-shelter data",
		Vehicle:     VehicleMobileShelter,
	},
}

// Info returns display metadata for the mode. Unknown modes get zero metadata.
func (m Mode) Info() ModeInfo {
	return modeInfo[m]
}

// Status is a risk zone's response state, derived solely from its score.
type Status string

const (
	StatusNeedsAction Status = "needs-action"
	StatusInProgress  Status = "in-progress"
	StatusResolved    Status = "resolved"
)

// Layer names on the upstream WFS endpoint.
const (
	LayerFloodMap100yr  = "cfm_sgg_41_100yr_1h"
	LayerImpervious     = "impvs"
	LayerSteepSlope     = "slop_20_ovr"
	LayerHighAltitude   = "altd_1000_ovr"
	LayerMountainRivers = "mountdstc_rvr"
	LayerRoads          = "sprd_rw_41"
	LayerLandslideGrade1 = "ldsld_grd1"
	LayerLandslideWeak  = "ldsld_weak_rgn"
	LayerClimateScore   = "clim_weak_rgn_scr"
	LayerHeatShelter    = "swtr_rstar"
)

// Coordinate is a WGS-84 latitude/longitude pair. It serializes as a
// two-element [lat, lng] array to match the upstream dashboard contract.
type Coordinate struct {
	Lat float64
	Lng float64
}

// MarshalJSON encodes the coordinate as [lat, lng].
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

// UnmarshalJSON decodes a [lat, lng] array.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("parse coordinate: %w", err)
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

// Geometry is a raw GeoJSON geometry. Coordinates stay undecoded until the
// resolver dispatches on Type, because the nesting depth varies per kind.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is one record from a hazard layer: a geometry plus an attribute bag.
type Feature struct {
	ID         string     `json:"id"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// FeatureCollection is the WFS GetFeature response shape.
type FeatureCollection struct {
	Features      []Feature `json:"features"`
	TotalFeatures int       `json:"totalFeatures"`
}

// RiskZone is a scored geographic point derived from one hazard feature.
// Zones are built fresh on every analysis run and never mutated afterwards.
type RiskZone struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Coordinates Coordinate     `json:"coordinates"`
	RiskScore   int            `json:"risk_score"`
	Reason      string         `json:"reason"`
	Status      Status         `json:"status"`
	Mode        Mode           `json:"mode"`
	SourceLayer string         `json:"source_layer"`
	Details     map[string]any `json:"details"`
}

// MessageType classifies an agent log line.
type MessageType string

const (
	MessageAlert   MessageType = "alert"
	MessageInfo    MessageType = "info"
	MessageAction  MessageType = "action"
	MessageSuccess MessageType = "success"
	MessageData    MessageType = "data"
)

// AgentMessage is one timestamped line of the operations agent log. Within a
// batch, earlier events carry earlier synthetic timestamps.
type AgentMessage struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Message   string      `json:"message"`
	Type      MessageType `json:"type"`
}

// RiskSummary buckets a zone collection by score tier. Shelters is populated
// only in heat mode, counting cooling-shelter zones.
type RiskSummary struct {
	TotalZones int  `json:"total_zones"`
	HighRisk   int  `json:"high_risk"`
	MediumRisk int  `json:"medium_risk"`
	LowRisk    int  `json:"low_risk"`
	Shelters   *int `json:"shelters,omitempty"`
}

// AnalysisResult is the stable contract the presentation layer consumes.
// Every analysis entry point returns a complete result, even under total
// source failure (degraded results carry empty zones and a retry notice).
type AnalysisResult struct {
	Mode          Mode           `json:"mode"`
	Zones         []RiskZone     `json:"zones"`
	Summary       RiskSummary    `json:"summary"`
	AgentMessages []AgentMessage `json:"agent_messages"`
	DataSources   []string       `json:"data_sources"`
	Timestamp     time.Time      `json:"timestamp"`
}

// VehicleType identifies an equipment class in the response fleet.
type VehicleType string

const (
	VehicleSnowplow      VehicleType = "snowplow"
	VehiclePumpTruck     VehicleType = "pump-truck"
	VehicleExcavator     VehicleType = "excavator"
	VehicleMobileShelter VehicleType = "mobile-shelter"
	VehicleAmbulance     VehicleType = "ambulance"
	VehicleFireEngine    VehicleType = "fire-engine"
)

// VehicleStatus is a vehicle's dispatch state. Only idle vehicles are
// eligible inputs to the deployment planner.
type VehicleStatus string

const (
	VehicleIdle        VehicleStatus = "idle"
	VehicleDispatched  VehicleStatus = "dispatched"
	VehicleWorking     VehicleStatus = "working"
	VehicleReturning   VehicleStatus = "returning"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// Vehicle is one unit of the response fleet, refreshed per planning call.
type Vehicle struct {
	ID           string        `json:"id"`
	Type         VehicleType   `json:"type"`
	Name         string        `json:"name"`
	Status       VehicleStatus `json:"status"`
	Location     Coordinate    `json:"location"`
	AssignedZone string        `json:"assignedZone,omitempty"`
	Driver       string        `json:"driver,omitempty"`
	ETA          int           `json:"eta,omitempty"`
}

// SuggestionPriority ranks a deployment suggestion by its target zone's tier.
type SuggestionPriority string

const (
	PriorityCritical SuggestionPriority = "critical"
	PriorityHigh     SuggestionPriority = "high"
	PriorityMedium   SuggestionPriority = "medium"
)

// DeploymentSuggestion pairs one dispatch-worthy zone with its best-fit
// vehicle. Distance is haversine kilometers; EstimatedArrival is minutes.
type DeploymentSuggestion struct {
	ID                  string             `json:"id"`
	Priority            SuggestionPriority `json:"priority"`
	TargetZone          RiskZone           `json:"targetZone"`
	Vehicle             Vehicle            `json:"vehicle"`
	Distance            float64            `json:"distance"`
	EstimatedArrival    int                `json:"estimatedArrival"`
	Reason              string             `json:"reason"`
	AlternativeVehicles []Vehicle          `json:"alternativeVehicles"`
}

// DeploymentSummary is the rollup across one planning pass.
type DeploymentSummary struct {
	CriticalZonesCount int      `json:"criticalZonesCount"`
	AvailableVehicles  int      `json:"availableVehicles"`
	AverageETA         int      `json:"averageEta"`
	Recommendations    []string `json:"recommendations"`
}

// DeploymentPlan is the full planner output.
type DeploymentPlan struct {
	Suggestions []DeploymentSuggestion `json:"suggestions"`
	Summary     DeploymentSummary      `json:"summary"`
}

// CurrentConditions holds one observation from the weather source.
type CurrentConditions struct {
	Temperature       float64 `json:"temperature"`
	FeelsLike         float64 `json:"feelsLike"`
	Humidity          float64 `json:"humidity"`
	Precipitation     float64 `json:"precipitation"`
	PrecipitationType string  `json:"precipitationType"`
	WindSpeed         float64 `json:"windSpeed"`
	WindDirection     string  `json:"windDirection"`
	Visibility        float64 `json:"visibility"`
	UVIndex           float64 `json:"uvIndex"`
}

// HourlyForecast is one hour of the short-range forecast, hour 0 = now.
type HourlyForecast struct {
	Hour                     int     `json:"hour"`
	Temperature              float64 `json:"temperature"`
	Precipitation            float64 `json:"precipitation"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	WindSpeed                float64 `json:"windSpeed"`
	Condition                string  `json:"condition"`
}

// WeatherAlert is an active advisory from the weather source.
type WeatherAlert struct {
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// WeatherSnapshot bundles current conditions, alerts, and the hourly
// forecast. Consumed only by the narrative generator, never by scoring.
type WeatherSnapshot struct {
	Timestamp time.Time         `json:"timestamp"`
	Location  string            `json:"location"`
	Current   CurrentConditions `json:"current"`
	Alerts    []WeatherAlert    `json:"alerts"`
	Hourly    []HourlyForecast  `json:"hourlyForecast"`
}

// FeatureSource queries hazard layers by name. A timeout or transport error
// from one layer is treated as that layer's empty-result case by callers.
type FeatureSource interface {
	QueryLayer(ctx context.Context, layer string, maxFeatures int) (FeatureCollection, error)
}

// WeatherProvider supplies the current weather snapshot for a mode.
type WeatherProvider interface {
	Snapshot(ctx context.Context, mode Mode) (WeatherSnapshot, error)
}

// FleetProvider lists the response fleet for a mode, refreshed per call.
type FleetProvider interface {
	Vehicles(ctx context.Context, mode Mode) ([]Vehicle, error)
}
