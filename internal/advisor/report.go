package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// Response posture levels for the situation overview.
const (
	StatusLevel3 = "level-3"
	StatusLevel2 = "level-2"
	StatusWatch  = "watch"
)

// SituationOverview summarizes when the event started and how wide it runs.
type SituationOverview struct {
	StartTime       time.Time `json:"startTime"`
	CurrentStatus   string    `json:"currentStatus"`
	AffectedAreas   []string  `json:"affectedAreas"`
	EstimatedDamage string    `json:"estimatedDamage"`
}

// ResponseStatus lists what has been done, what is running, and what is
// queued.
type ResponseStatus struct {
	DeployedResources []ResourceSummary `json:"deployedResources"`
	CompletedActions  []string          `json:"completedActions"`
	OngoingActions    []string          `json:"ongoingActions"`
	PlannedActions    []string          `json:"plannedActions"`
}

// DamageAssessment holds the casualty and damage tallies.
type DamageAssessment struct {
	Casualties     int    `json:"casualties"`
	Displaced      int    `json:"displaced"`
	PropertyDamage string `json:"propertyDamage"`
}

// SituationReport is the periodic report document for one mode.
type SituationReport struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	ReportType       string            `json:"reportType"`
	CreatedAt        time.Time         `json:"createdAt"`
	Mode             domain.Mode       `json:"mode"`
	ExecutiveSummary string            `json:"executiveSummary"`
	Overview         SituationOverview `json:"situationOverview"`
	Response         ResponseStatus    `json:"responseStatus"`
	Damage           DamageAssessment  `json:"damageAssessment"`
	Recommendations  []string          `json:"recommendations"`
}

// GenerateSituationReport builds the report document from the zone set and
// the current resource rollup.
func GenerateSituationReport(mode domain.Mode, zones []domain.RiskZone, resources []ResourceSummary) SituationReport {
	now := domain.Clock().Now()
	info := mode.Info()

	critical := 0
	for _, z := range zones {
		if z.RiskScore >= 80 {
			critical++
		}
	}

	deployed := 0
	for _, r := range resources {
		deployed += r.Deployed
	}
	leadDeployed := 0
	if len(resources) > 0 {
		leadDeployed = resources[0].Deployed
	}

	status := StatusWatch
	switch {
	case critical > 3:
		status = StatusLevel3
	case critical > 0:
		status = StatusLevel2
	}

	damage := "none"
	if critical > 0 {
		damage = "being assessed"
	}

	return SituationReport{
		ID:         "RPT-" + uuid.NewString(),
		Title:      fmt.Sprintf("%s response situation report", info.Label),
		ReportType: "situation",
		CreatedAt:  now,
		Mode:       mode,
		ExecutiveSummary: fmt.Sprintf(
			"As of %s, %d %s risk sections are detected across the province, %d of them in a high-risk state. %d units of equipment are deployed in the field.",
			now.Format("2006-01-02 15:04"), len(zones), info.Label, critical, deployed),
		Overview: SituationOverview{
			StartTime:       now.Add(-3 * time.Hour),
			CurrentStatus:   status,
			AffectedAreas:   affectedAreas(zones),
			EstimatedDamage: damage,
		},
		Response: ResponseStatus{
			DeployedResources: resources,
			CompletedActions: []string{
				"Disaster response HQ activated",
				"Situation shared with partner agencies",
				"First-response teams dispatched to the field",
			},
			OngoingActions: []string{
				fmt.Sprintf("%s field deployment (%d units)", info.Vehicle, leadDeployed),
				"Risk zone monitoring",
				"Resident evacuation guidance",
			},
			PlannedActions: []string{
				"Review mobilizing reserve resources",
				"Draft the damage recovery plan",
				"Stand-down procedure once the situation closes",
			},
		},
		Damage: DamageAssessment{
			Casualties:     0,
			Displaced:      0,
			PropertyDamage: "being tallied",
		},
		Recommendations: []string{
			fmt.Sprintf("Concentrate response on %d high-risk sections", critical),
			"Secure and stage reserve resources",
			"Confirm resident evacuations are complete",
			"Keep the partner-agency coordination channel open",
		},
	}
}

// affectedAreas lists distinct leading region words across zone names, in
// first-seen order.
func affectedAreas(zones []domain.RiskZone) []string {
	seen := make(map[string]bool)
	var areas []string
	for _, z := range zones {
		first, _, _ := strings.Cut(z.Name, " ")
		if first == "" || seen[first] {
			continue
		}
		seen[first] = true
		areas = append(areas, first)
	}
	return areas
}
