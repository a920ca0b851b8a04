package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// Alert delivery channels and escalation types.
const (
	AlertTypeEmergency = "emergency-broadcast"
	AlertTypeAdvisory  = "safety-advisory"
)

// EmergencyAlert is a draft public alert built from the current zone set.
// It is a draft: an operator reviews it before any channel sends it.
type EmergencyAlert struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Channels     []string    `json:"channels"`
	TargetArea   string      `json:"targetArea"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	ActionItems  []string    `json:"actionItems"`
	ContactInfo  string      `json:"contactInfo"`
	Timestamp    time.Time   `json:"timestamp"`
	Status       string      `json:"status"`
	Mode         domain.Mode `json:"mode"`
	BasedOnZones []string    `json:"basedOnZones"`
}

// GenerateEmergencyAlert drafts a public alert for the mode. Three or more
// critical zones escalate the alert type from advisory to emergency
// broadcast.
func GenerateEmergencyAlert(mode domain.Mode, zones []domain.RiskZone, weather domain.WeatherSnapshot) EmergencyAlert {
	now := domain.Clock().Now()

	var critical []domain.RiskZone
	for _, z := range zones {
		if z.RiskScore >= 80 {
			critical = append(critical, z)
		}
	}
	top := critical
	if len(top) > 3 {
		top = top[:3]
	}

	alertType := AlertTypeAdvisory
	if len(critical) >= 3 {
		alertType = AlertTypeEmergency
	}

	regions := regionList(top)
	title, content, actions := alertTemplate(mode, regions, weather)

	ids := make([]string, len(top))
	for i, z := range top {
		ids[i] = z.ID
	}

	return EmergencyAlert{
		ID:           "ALERT-" + uuid.NewString(),
		Type:         alertType,
		Channels:     []string{"CBS", "SMS"},
		TargetArea:   "Gyeonggi " + regions,
		Title:        title,
		Content:      content,
		ActionItems:  actions,
		ContactInfo:  "Gyeonggi Disaster Response HQ 031-120",
		Timestamp:    now,
		Status:       "draft",
		Mode:         mode,
		BasedOnZones: ids,
	}
}

// regionList joins the leading word of each zone name, which is the region
// for zones named "<region> <hazard>".
func regionList(zones []domain.RiskZone) string {
	names := make([]string, 0, len(zones))
	for _, z := range zones {
		if first, _, _ := strings.Cut(z.Name, " "); first != "" {
			names = append(names, first)
		}
	}
	return strings.Join(names, ", ")
}

func alertTemplate(mode domain.Mode, regions string, weather domain.WeatherSnapshot) (title, content string, actions []string) {
	cur := weather.Current
	switch mode {
	case domain.ModeWinter:
		return "[Urgent] Road icing",
			fmt.Sprintf("A black-ice warning is in effect for the %s areas of Gyeonggi. Temperature is %.0f°C and road icing is expected.", regions, cur.Temperature),
			[]string{
				"Avoid hard braking and sudden starts",
				"Double your following distance",
				"Prefer public transit",
				"Avoid unnecessary travel",
			}
	case domain.ModeSummer:
		return "[Urgent] Flood risk",
			fmt.Sprintf("A flood warning is in effect for the %s areas of Gyeonggi. Rainfall above %.0fmm/h is expected.", regions, cur.Precipitation),
			[]string{
				"Do not enter low-lying areas or underpasses",
				"Stay away from streams",
				"Abandon vehicles that begin to flood",
				"Move to higher ground",
			}
	case domain.ModeLandslide:
		return "[Urgent] Landslide risk",
			fmt.Sprintf("A landslide warning is in effect for the %s areas of Gyeonggi. Residents near slopes should evacuate immediately.", regions),
			[]string{
				"Stay away from slopes and valleys",
				"Move to a shelter immediately",
				"Call 119 on any warning sign",
				"Confirm your evacuation route",
			}
	default:
		return "[Urgent] Heatwave warning",
			fmt.Sprintf("A heatwave warning is in effect across Gyeonggi. Temperature is %.0f°C, feels like %.0f°C.", cur.Temperature, cur.FeelsLike),
			[]string{
				"Avoid outdoor activity between 11:00 and 17:00",
				"Drink plenty of water",
				"Use a cooling shelter",
				"Check on elderly neighbors living alone",
			}
	}
}
