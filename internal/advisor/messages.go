// Package advisor produces the operational narrative layer: the agent log,
// situation briefings, emergency alerts, and situation reports. Everything
// here is templated text driven by zone counts and thresholds; there is no
// generative model behind it.
package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// weatherLines is the fixed per-mode weather-analysis line in the agent log.
var weatherLines = map[domain.Mode]string{
	domain.ModeWinter:    "[Weather] Subzero temperatures. Icing conditions met. Focusing on steep shaded sections.",
	domain.ModeSummer:    "[Weather] Extreme rainfall of 50-100mm/h expected. Scanning flood-prone areas.",
	domain.ModeLandslide: "[Terrain] Heavy rain warning in effect. Monitoring grade-1 landslide zones.",
	domain.ModeHeat:      "[Weather] Heatwave warning issued. Apparent temperature above 35C. Checking on vulnerable residents.",
}

// reasonPreview truncates a zone reason for the log line.
func reasonPreview(reason string) string {
	if len(reason) > 50 {
		reason = reason[:50]
	}
	return reason + "..."
}

// AgentMessages builds the agent log for one analysis. Timestamps are
// synthetic but causal: the batch reads as a sequence of events leading up
// to now, so earlier lines carry earlier times.
func AgentMessages(mode domain.Mode, zones []domain.RiskZone, dataSources []string) []domain.AgentMessage {
	now := domain.Clock().Now()
	stamp := now.UnixMilli()

	var high, medium []domain.RiskZone
	for _, z := range zones {
		switch {
		case z.RiskScore >= 80:
			high = append(high, z)
		case z.RiskScore >= 50:
			medium = append(medium, z)
		}
	}

	info := mode.Info()
	messages := []domain.AgentMessage{
		{
			ID:        fmt.Sprintf("msg-%d-1", stamp),
			Timestamp: now.Add(-6 * time.Second),
			Message:   fmt.Sprintf("[System] Climate platform link established. %s mode analysis started.", info.Label),
			Type:      domain.MessageInfo,
		},
		{
			ID:        fmt.Sprintf("msg-%d-2", stamp),
			Timestamp: now.Add(-5 * time.Second),
			Message:   dataSourcesLine(dataSources),
			Type:      domain.MessageData,
		},
		{
			ID:        fmt.Sprintf("msg-%d-3", stamp),
			Timestamp: now.Add(-4 * time.Second),
			Message:   weatherLines[mode],
			Type:      domain.MessageAlert,
		},
	}

	for idx, zone := range high {
		if idx >= 3 {
			break
		}
		messages = append(messages, domain.AgentMessage{
			ID:        fmt.Sprintf("msg-%d-zone-%d", stamp, idx),
			Timestamp: now.Add(-3*time.Second + time.Duration(idx)*500*time.Millisecond),
			Message:   fmt.Sprintf("[Detection] %s - %s risk %d%%", zone.Name, reasonPreview(zone.Reason), zone.RiskScore),
			Type:      domain.MessageAlert,
		})
	}

	if len(high) > 0 {
		messages = append(messages, domain.AgentMessage{
			ID:        fmt.Sprintf("msg-%d-summary", stamp),
			Timestamp: now.Add(-1 * time.Second),
			Message:   fmt.Sprintf("[Analysis] %d sections analyzed. %d high-risk, %d watch detected.", len(zones), len(high), len(medium)),
			Type:      domain.MessageInfo,
		})
		messages = append(messages, domain.AgentMessage{
			ID:        fmt.Sprintf("msg-%d-action", stamp),
			Timestamp: now,
			Message:   dispatchLine(mode, high),
			Type:      domain.MessageAction,
		})
	} else {
		messages = append(messages, domain.AgentMessage{
			ID:        fmt.Sprintf("msg-%d-safe", stamp),
			Timestamp: now,
			Message:   "[All clear] No high-risk sections at present. Maintaining normal monitoring.",
			Type:      domain.MessageSuccess,
		})
	}

	return messages
}

func dataSourcesLine(dataSources []string) string {
	named := dataSources
	if len(named) > 3 {
		named = named[:3]
	}
	line := fmt.Sprintf("[Data] %d layers queried: %s", len(dataSources), strings.Join(named, ", "))
	if len(dataSources) > 3 {
		line += fmt.Sprintf(" +%d more", len(dataSources)-3)
	}
	return line
}

// dispatchLine names the top zone and a vehicle count. Counts cap at 5, 3
// for excavator teams which stage with rescue crews.
func dispatchLine(mode domain.Mode, high []domain.RiskZone) string {
	top := high[0]
	count := len(high)
	switch mode {
	case domain.ModeWinter:
		return fmt.Sprintf("[Dispatch] Stage %d snowplows for pre-emptive deployment. Top priority: %s", min(count, 5), top.Name)
	case domain.ModeSummer:
		return fmt.Sprintf("[Dispatch] Move %d pump trucks forward. Top priority: %s", min(count, 5), top.Name)
	case domain.ModeLandslide:
		return fmt.Sprintf("[Dispatch] Hold %d excavator and rescue teams ready. Watch: %s", min(count, 3), top.Name)
	case domain.ModeHeat:
		return fmt.Sprintf("[Dispatch] Deploy %d mobile shelters and step up wellness patrols. Focus: %s", min(count, 5), top.Name)
	}
	return fmt.Sprintf("[Dispatch] Deploy %d units. Top priority: %s", min(count, 5), top.Name)
}

// DegradedMessages is the single-line agent log returned when every data
// source for a mode is unreachable.
func DegradedMessages() []domain.AgentMessage {
	now := domain.Clock().Now()
	return []domain.AgentMessage{{
		ID:        fmt.Sprintf("msg-error-%d", now.UnixMilli()),
		Timestamp: now,
		Message:   "[System] Data sources unreachable. Retry in progress.",
		Type:      domain.MessageAlert,
	}}
}
