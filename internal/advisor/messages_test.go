package advisor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

func zone(id string, score int) domain.RiskZone {
	return domain.RiskZone{
		ID:        id,
		Name:      "Suwon-si flood risk zone",
		RiskScore: score,
		Reason:    "Expected inundation in a 100-year storm (depth grade: 4)",
		Mode:      domain.ModeSummer,
	}
}

func frozenClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2025, 7, 14, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
	return at
}

func TestAgentMessages(t *testing.T) {
	now := frozenClock(t)
	sources := []string{"cfm_sgg_41_100yr_1h", "impvs", "tm_fldn_trce"}

	t.Run("full batch with high-risk zones", func(t *testing.T) {
		zones := []domain.RiskZone{zone("a", 95), zone("b", 85), zone("c", 82), zone("d", 81), zone("e", 60)}
		msgs := AgentMessages(domain.ModeSummer, zones, sources)

		// system, data, weather, 3 zone alerts, summary, dispatch
		require.Len(t, msgs, 8)
		assert.Equal(t, domain.MessageInfo, msgs[0].Type)
		assert.Contains(t, msgs[0].Message, "Flooding mode analysis started")
		assert.Equal(t, domain.MessageData, msgs[1].Type)
		assert.Contains(t, msgs[1].Message, "3 layers queried")
		assert.Equal(t, domain.MessageAlert, msgs[2].Type)

		assert.Equal(t, domain.MessageAlert, msgs[3].Type)
		assert.Contains(t, msgs[3].Message, "risk 95%")
		assert.Contains(t, msgs[3].Message, "...")

		assert.Contains(t, msgs[6].Message, "4 high-risk, 1 watch")
		assert.Equal(t, domain.MessageAction, msgs[7].Type)
		assert.Contains(t, msgs[7].Message, "4 pump trucks")
		assert.Contains(t, msgs[7].Message, "Suwon-si flood risk zone")
	})

	t.Run("timestamps are causal", func(t *testing.T) {
		zones := []domain.RiskZone{zone("a", 95)}
		msgs := AgentMessages(domain.ModeSummer, zones, sources)

		for i := 0; i < len(msgs)-1; i++ {
			assert.True(t, !msgs[i].Timestamp.After(msgs[i+1].Timestamp),
				"message %d timestamp after message %d", i, i+1)
		}
		assert.Equal(t, now.Add(-6*time.Second), msgs[0].Timestamp)
		assert.Equal(t, now, msgs[len(msgs)-1].Timestamp)
	})

	t.Run("all clear without high-risk zones", func(t *testing.T) {
		msgs := AgentMessages(domain.ModeWinter, []domain.RiskZone{zone("a", 60)}, sources)

		require.Len(t, msgs, 4)
		last := msgs[len(msgs)-1]
		assert.Equal(t, domain.MessageSuccess, last.Type)
		assert.Contains(t, last.Message, "No high-risk sections")
	})

	t.Run("landslide dispatch caps at three teams", func(t *testing.T) {
		var zones []domain.RiskZone
		for i := 0; i < 6; i++ {
			zones = append(zones, zone(fmt.Sprintf("z%d", i), 90))
		}
		msgs := AgentMessages(domain.ModeLandslide, zones, sources)
		assert.Contains(t, msgs[len(msgs)-1].Message, "3 excavator")
	})

	t.Run("more than three sources get a suffix", func(t *testing.T) {
		many := []string{"a", "b", "c", "d", "e"}
		msgs := AgentMessages(domain.ModeWinter, nil, many)
		assert.Contains(t, msgs[1].Message, "5 layers queried: a, b, c +2 more")
	})

	t.Run("deterministic text", func(t *testing.T) {
		zones := []domain.RiskZone{zone("a", 95), zone("b", 60)}
		first := AgentMessages(domain.ModeSummer, zones, sources)
		second := AgentMessages(domain.ModeSummer, zones, sources)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Message, second[i].Message)
		}
	})
}

func TestDegradedMessages(t *testing.T) {
	frozenClock(t)
	msgs := DegradedMessages()

	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageAlert, msgs[0].Type)
	assert.Contains(t, msgs[0].Message, "Retry in progress")
	assert.True(t, strings.HasPrefix(msgs[0].ID, "msg-error-"))
}
