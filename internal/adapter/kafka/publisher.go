// Package kafka publishes emergency alerts to the broadcast topic consumed
// by downstream notification systems (CBS gateway, SMS fan-out).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/climate-ops-service/internal/advisor"
	"github.com/couchcryptid/climate-ops-service/internal/config"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

// Publisher produces alert messages to the alert topic.
// It implements ops.AlertPublisher.
type Publisher struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured alert topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// PublishAlert serializes and publishes one emergency alert.
func (p *Publisher) PublishAlert(ctx context.Context, alert advisor.EmergencyAlert) error {
	msg, err := serializeAlert(alert)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write alert: %w", err)
	}
	p.metrics.AlertsPublished.Inc()
	p.logger.Info("alert published", "alert_id", alert.ID, "type", alert.Type)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeAlert marshals an alert into a Kafka message. The alert type
// header lets consumers route emergency broadcasts ahead of advisories
// without decoding the payload.
func serializeAlert(alert advisor.EmergencyAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_type", Value: []byte(alert.Type)},
			{Key: "issued_at", Value: []byte(alert.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
