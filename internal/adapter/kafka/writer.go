package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-life/internal/config"
	"github.com/couchcryptid/weather-life/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Message types carried in the event_type header.
const (
	EventTypeWarning = "disaster_warning"
	EventTypeSOS     = "sos_alert"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces warning snapshots and SOS alerts to their topics over
// one shared producer. It implements pipeline.Publisher and sos.Publisher.
type Publisher struct {
	writer        messageWriter
	warningsTopic string
	sosTopic      string
	logger        *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured topics. The
// topic is set per message.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{
		writer:        w,
		warningsTopic: cfg.KafkaWarningsTopic,
		sosTopic:      cfg.KafkaSOSTopic,
		logger:        logger,
	}
}

// PublishSnapshot writes one warning snapshot keyed by region.
func (p *Publisher) PublishSnapshot(ctx context.Context, snap domain.WarningSnapshot) error {
	msg, err := snapshotMessage(p.warningsTopic, snap)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write warning snapshot: %w", err)
	}
	p.logger.Debug("warning snapshot published", "topic", p.warningsTopic, "region", snap.Region(), "alerts", len(snap.Alerts))
	return nil
}

// PublishSOS writes one SOS alert keyed by its id. Status changes of the
// same incident land on the same partition.
func (p *Publisher) PublishSOS(ctx context.Context, alert domain.SOSAlert) error {
	msg, err := sosMessage(p.sosTopic, alert)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write sos alert: %w", err)
	}
	p.logger.Info("sos alert published", "topic", p.sosTopic, "id", alert.ID, "status", alert.Status)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// snapshotMessage marshals a WarningSnapshot into a Kafka message.
func snapshotMessage(topic string, snap domain.WarningSnapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize warning snapshot: %w", err)
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(snap.Region()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(EventTypeWarning)},
			{Key: "generated_at", Value: []byte(snap.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}

// sosMessage marshals an SOSAlert into a Kafka message.
func sosMessage(topic string, alert domain.SOSAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize sos alert: %w", err)
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(alert.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(EventTypeSOS)},
			{Key: "generated_at", Value: []byte(alert.Timestamp.Format(time.RFC3339))},
			{Key: "status", Value: []byte(alert.Status)},
		},
	}, nil
}
