package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const kafkaBatchTimeout = 10 * time.Millisecond

// Writer is the part of *kafka.Writer the publisher needs
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes tracking events to a Kafka topic, keyed by
// shipment so one shipment's events stay ordered within a partition
type KafkaPublisher struct {
	writer Writer
	logger *logrus.Entry
}

// NewKafkaPublisher creates a publisher writing to topic on the
// comma-separated brokers
func NewKafkaPublisher(brokers, topic string, logger *logrus.Logger) *KafkaPublisher {
	addrs := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	return NewKafkaPublisherWithWriter(newKafkaWriter(addrs, topic), logger)
}

// newKafkaWriter flushes each synchronous Publish after a short batch window
func newKafkaWriter(addrs []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           kafkaBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisherWithWriter allows injecting a custom writer
func NewKafkaPublisherWithWriter(w Writer, logger *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		logger: logger.WithField("component", "events.kafka"),
	}
}

// Publish JSON-encodes event and writes it with its type in a header
func (p *KafkaPublisher) Publish(ctx context.Context, event *TrackingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal tracking event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.EventType)},
			{Key: "tenant-id", Value: []byte(event.TenantID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.EventType, err)
	}
	p.logger.WithField("event_type", event.EventType).Debug("Published tracking event")
	return nil
}

// Close shuts down the Kafka writer
func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		p.logger.WithError(err).Warn("Failed to close Kafka writer")
	}
}
