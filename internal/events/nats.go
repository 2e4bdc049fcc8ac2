package events

import (
	"context"
	"errors"

	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is reported by the readiness check when the broker
// connection is down
var ErrNotConnected = errors.New("events publisher not connected")

// NATSPublisher publishes tracking events to NATS JetStream
type NATSPublisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewNATSPublisher connects to natsURL and makes sure the tracking stream exists
func NewNATSPublisher(natsURL string, logger *logrus.Logger) (*NATSPublisher, error) {
	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "tracking-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := publisher.EnsureStream(ctx, StreamName, []string{"tracking.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure TRACKING_EVENTS stream")
	}

	return &NATSPublisher{
		publisher: publisher,
		logger:    logger.WithField("component", "events.nats"),
	}, nil
}

// Publish sends event on the subject named by its type
func (p *NATSPublisher) Publish(ctx context.Context, event *TrackingEvent) error {
	return p.publisher.Publish(ctx, event)
}

// IsConnected returns true if connected to NATS
func (p *NATSPublisher) IsConnected() bool {
	return p.publisher.IsConnected()
}

// ConnectionCheck returns a readiness check for publishers that hold a broker
// connection, or nil when publisher has none to report on
func ConnectionCheck(publisher Publisher) func(ctx context.Context) error {
	conn, ok := publisher.(interface{ IsConnected() bool })
	if !ok {
		return nil
	}
	return func(ctx context.Context) error {
		if !conn.IsConnected() {
			return ErrNotConnected
		}
		return nil
	}
}

// Close closes the publisher connection
func (p *NATSPublisher) Close() {
	p.publisher.Close()
}
