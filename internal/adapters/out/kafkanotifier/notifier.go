// Package kafkanotifier publishes shipment transition events to Kafka. The
// events feed recipient-facing channels (tracking updates, SMS gateways)
// outside this service; delivery of a notification is best effort and never
// affects the state transition that produced it.
package kafkanotifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"reparto/internal/core/domain/model/shipment"

	"github.com/segmentio/kafka-go"
)

const (
	// EventShipmentInDelivery is published when a shipment leaves with a driver.
	EventShipmentInDelivery = "shipment.in_delivery"

	// EventShipmentDelivered is published when a delivery completes.
	EventShipmentDelivered = "shipment.delivered"

	publishTimeout = 10 * time.Second
)

// messageWriter is the subset of kafka.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// shipmentEvent is the JSON payload published for both event kinds.
// ManifestNumber is set only for in-delivery events.
type shipmentEvent struct {
	Event          string    `json:"event"`
	TrackingNumber string    `json:"tracking_number"`
	Locality       string    `json:"locality"`
	Recipient      string    `json:"recipient"`
	Status         string    `json:"status"`
	ManifestNumber string    `json:"manifest_number,omitempty"`
	At             time.Time `json:"at"`
}

// KafkaNotifier implements ports.Notifier over a Kafka topic. Messages are
// keyed by tracking number so all events of one shipment land on the same
// partition in order.
type KafkaNotifier struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaNotifier creates a notifier publishing to the given topic.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger.With("component", "kafka-notifier"),
	}
}

// newWithWriter is used by tests to substitute the writer.
func newWithWriter(writer messageWriter, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: writer,
		logger: logger.With("component", "kafka-notifier"),
	}
}

// ShipmentInDelivery announces that a shipment left with a driver.
func (n *KafkaNotifier) ShipmentInDelivery(ctx context.Context, s *shipment.Shipment, manifestNumber string) {
	n.publish(ctx, shipmentEvent{
		Event:          EventShipmentInDelivery,
		TrackingNumber: s.TrackingNumber(),
		Locality:       s.Locality(),
		Recipient:      s.Recipient(),
		Status:         s.Status().String(),
		ManifestNumber: manifestNumber,
		At:             time.Now().UTC(),
	})
}

// ShipmentDelivered announces a completed delivery.
func (n *KafkaNotifier) ShipmentDelivered(ctx context.Context, s *shipment.Shipment) {
	n.publish(ctx, shipmentEvent{
		Event:          EventShipmentDelivered,
		TrackingNumber: s.TrackingNumber(),
		Locality:       s.Locality(),
		Recipient:      s.Recipient(),
		Status:         s.Status().String(),
		At:             time.Now().UTC(),
	})
}

// publish hands the event off to a goroutine and returns immediately.
// Failures are logged, never surfaced to the caller.
func (n *KafkaNotifier) publish(ctx context.Context, event shipmentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("failed to marshal event", "event", event.Event, "error", err)
		return
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		err := n.writer.WriteMessages(writeCtx, kafka.Message{
			Key:   []byte(event.TrackingNumber),
			Value: payload,
		})
		if err != nil {
			n.logger.Error("failed to publish event",
				"event", event.Event,
				"trackingNumber", event.TrackingNumber,
				"error", err)
			return
		}

		n.logger.Debug("event published",
			"event", event.Event,
			"trackingNumber", event.TrackingNumber)
	}()
}
