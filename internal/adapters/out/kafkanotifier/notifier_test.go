package kafkanotifier

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages chan kafka.Message
	err      error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{messages: make(chan kafka.Message, 8)}
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	for _, msg := range msgs {
		w.messages <- msg
	}
	return nil
}

func (w *fakeWriter) receive(t *testing.T) kafka.Message {
	t.Helper()
	select {
	case msg := <-w.messages:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message published")
		return kafka.Message{}
	}
}

func testShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), shipment.NewTrackingNumber(),
		"Moron", "Ana Juarez", "2 boxes", "central", time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, s.StartDelivery("distribution", time.Now().UTC()))
	return s
}

func TestKafkaNotifier_ShipmentInDelivery(t *testing.T) {
	writer := newFakeWriter()
	notifier := newWithWriter(writer, slog.New(slog.DiscardHandler))
	s := testShipment(t)

	notifier.ShipmentInDelivery(t.Context(), s, "HR-SDA-00007")

	msg := writer.receive(t)
	require.Equal(t, s.TrackingNumber(), string(msg.Key))

	var event shipmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	require.Equal(t, EventShipmentInDelivery, event.Event)
	require.Equal(t, s.TrackingNumber(), event.TrackingNumber)
	require.Equal(t, "in_delivery", event.Status)
	require.Equal(t, "HR-SDA-00007", event.ManifestNumber)
}

func TestKafkaNotifier_ShipmentDelivered(t *testing.T) {
	writer := newFakeWriter()
	notifier := newWithWriter(writer, slog.New(slog.DiscardHandler))
	s := testShipment(t)

	point, err := kernel.NewGeoPoint(-58.62, -34.65)
	require.NoError(t, err)
	require.NoError(t, s.MarkDelivered("Ana Juarez", "30123456", point, "driver", time.Now().UTC()))

	notifier.ShipmentDelivered(t.Context(), s)

	msg := writer.receive(t)
	var event shipmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	require.Equal(t, EventShipmentDelivered, event.Event)
	require.Equal(t, "delivered", event.Status)
	require.Empty(t, event.ManifestNumber)
}

func TestKafkaNotifier_WriteFailureDoesNotPanic(t *testing.T) {
	writer := newFakeWriter()
	writer.err = errors.New("broker unavailable")
	notifier := newWithWriter(writer, slog.New(slog.DiscardHandler))

	notifier.ShipmentDelivered(t.Context(), testShipment(t))
	// the publish goroutine swallows the error; give it a moment to run
	time.Sleep(50 * time.Millisecond)
}
