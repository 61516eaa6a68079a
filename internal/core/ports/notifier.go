package ports

import (
	"context"

	"reparto/internal/core/domain/model/shipment"
)

// Notifier dispatches best-effort notifications about shipment transitions.
// Implementations must be fire-and-forget: they never block the caller beyond
// handing the event off, and failures are logged, never returned. The state
// transitions that trigger notifications commit regardless of dispatch
// outcome.
type Notifier interface {
	// ShipmentInDelivery announces that a shipment left with a driver as part
	// of the sheet identified by manifestNumber.
	ShipmentInDelivery(ctx context.Context, s *shipment.Shipment, manifestNumber string)

	// ShipmentDelivered announces a completed delivery.
	ShipmentDelivered(ctx context.Context, s *shipment.Shipment)
}
