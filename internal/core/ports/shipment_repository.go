package ports

import (
	"context"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, including
	// any history entries appended since it was loaded.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingNumber retrieves a shipment by its tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)

	// FindDeliverable retrieves all shipments in Pending or Rescheduled status
	// whose destination locality is in the given set. The manifest builder
	// uses it to collect candidates for a route.
	FindDeliverable(ctx context.Context, localities []string) ([]*shipment.Shipment, error)

	// ExistsTrackingNumber reports whether a shipment with the given tracking
	// number already exists. Registration collision-checks generated numbers
	// with it.
	ExistsTrackingNumber(ctx context.Context, trackingNumber string) (bool, error)
}
