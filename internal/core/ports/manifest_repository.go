package ports

import (
	"context"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"
)

// ManifestRepository defines the persistence contract for delivery-sheet
// aggregates.
type ManifestRepository interface {
	// Add persists a new sheet aggregate to storage.
	Add(ctx context.Context, aggregate *manifest.Manifest) error

	// Update persists changes to an existing sheet aggregate.
	Update(ctx context.Context, aggregate *manifest.Manifest) error

	// Get retrieves a sheet aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error)

	// FindActiveByShipment retrieves all sheets in InDelivery status that
	// reference the given shipment, excluding the sheet with excludeID.
	// The confirmation service runs it per shipment to enforce the
	// exclusivity invariant before committing.
	FindActiveByShipment(ctx context.Context, shipmentID, excludeID kernel.UUID) ([]*manifest.Manifest, error)

	// FindExpired retrieves all sheets in InDelivery status whose operating
	// date falls inside the given window. The expiry sweep uses it to select
	// sheets left open past their operating day; sheets closed by a previous
	// sweep are never returned again.
	FindExpired(ctx context.Context, window kernel.DayWindow) ([]*manifest.Manifest, error)
}

// ManifestSequence allocates the strictly increasing sequence behind
// delivery-sheet numbers. Next must be atomic with respect to concurrent
// confirmations: two callers never observe the same value, even across
// process restarts.
type ManifestSequence interface {
	Next(ctx context.Context) (int, error)
}
