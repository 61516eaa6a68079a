package ports

import (
	"context"

	"reparto/internal/core/domain/model/kernel"
)

// Route is read-only reference data describing a delivery route: the
// localities it serves and its default crew. Route, driver, and vehicle
// management lives outside this service; the core only reads.
type Route struct {
	ID               kernel.UUID
	Name             string
	Localities       []string
	DefaultDriverID  kernel.UUID
	DefaultVehicleID kernel.UUID
}

// RouteCatalog looks up route reference data. Implementations may call
// another service or read a local table maintained by the admin dashboard.
type RouteCatalog interface {
	// Route returns the route with the given ID, or an ObjectNotFoundError.
	Route(ctx context.Context, id kernel.UUID) (Route, error)
}
