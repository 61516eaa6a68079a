// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the
// aggregates and their invariant machinery.
package queries

import (
	"errors"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/guard"
)

var ErrGetActiveManifestsQueryIsNotConstructed = errors.New(
	"GetActiveManifestsQuery must be created via NewGetActiveManifestsQuery constructor",
)

// GetActiveManifestsQuery retrieves all delivery sheets not yet closed, both
// preliminary and in-delivery, for the distribution dashboard.
type GetActiveManifestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveManifestsQuery creates a query to retrieve active sheets.
// This is a parameterless query.
func NewGetActiveManifestsQuery() GetActiveManifestsQuery {
	return GetActiveManifestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveManifestsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveManifestsQueryIsNotConstructed)
}

// GetActiveManifestsQueryResponse represents one active sheet row.
// Number is nil for preliminary sheets.
type GetActiveManifestsQueryResponse struct {
	ID            kernel.UUID
	Number        *string
	Status        string
	OperatingDate time.Time
	RouteID       kernel.UUID
	DriverID      kernel.UUID
	VehicleID     kernel.UUID
	ShipmentCount int
}
