// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"

	"reparto/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ManifestRepoFactory provides access to the manifest repository within a transaction.
	ManifestRepoFactory interface {
		ManifestRepository() ports.ManifestRepository
	}

	// SequenceFactory provides access to the sheet-number sequence within a transaction.
	SequenceFactory interface {
		ManifestSequence() ports.ManifestSequence
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	// Used by commands that never touch a delivery sheet, such as
	// registration and outcome recording.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// UoW manages transactions across shipment and manifest aggregates,
	// including sheet-number allocation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   manifestRepo := uow.ManifestRepository()
	//   shipmentRepo := uow.ShipmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		ManifestRepoFactory
		SequenceFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Branch annotations recorded in shipment history entries, identifying which
// part of the operation performed the transition.
const (
	// branchDistribution marks transitions applied at manifest confirmation.
	branchDistribution = "distribution"

	// branchDriver marks outcomes reported from the driver app.
	branchDriver = "driver"

	// branchSystem marks reconciliation applied by sheet closure and the
	// expiry sweep.
	branchSystem = "system"
)
