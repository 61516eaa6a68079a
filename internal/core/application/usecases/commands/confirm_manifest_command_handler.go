package commands

import (
	"context"
	"fmt"
	"time"

	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/ports"
	"reparto/internal/pkg/errs"
)

// ConfirmManifestCommandHandler commits preliminary delivery sheets. This is
// the only place a sheet number is allocated and the only place shipments
// transition to InDelivery in bulk.
//
// The handler enforces the exclusivity invariant: every shipment in the final
// selection is checked against other active sheets before anything is
// mutated, so a conflicting confirmation fails without side effects.
type ConfirmManifestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewConfirmManifestCommandHandler creates a handler for sheet confirmation.
func NewConfirmManifestCommandHandler(
	uowFactory UoWFactory, notifier ports.Notifier,
) ConfirmManifestCommandHandler {
	return ConfirmManifestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the confirmation command and returns the committed sheet.
//
// The sequence is: load the sheet and the final shipment selection, verify no
// shipment is held by another active sheet, allocate the sequential number,
// confirm the sheet, and move every shipment to InDelivery. Everything runs
// in one transaction; departure notifications are dispatched only after the
// commit succeeds.
func (h ConfirmManifestCommandHandler) Handle(
	ctx context.Context, cmd ConfirmManifestCommand,
) (*manifest.Manifest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	manifestRepo := uow.ManifestRepository()
	shipmentRepo := uow.ShipmentRepository()

	m, err := manifestRepo.Get(ctx, cmd.ManifestID())
	if err != nil {
		return nil, err
	}

	shipments, err := h.loadShipments(ctx, shipmentRepo, cmd)
	if err != nil {
		return nil, err
	}

	if err = h.checkExclusivity(ctx, manifestRepo, m, shipments); err != nil {
		return nil, err
	}

	next, err := uow.ManifestSequence().Next(ctx)
	if err != nil {
		return nil, err
	}

	driverID := m.DriverID()
	if cmd.DriverID() != nil {
		driverID = *cmd.DriverID()
	}
	vehicleID := m.VehicleID()
	if cmd.VehicleID() != nil {
		vehicleID = *cmd.VehicleID()
	}

	now := time.Now().UTC()
	if err = m.Confirm(
		manifest.FormatNumber(next), cmd.ShipmentIDs(), driverID, vehicleID, cmd.Actor(), now,
	); err != nil {
		return nil, err
	}

	for _, s := range shipments {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		if err = s.StartDelivery(branchDistribution, now); err != nil {
			return nil, err
		}

		if err = shipmentRepo.Update(ctx, s); err != nil {
			return nil, err
		}
	}

	if err = manifestRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyDeparture(ctx, m, shipments)
	return m, nil
}

func (h ConfirmManifestCommandHandler) loadShipments(
	ctx context.Context, repo ports.ShipmentRepository, cmd ConfirmManifestCommand,
) ([]*shipment.Shipment, error) {
	ids := cmd.ShipmentIDs()
	shipments := make([]*shipment.Shipment, 0, len(ids))

	for _, id := range ids {
		s, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// checkExclusivity verifies that no shipment in the final selection is
// referenced by another InDelivery sheet. It runs before any mutation so a
// conflict leaves both aggregates untouched.
func (h ConfirmManifestCommandHandler) checkExclusivity(
	ctx context.Context,
	repo ports.ManifestRepository,
	m *manifest.Manifest,
	shipments []*shipment.Shipment,
) error {
	for _, s := range shipments {
		holders, err := repo.FindActiveByShipment(ctx, s.ID(), m.ID())
		if err != nil {
			return err
		}

		if len(holders) > 0 {
			return errs.NewConflictErrorWithCause("shipment", s.TrackingNumber(),
				fmt.Errorf("already assigned to active sheet %s", holders[0].ID()))
		}
	}

	return nil
}

// notifyDeparture dispatches ShipmentInDelivery events after the transaction
// commits. Dispatch is best effort and detached from the request's
// cancellation; a failed notification never fails the confirmation.
func (h ConfirmManifestCommandHandler) notifyDeparture(
	ctx context.Context, m *manifest.Manifest, shipments []*shipment.Shipment,
) {
	if h.notifier == nil || m.Number() == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	for _, s := range shipments {
		h.notifier.ShipmentInDelivery(ctx, s, *m.Number())
	}
}
