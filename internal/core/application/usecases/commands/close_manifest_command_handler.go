package commands

import (
	"context"
	"time"

	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/ports"
)

// reasonSheetClosed annotates shipments returned to the deliverable pool when
// their sheet terminates with the delivery still pending.
const reasonSheetClosed = "sheet closed with delivery pending"

// CloseManifestCommandHandler terminates delivery sheets on operator demand.
// Shipments on the sheet with no recorded outcome are reconciled back to
// Rescheduled so the next build can pick them up.
type CloseManifestCommandHandler struct {
	uowFactory UoWFactory
}

// NewCloseManifestCommandHandler creates a handler for manual sheet closure.
func NewCloseManifestCommandHandler(uowFactory UoWFactory) CloseManifestCommandHandler {
	return CloseManifestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the closure command and returns the closed sheet.
func (h CloseManifestCommandHandler) Handle(
	ctx context.Context, cmd CloseManifestCommand,
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

	m, err := manifestRepo.Get(ctx, cmd.ManifestID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = m.Close(cmd.Actor(), now); err != nil {
		return nil, err
	}

	if err = reconcileOpenShipments(ctx, uow.ShipmentRepository(), m, now); err != nil {
		return nil, err
	}

	if err = manifestRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

// reconcileOpenShipments returns every shipment on the sheet still InDelivery
// to the Rescheduled pool. Shipments with a recorded outcome keep it.
func reconcileOpenShipments(
	ctx context.Context, repo ports.ShipmentRepository, m *manifest.Manifest, now time.Time,
) error {
	for _, id := range m.ShipmentIDs() {
		s, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if s.Status() != shipment.InDelivery {
			continue
		}

		if err = s.Reschedule(branchSystem, reasonSheetClosed, now); err != nil {
			return err
		}

		if err = repo.Update(ctx, s); err != nil {
			return err
		}
	}

	return nil
}
