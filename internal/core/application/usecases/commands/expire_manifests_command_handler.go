package commands

import (
	"context"
	"time"

	"reparto/internal/core/domain/model/kernel"
)

// ExpireManifestsCommandHandler closes delivery sheets left in delivery past
// their operating day. Open shipments on expired sheets are returned to the
// Rescheduled pool, the same reconciliation manual closure applies.
//
// The sweep is idempotent: expired sheets leave InDelivery when closed, so a
// rerun finds nothing to do.
type ExpireManifestsCommandHandler struct {
	uowFactory UoWFactory
}

// NewExpireManifestsCommandHandler creates a handler for the expiry sweep.
func NewExpireManifestsCommandHandler(uowFactory UoWFactory) ExpireManifestsCommandHandler {
	return ExpireManifestsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs the sweep over the previous operating day and returns the
// number of sheets it closed.
func (h ExpireManifestsCommandHandler) Handle(ctx context.Context, cmd ExpireManifestsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	manifestRepo := uow.ManifestRepository()
	shipmentRepo := uow.ShipmentRepository()

	now := time.Now().UTC()
	expired, err := manifestRepo.FindExpired(ctx, kernel.PreviousOperatingDayWindow(now))
	if err != nil {
		return 0, err
	}

	for _, m := range expired {
		if err = ctx.Err(); err != nil {
			return 0, err
		}

		if err = m.CloseAutomatically(now); err != nil {
			return 0, err
		}

		if err = reconcileOpenShipments(ctx, shipmentRepo, m, now); err != nil {
			return 0, err
		}

		if err = manifestRepo.Update(ctx, m); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(expired), nil
}
