package commands

import (
	"context"
	"time"

	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/domain/services"
)

// MarkDeliveryFailureCommandHandler records failed delivery attempts reported
// from the driver app. The failure policy decides whether the shipment ends
// up Rejected, NoShow, or Rescheduled; the handler only applies the outcome.
type MarkDeliveryFailureCommandHandler struct {
	uowFactory ShipmentUoWFactory
	policy     services.FailurePolicy
}

// NewMarkDeliveryFailureCommandHandler creates a handler for recording failed
// attempts.
func NewMarkDeliveryFailureCommandHandler(
	uowFactory ShipmentUoWFactory, policy services.FailurePolicy,
) MarkDeliveryFailureCommandHandler {
	return MarkDeliveryFailureCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the failure report and returns the updated shipment.
func (h MarkDeliveryFailureCommandHandler) Handle(
	ctx context.Context, cmd MarkDeliveryFailureCommand,
) (*shipment.Shipment, error) {
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

	shipmentRepo := uow.ShipmentRepository()

	s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	next, err := h.policy.Classify(s, cmd.Reason())
	if err != nil {
		return nil, err
	}

	if err = s.RecordFailure(cmd.Reason(), next, branchDriver, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
