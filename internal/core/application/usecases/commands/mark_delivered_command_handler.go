package commands

import (
	"context"
	"time"

	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/ports"
)

// MarkDeliveredCommandHandler records successful deliveries reported from the
// driver app: receiver identity, handover geolocation, and the Delivered
// transition.
type MarkDeliveredCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.Notifier
}

// NewMarkDeliveredCommandHandler creates a handler for recording deliveries.
func NewMarkDeliveredCommandHandler(
	uowFactory ShipmentUoWFactory, notifier ports.Notifier,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the delivery report and returns the updated shipment.
// The delivery notification is dispatched only after the commit succeeds.
func (h MarkDeliveredCommandHandler) Handle(
	ctx context.Context, cmd MarkDeliveredCommand,
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

	if err = s.MarkDelivered(
		cmd.ReceiverName(), cmd.ReceiverDocument(), cmd.Point(), branchDriver, time.Now().UTC(),
	); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.notifier != nil {
		h.notifier.ShipmentDelivered(context.WithoutCancel(ctx), s)
	}

	return s, nil
}
