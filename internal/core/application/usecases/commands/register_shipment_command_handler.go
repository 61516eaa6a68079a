package commands

import (
	"context"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/ports"
	"reparto/internal/pkg/errs"
)

// trackingNumberAttempts bounds the collision-check loop during registration.
// Collisions are rare (8 random digits); hitting the bound means the number
// space is nearly exhausted and the operation should fail loudly.
const trackingNumberAttempts = 5

// RegisterShipmentCommandHandler handles shipment registration: it generates
// a collision-checked tracking number and persists the shipment in Pending
// status with its initial history entry.
type RegisterShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewRegisterShipmentCommandHandler creates a handler for shipment registration.
func NewRegisterShipmentCommandHandler(uowFactory ShipmentUoWFactory) RegisterShipmentCommandHandler {
	return RegisterShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the created shipment.
func (h RegisterShipmentCommandHandler) Handle(
	ctx context.Context, cmd RegisterShipmentCommand,
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

	trackingNumber, err := h.generateTrackingNumber(ctx, shipmentRepo)
	if err != nil {
		return nil, err
	}

	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		trackingNumber,
		cmd.Locality(),
		cmd.Recipient(),
		cmd.PackageDetail(),
		cmd.Branch(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = shipmentRepo.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (h RegisterShipmentCommandHandler) generateTrackingNumber(
	ctx context.Context, repo ports.ShipmentRepository,
) (string, error) {
	for range trackingNumberAttempts {
		candidate := shipment.NewTrackingNumber()

		exists, err := repo.ExistsTrackingNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", errs.NewConflictError("trackingNumber", "could not generate a unique tracking number")
}
