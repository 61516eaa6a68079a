package commands

import (
	"errors"
	"strings"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/errs"
	"reparto/internal/pkg/guard"
)

var ErrMarkDeliveryFailureCommandIsNotConstructed = errors.New(
	"MarkDeliveryFailureCommand must be created via NewMarkDeliveryFailureCommand constructor",
)

// MarkDeliveryFailureCommand represents a driver reporting a failed delivery
// attempt with its reason. The resulting status is decided by the failure
// policy, not by the caller.
type MarkDeliveryFailureCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewMarkDeliveryFailureCommand creates a command to record a failed attempt.
// The reason is required.
func NewMarkDeliveryFailureCommand(shipmentID kernel.UUID, reason string) (MarkDeliveryFailureCommand, error) {
	cmd := MarkDeliveryFailureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setReason(reason),
	); err != nil {
		return MarkDeliveryFailureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveryFailureCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveryFailureCommandIsNotConstructed)
}

// ShipmentID returns the shipment the attempt was made against.
func (c MarkDeliveryFailureCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Reason returns the reported failure reason.
func (c MarkDeliveryFailureCommand) Reason() string { return c.reason }

func (c *MarkDeliveryFailureCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *MarkDeliveryFailureCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
