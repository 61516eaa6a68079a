package commands

import (
	"errors"
	"strings"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/errs"
	"reparto/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents a driver reporting a successful handover:
// who received the package and where.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	shipmentID       kernel.UUID
	receiverName     string
	receiverDocument string
	point            kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to record a successful delivery.
// The receiver identity is required and the coordinates must be a valid
// longitude/latitude pair.
func NewMarkDeliveredCommand(
	shipmentID kernel.UUID,
	receiverName string,
	receiverDocument string,
	longitude float64,
	latitude float64,
) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setReceiverName(receiverName),
		cmd.setReceiverDocument(receiverDocument),
		cmd.setPoint(longitude, latitude),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// ShipmentID returns the delivered shipment's identifier.
func (c MarkDeliveredCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// ReceiverName returns the name of the person who received the package.
func (c MarkDeliveredCommand) ReceiverName() string { return c.receiverName }

// ReceiverDocument returns the receiver's identity document number.
func (c MarkDeliveredCommand) ReceiverDocument() string { return c.receiverDocument }

// Point returns the geolocation captured at handover.
func (c MarkDeliveredCommand) Point() kernel.GeoPoint { return c.point }

func (c *MarkDeliveredCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *MarkDeliveredCommand) setReceiverName(receiverName string) error {
	if strings.TrimSpace(receiverName) == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}
	c.receiverName = receiverName
	return nil
}

func (c *MarkDeliveredCommand) setReceiverDocument(receiverDocument string) error {
	if strings.TrimSpace(receiverDocument) == "" {
		return errs.NewValueIsRequiredError("receiverDocument")
	}
	c.receiverDocument = receiverDocument
	return nil
}

func (c *MarkDeliveredCommand) setPoint(longitude, latitude float64) error {
	point, err := kernel.NewGeoPoint(longitude, latitude)
	if err != nil {
		return err
	}
	c.point = point
	return nil
}
