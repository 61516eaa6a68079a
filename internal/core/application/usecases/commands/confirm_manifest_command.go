package commands

import (
	"errors"
	"slices"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/guard"
)

var (
	ErrConfirmManifestCommandIsNotConstructed = errors.New(
		"ConfirmManifestCommand must be created via NewConfirmManifestCommand constructor",
	)
	ErrShipmentListIsRequired = errors.New("shipment list is required")
)

// ConfirmManifestCommand represents a request to commit a preliminary
// delivery sheet. The shipment list is the operator's final selection, which
// may prune candidates the builder proposed. Driver and vehicle overrides
// are optional.
type ConfirmManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID  kernel.UUID
	shipmentIDs []kernel.UUID
	driverID    *kernel.UUID
	vehicleID   *kernel.UUID
	actor       string

	guard guard.ConstructorGuard
}

// NewConfirmManifestCommand creates a command to confirm the given sheet with
// the operator's final shipment selection. The list must be non-empty.
func NewConfirmManifestCommand(
	manifestID kernel.UUID,
	shipmentIDs []kernel.UUID,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	actor string,
) (ConfirmManifestCommand, error) {
	cmd := ConfirmManifestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setManifestID(manifestID),
		cmd.setShipmentIDs(shipmentIDs),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
		cmd.setActor(actor),
	); err != nil {
		return ConfirmManifestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmManifestCommand) Validate() error {
	return c.guard.Validate(ErrConfirmManifestCommandIsNotConstructed)
}

// ManifestID returns the sheet to confirm.
func (c ConfirmManifestCommand) ManifestID() kernel.UUID { return c.manifestID }

// ShipmentIDs returns the final shipment selection.
func (c ConfirmManifestCommand) ShipmentIDs() []kernel.UUID { return slices.Clone(c.shipmentIDs) }

// DriverID returns the driver override, or nil to keep the sheet's driver.
func (c ConfirmManifestCommand) DriverID() *kernel.UUID { return c.driverID }

// VehicleID returns the vehicle override, or nil to keep the sheet's vehicle.
func (c ConfirmManifestCommand) VehicleID() *kernel.UUID { return c.vehicleID }

// Actor returns the identity of the confirming operator.
func (c ConfirmManifestCommand) Actor() string { return c.actor }

func (c *ConfirmManifestCommand) setManifestID(manifestID kernel.UUID) error {
	if err := manifestID.Validate(); err != nil {
		return err
	}
	c.manifestID = manifestID
	return nil
}

func (c *ConfirmManifestCommand) setShipmentIDs(shipmentIDs []kernel.UUID) error {
	if len(shipmentIDs) == 0 {
		return ErrShipmentListIsRequired
	}
	for _, id := range shipmentIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.shipmentIDs = slices.Clone(shipmentIDs)
	return nil
}

func (c *ConfirmManifestCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	c.driverID = driverID
	return nil
}

func (c *ConfirmManifestCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *ConfirmManifestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
