package commands

import (
	"errors"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/guard"
)

var (
	ErrBuildManifestCommandIsNotConstructed = errors.New(
		"BuildManifestCommand must be created via NewBuildManifestCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// BuildManifestCommand represents a request to assemble a preliminary
// delivery sheet for a route. Driver and vehicle overrides are optional;
// when absent the route's defaults apply. The resulting sheet locks nothing:
// its candidate shipments stay eligible for other preliminary sheets until
// one of them is confirmed.
type BuildManifestCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	driverID  *kernel.UUID
	vehicleID *kernel.UUID
	notes     string
	actor     string

	guard guard.ConstructorGuard
}

// NewBuildManifestCommand creates a command to build a preliminary sheet.
// The route ID and the requesting actor are required.
func NewBuildManifestCommand(
	routeID kernel.UUID,
	driverID *kernel.UUID,
	vehicleID *kernel.UUID,
	notes string,
	actor string,
) (BuildManifestCommand, error) {
	cmd := BuildManifestCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
		cmd.setActor(actor),
	); err != nil {
		return BuildManifestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BuildManifestCommand) Validate() error {
	return c.guard.Validate(ErrBuildManifestCommandIsNotConstructed)
}

// RouteID returns the route to build the sheet for.
func (c BuildManifestCommand) RouteID() kernel.UUID { return c.routeID }

// DriverID returns the driver override, or nil to use the route default.
func (c BuildManifestCommand) DriverID() *kernel.UUID { return c.driverID }

// VehicleID returns the vehicle override, or nil to use the route default.
func (c BuildManifestCommand) VehicleID() *kernel.UUID { return c.vehicleID }

// Notes returns the free-text notes to attach to the sheet.
func (c BuildManifestCommand) Notes() string { return c.notes }

// Actor returns the identity of the requesting operator.
func (c BuildManifestCommand) Actor() string { return c.actor }

func (c *BuildManifestCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *BuildManifestCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	c.driverID = driverID
	return nil
}

func (c *BuildManifestCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *BuildManifestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
