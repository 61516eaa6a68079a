package commands

import (
	"errors"

	"reparto/internal/pkg/guard"
)

var ErrRegisterShipmentCommandIsNotConstructed = errors.New(
	"RegisterShipmentCommand must be created via NewRegisterShipmentCommand constructor",
)

// RegisterShipmentCommand represents a request to register a new shipment.
// The tracking number is generated (and collision-checked) by the handler,
// not supplied by the caller.
type RegisterShipmentCommand struct { //nolint:recvcheck //using for validation
	locality      string
	recipient     string
	packageDetail string
	branch        string

	guard guard.ConstructorGuard
}

// NewRegisterShipmentCommand creates a command to register a shipment bound
// for the given locality. Locality, recipient, and registering branch are
// required; the package detail is free text.
func NewRegisterShipmentCommand(
	locality, recipient, packageDetail, branch string,
) (RegisterShipmentCommand, error) {
	cmd := RegisterShipmentCommand{
		packageDetail: packageDetail,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLocality(locality),
		cmd.setRecipient(recipient),
		cmd.setBranch(branch),
	); err != nil {
		return RegisterShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterShipmentCommandIsNotConstructed)
}

// Locality returns the destination locality.
func (c RegisterShipmentCommand) Locality() string { return c.locality }

// Recipient returns the recipient's name.
func (c RegisterShipmentCommand) Recipient() string { return c.recipient }

// PackageDetail returns the package description.
func (c RegisterShipmentCommand) PackageDetail() string { return c.packageDetail }

// Branch returns the office registering the shipment.
func (c RegisterShipmentCommand) Branch() string { return c.branch }

func (c *RegisterShipmentCommand) setLocality(locality string) error {
	if locality == "" {
		return errors.New("locality is required")
	}
	c.locality = locality
	return nil
}

func (c *RegisterShipmentCommand) setRecipient(recipient string) error {
	if recipient == "" {
		return errors.New("recipient is required")
	}
	c.recipient = recipient
	return nil
}

func (c *RegisterShipmentCommand) setBranch(branch string) error {
	if branch == "" {
		return errors.New("branch is required")
	}
	c.branch = branch
	return nil
}
