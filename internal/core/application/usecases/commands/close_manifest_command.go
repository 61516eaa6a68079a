package commands

import (
	"errors"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/guard"
)

var ErrCloseManifestCommandIsNotConstructed = errors.New(
	"CloseManifestCommand must be created via NewCloseManifestCommand constructor",
)

// CloseManifestCommand represents an operator terminating a delivery sheet at
// the end of its run.
type CloseManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID kernel.UUID
	actor      string

	guard guard.ConstructorGuard
}

// NewCloseManifestCommand creates a command to close the given sheet.
func NewCloseManifestCommand(manifestID kernel.UUID, actor string) (CloseManifestCommand, error) {
	cmd := CloseManifestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setManifestID(manifestID),
		cmd.setActor(actor),
	); err != nil {
		return CloseManifestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseManifestCommand) Validate() error {
	return c.guard.Validate(ErrCloseManifestCommandIsNotConstructed)
}

// ManifestID returns the sheet to close.
func (c CloseManifestCommand) ManifestID() kernel.UUID { return c.manifestID }

// Actor returns the identity of the closing operator.
func (c CloseManifestCommand) Actor() string { return c.actor }

func (c *CloseManifestCommand) setManifestID(manifestID kernel.UUID) error {
	if err := manifestID.Validate(); err != nil {
		return err
	}
	c.manifestID = manifestID
	return nil
}

func (c *CloseManifestCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
