package commands

import (
	"errors"

	"reparto/internal/pkg/guard"
)

var ErrExpireManifestsCommandIsNotConstructed = errors.New(
	"ExpireManifestsCommand must be created via NewExpireManifestsCommand constructor",
)

// ExpireManifestsCommand represents a request to sweep delivery sheets left
// open past their operating day. It carries no parameters; the handler
// derives the expiry window from the clock.
type ExpireManifestsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireManifestsCommand creates a command to run the expiry sweep.
func NewExpireManifestsCommand() (ExpireManifestsCommand, error) {
	return ExpireManifestsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireManifestsCommand) Validate() error {
	return c.guard.Validate(ErrExpireManifestsCommandIsNotConstructed)
}
