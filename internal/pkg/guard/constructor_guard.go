// Package guard implements a defensive programming pattern that ensures value
// objects, entities, and commands are only created through their designated
// constructor functions. A zero-value struct embedding a ConstructorGuard will
// fail validation, which keeps domain objects from being used in an
// uninitialized state.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard tracks whether the embedding object was built through its
// constructor. Embed it as a private field and call Validate with the object's
// own sentinel error.
//
// Example:
//
//	var ErrManifestNotConstructed = errors.New("Manifest must be created via NewManifest")
//
//	type Manifest struct {
//	    // ...
//	    guard guard.ConstructorGuard
//	}
//
//	func (m Manifest) Validate() error {
//	    return m.guard.Validate(ErrManifestNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
// Call it inside the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
