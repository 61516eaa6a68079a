package manifest

import (
	"fmt"

	"reparto/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery sheet.
//
// State transitions:
//
//	Pending ──> InDelivery ──> Closed
//
// Pending sheets are preliminary plans that lock nothing. InDelivery sheets
// own their shipments exclusively. Closed is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is a preliminary sheet built but not yet confirmed.
	// It has no number and does not lock its candidate shipments.
	Pending

	// InDelivery is a confirmed sheet out with its driver. Its shipment set
	// is exclusive: no other InDelivery sheet may share a shipment with it.
	InDelivery

	// Closed is the terminal state, reached by manual closure or the expiry sweep.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InDelivery: "in_delivery",
		Closed:     "closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		InDelivery: "in_delivery",
		Closed:     "closed",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Confirm transitions the status to InDelivery.
// Only Pending sheets can be confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s))
	}

	return InDelivery, nil
}

// Close transitions the status to Closed.
// Only InDelivery sheets can be closed.
func (s Status) Close() (Status, error) {
	if s != InDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to close", s))
	}

	return Closed, nil
}
