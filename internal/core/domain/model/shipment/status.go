package shipment

import (
	"fmt"

	"reparto/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with defined transitions so shipments follow
// the delivery workflow:
//
//	Pending ──> InDelivery ──┬──> Delivered
//	   ^                     ├──> Rejected
//	   │                     ├──> NoShow
//	   │                     ├──> Returned
//	   │                     ├──> Cancelled
//	   └──── Rescheduled <───┘
//
// Rescheduled shipments re-enter delivery through a new manifest.
// Delivered, Rejected, NoShow, Returned, and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a registered shipment awaiting
	// inclusion in a delivery sheet.
	Pending

	// InDelivery indicates the shipment is committed to an active manifest
	// and out with a driver.
	InDelivery

	// Delivered indicates the shipment reached its recipient. Terminal.
	Delivered

	// Rejected indicates the recipient refused the package. Terminal.
	Rejected

	// NoShow indicates delivery failed on the second attempt. Terminal.
	NoShow

	// Returned indicates the package went back to the sender. Terminal.
	Returned

	// Rescheduled indicates a failed first attempt; the shipment is
	// eligible for a new manifest.
	Rescheduled

	// Cancelled indicates the shipment was withdrawn. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Pending:     "pending",
		InDelivery:  "in_delivery",
		Delivered:   "delivered",
		Rejected:    "rejected",
		NoShow:      "no_show",
		Returned:    "returned",
		Rescheduled: "rescheduled",
		Cancelled:   "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:     "pending",
		InDelivery:  "in_delivery",
		Delivered:   "delivered",
		Rejected:    "rejected",
		NoShow:      "no_show",
		Returned:    "returned",
		Rescheduled: "rescheduled",
		Cancelled:   "cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status ("pending", "in_delivery", ...).
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Rejected, NoShow, Returned, Cancelled:
		return true
	case Unknown, Pending, InDelivery, Rescheduled:
		return false
	}
	return false
}

// IsDeliverable reports whether a shipment in this status may be added to a
// preliminary manifest. Only Pending and Rescheduled shipments qualify.
func (s Status) IsDeliverable() bool {
	return s == Pending || s == Rescheduled
}

// StartDelivery transitions the status to InDelivery.
//
// Valid transitions:
//   - Pending -> InDelivery (first attempt)
//   - Rescheduled -> InDelivery (second attempt via a new manifest)
func (s Status) StartDelivery() (Status, error) {
	if !s.IsDeliverable() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s))
	}

	return InDelivery, nil
}

// Deliver transitions the status to Delivered.
// Only InDelivery shipments can be delivered.
func (s Status) Deliver() (Status, error) {
	if s != InDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s))
	}

	return Delivered, nil
}

// Reschedule transitions the status back to Rescheduled.
// Only InDelivery shipments can be rescheduled; the reconciliation that closes
// a manifest relies on this transition.
func (s Status) Reschedule() (Status, error) {
	if s != InDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to reschedule", s))
	}

	return Rescheduled, nil
}
