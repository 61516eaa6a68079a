package services

import (
	"fmt"
	"strings"

	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/pkg/errs"
)

// FailurePolicy decides the outcome of a failed delivery attempt.
//
// The rules, in order:
//  1. A reason exactly matching shipment.ReasonRecipientRejected means the
//     recipient refused the package: the shipment becomes Rejected regardless
//     of how many attempts it has had.
//  2. Any other reason on a shipment that has already failed once (retry
//     count >= 1) becomes NoShow: a driver gets exactly one second attempt.
//  3. Otherwise the shipment is Rescheduled for another manifest.
//
// The rejection match is a literal string comparison on purpose. Classifying
// free text would silently change which shipments reach the Rejected state.
type FailurePolicy struct{}

// NewFailurePolicy creates a failure policy service.
func NewFailurePolicy() FailurePolicy {
	return FailurePolicy{}
}

// Classify returns the status a shipment should move to after a failed
// attempt with the given reason. It does not mutate the shipment; callers
// apply the outcome through Shipment.RecordFailure.
//
// Returns a ConflictError if the shipment is already in a terminal status and
// a ValueIsRequiredError if the reason is blank.
func (FailurePolicy) Classify(s *shipment.Shipment, reason string) (shipment.Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(reason) == "" {
		return 0, errs.NewValueIsRequiredError("reason")
	}
	if s.Status().IsTerminal() {
		return 0, errs.NewConflictErrorWithCause("shipment", s.TrackingNumber(),
			fmt.Errorf("%s is a terminal status", s.Status()))
	}

	if reason == shipment.ReasonRecipientRejected {
		return shipment.Rejected, nil
	}
	if s.RetryCount() >= 1 {
		return shipment.NoShow, nil
	}
	return shipment.Rescheduled, nil
}
