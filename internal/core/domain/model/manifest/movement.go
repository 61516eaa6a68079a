package manifest

import "time"

// Movement actions recorded in the sheet's movement log.
const (
	// ActionCreation is logged when the builder persists a preliminary sheet.
	ActionCreation = "creation"

	// ActionConfirmation is logged when a sheet is committed.
	ActionConfirmation = "confirmation"

	// ActionManualClosure is logged when an operator closes a sheet on demand.
	ActionManualClosure = "manual closure"

	// ActionAutomaticClosure is logged when the expiry sweep force-closes a
	// sheet left open past its operating day.
	ActionAutomaticClosure = "automatic closure on expiry"
)

// Movement is one record of a sheet's append-only movement log.
type Movement struct {
	// Actor identifies the operator who performed the action. It is nil for
	// actions taken by the expiry scheduler.
	Actor *string

	// Action is one of the Action* constants.
	Action string

	// At is the moment the action was recorded.
	At time.Time
}
