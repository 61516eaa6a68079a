package shipment

import "time"

// HistoryEntry is one record of the append-only status log every shipment
// carries. Exactly one entry is appended per status transition, in the same
// aggregate operation that performs the transition, so the log always reflects
// real mutation order and its last entry matches the current status.
type HistoryEntry struct {
	// Status the shipment entered with this transition.
	Status Status

	// Branch is the office or system component that recorded the transition.
	Branch string

	// At is the moment the transition was applied.
	At time.Time

	// Reason is an optional free-text annotation (e.g. a failure reason).
	Reason string
}
