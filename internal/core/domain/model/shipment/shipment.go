package shipment

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/errs"
)

// ReasonRecipientRejected is the canonical failure reason meaning the
// recipient refused the package. It is compared for exact equality: a failure
// reported with this literal becomes Rejected regardless of the retry count,
// while any other reason goes through the retry policy. Callers must submit
// the canonical string unchanged.
const ReasonRecipientRejected = "recipient rejected"

// TrackingNumberPrefix starts every generated tracking number.
const TrackingNumberPrefix = "ENV-"

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")
)

// Shipment represents a single package moving through the delivery pipeline.
// It is the aggregate root for the shipment lifecycle and owns its own status
// and status history.
//
// Shipment maintains these invariants:
//   - The status history is append-only; every transition appends exactly one entry
//   - The last history entry always matches the current status
//   - Terminal statuses admit no further transitions
//   - Can only be created through NewShipment or RestoreShipment
type Shipment struct {
	id             kernel.UUID
	trackingNumber string

	// locality is the destination locality used for manifest candidate matching.
	locality  string
	recipient string

	// packageDetail is a free-text description of the package contents.
	packageDetail string

	status  Status
	history []HistoryEntry

	// delivery receipt, set only when the shipment is delivered
	receiverName     string
	receiverDocument string
	deliveryPoint    *kernel.GeoPoint

	failureReason string
	retryCount    int
	lastAttemptAt *time.Time

	isConstructed bool
}

// NewTrackingNumber generates a candidate tracking number in the
// "ENV-XXXXXXXX" format. Callers must collision-check the candidate against
// the repository before using it; the registration flow retries on collision.
func NewTrackingNumber() string {
	return fmt.Sprintf("%s%08d", TrackingNumberPrefix, rand.IntN(100_000_000)) //nolint:gosec // not security sensitive
}

// NewShipment registers a new shipment in Pending status and appends the
// initial history entry recording the registering branch.
func NewShipment(
	id kernel.UUID,
	trackingNumber string,
	locality string,
	recipient string,
	packageDetail string,
	branch string,
	registeredAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		packageDetail: packageDetail,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingNumber(trackingNumber),
		s.setLocality(locality),
		s.setRecipient(recipient),
	); err != nil {
		return nil, err
	}

	s.status = Pending
	s.appendHistory(Pending, branch, registeredAt, "")
	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence without emitting
// new history entries. The stored status and history are taken as-is after
// basic validation.
func RestoreShipment(
	id kernel.UUID,
	trackingNumber string,
	locality string,
	recipient string,
	packageDetail string,
	status Status,
	history []HistoryEntry,
	receiverName string,
	receiverDocument string,
	deliveryPoint *kernel.GeoPoint,
	failureReason string,
	retryCount int,
	lastAttemptAt *time.Time,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if retryCount < 0 {
		return nil, errs.NewValueIsInvalidError("retryCount")
	}

	return &Shipment{
		id:               id,
		trackingNumber:   trackingNumber,
		locality:         locality,
		recipient:        recipient,
		packageDetail:    packageDetail,
		status:           status,
		history:          slices.Clone(history),
		receiverName:     receiverName,
		receiverDocument: receiverDocument,
		deliveryPoint:    deliveryPoint,
		failureReason:    failureReason,
		retryCount:       retryCount,
		lastAttemptAt:    lastAttemptAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Shipment was properly constructed through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// TrackingNumber returns the human-facing tracking number.
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// Locality returns the destination locality.
func (s *Shipment) Locality() string { return s.locality }

// Recipient returns the recipient's name.
func (s *Shipment) Recipient() string { return s.recipient }

// PackageDetail returns the package description.
func (s *Shipment) PackageDetail() string { return s.packageDetail }

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status { return s.status }

// History returns a copy of the append-only status history in transition order.
func (s *Shipment) History() []HistoryEntry { return slices.Clone(s.history) }

// ReceiverName returns the name of the person who received the package.
// Empty until the shipment is delivered.
func (s *Shipment) ReceiverName() string { return s.receiverName }

// ReceiverDocument returns the receiver's identity document number.
// Empty until the shipment is delivered.
func (s *Shipment) ReceiverDocument() string { return s.receiverDocument }

// DeliveryPoint returns the geolocation captured at delivery, or nil.
func (s *Shipment) DeliveryPoint() *kernel.GeoPoint { return s.deliveryPoint }

// FailureReason returns the most recent delivery-failure reason.
func (s *Shipment) FailureReason() string { return s.failureReason }

// RetryCount returns the number of failed delivery attempts recorded so far.
func (s *Shipment) RetryCount() int { return s.retryCount }

// LastAttemptAt returns the timestamp of the most recent failed attempt, or nil.
func (s *Shipment) LastAttemptAt() *time.Time { return s.lastAttemptAt }

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// StartDelivery commits the shipment to an active manifest, transitioning it
// to InDelivery and appending the history entry. Only Pending and Rescheduled
// shipments can start delivery.
func (s *Shipment) StartDelivery(branch string, at time.Time) error {
	newStatus, err := s.status.StartDelivery()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.appendHistory(newStatus, branch, at, "")
	return nil
}

// MarkDelivered records a successful delivery: receiver identity, the
// geolocation where the handover happened, the Delivered status, and the
// history entry. Receiver name and document are required; the point must be a
// constructed GeoPoint. Only InDelivery shipments can be delivered.
func (s *Shipment) MarkDelivered(
	receiverName string,
	receiverDocument string,
	point kernel.GeoPoint,
	branch string,
	at time.Time,
) error {
	if strings.TrimSpace(receiverName) == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}
	if strings.TrimSpace(receiverDocument) == "" {
		return errs.NewValueIsRequiredError("receiverDocument")
	}
	if err := point.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Deliver()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.receiverName = receiverName
	s.receiverDocument = receiverDocument
	s.deliveryPoint = &point
	s.appendHistory(newStatus, branch, at, "")
	return nil
}

// RecordFailure applies a delivery-failure outcome decided by the failure
// policy. It increments the retry counter, stamps the attempt time, stores the
// reason, and appends the history entry carrying it.
//
// The shipment must currently be InDelivery, and next must be one of the
// failure outcomes (Rejected, NoShow, Rescheduled).
func (s *Shipment) RecordFailure(reason string, next Status, branch string, at time.Time) error {
	if s.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("shipment", s.trackingNumber,
			fmt.Errorf("%s is a terminal status", s.status))
	}
	if s.status != InDelivery {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to record a failure", s.status))
	}
	if next != Rejected && next != NoShow && next != Rescheduled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a failure outcome", next))
	}

	s.status = next
	s.failureReason = reason
	s.retryCount++
	s.lastAttemptAt = &at
	s.appendHistory(next, branch, at, reason)
	return nil
}

// Reschedule returns an in-delivery shipment to the Rescheduled pool. The
// manifest closure reconciliation uses it for shipments left in delivery when
// their sheet is closed.
func (s *Shipment) Reschedule(branch string, reason string, at time.Time) error {
	newStatus, err := s.status.Reschedule()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.appendHistory(newStatus, branch, at, reason)
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if !strings.HasPrefix(trackingNumber, TrackingNumberPrefix) {
		return errs.NewValueIsInvalidError("trackingNumber")
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *Shipment) setLocality(locality string) error {
	if locality == "" {
		return errs.NewValueIsRequiredError("locality")
	}
	s.locality = locality
	return nil
}

func (s *Shipment) setRecipient(recipient string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	s.recipient = recipient
	return nil
}

func (s *Shipment) appendHistory(status Status, branch string, at time.Time, reason string) {
	s.history = append(s.history, HistoryEntry{
		Status: status,
		Branch: branch,
		At:     at,
		Reason: reason,
	})
}
