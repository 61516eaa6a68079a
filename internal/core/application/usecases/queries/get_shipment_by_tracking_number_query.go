package queries

import (
	"errors"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/pkg/errs"
	"reparto/internal/pkg/guard"
)

var ErrGetShipmentByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetShipmentByTrackingNumberQuery must be created via NewGetShipmentByTrackingNumberQuery constructor",
)

// GetShipmentByTrackingNumberQuery retrieves one shipment with its full
// status history by tracking number. This is the public tracking lookup.
type GetShipmentByTrackingNumberQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetShipmentByTrackingNumberQuery creates a tracking lookup query.
// The tracking number is required.
func NewGetShipmentByTrackingNumberQuery(trackingNumber string) (GetShipmentByTrackingNumberQuery, error) {
	if trackingNumber == "" {
		return GetShipmentByTrackingNumberQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	return GetShipmentByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByTrackingNumberQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetShipmentByTrackingNumberQuery) TrackingNumber() string {
	return q.trackingNumber
}

// ShipmentHistoryEntryResponse is one entry of the shipment's status history.
type ShipmentHistoryEntryResponse struct {
	Status string
	Branch string
	At     time.Time
	Reason string
}

// GetShipmentByTrackingNumberQueryResponse represents the tracked shipment
// with its history in transition order.
type GetShipmentByTrackingNumberQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	Locality       string
	Recipient      string
	PackageDetail  string
	Status         string
	RetryCount     int
	FailureReason  string
	History        []ShipmentHistoryEntryResponse
}
