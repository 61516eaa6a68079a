package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterShipmentRequest is the body of POST /api/v1/shipments.
type RegisterShipmentRequest struct {
	Locality      string `json:"locality" validate:"required"`
	Recipient     string `json:"recipient" validate:"required"`
	PackageDetail string `json:"package_detail"`
	Branch        string `json:"branch" validate:"required"`
}

// ShipmentResponse represents a shipment in API responses.
type ShipmentResponse struct {
	ID             string                 `json:"id"`
	TrackingNumber string                 `json:"tracking_number"`
	Locality       string                 `json:"locality"`
	Recipient      string                 `json:"recipient"`
	PackageDetail  string                 `json:"package_detail"`
	Status         string                 `json:"status"`
	RetryCount     int                    `json:"retry_count"`
	FailureReason  string                 `json:"failure_reason,omitempty"`
	History        []HistoryEntryResponse `json:"history,omitempty"`
}

// HistoryEntryResponse is one entry of a shipment's status history.
type HistoryEntryResponse struct {
	Status string    `json:"status"`
	Branch string    `json:"branch"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason,omitempty"`
}

// BuildManifestRequest is the body of POST /api/v1/manifests.
type BuildManifestRequest struct {
	RouteID   string  `json:"route_id" validate:"required,uuid"`
	DriverID  *string `json:"driver_id" validate:"omitempty,uuid"`
	VehicleID *string `json:"vehicle_id" validate:"omitempty,uuid"`
	Notes     string  `json:"notes"`
	Actor     string  `json:"actor" validate:"required"`
}

// ConfirmManifestRequest is the body of POST /api/v1/manifests/:id/confirmation.
// ShipmentIDs is the operator's final selection.
type ConfirmManifestRequest struct {
	ShipmentIDs []string `json:"shipment_ids" validate:"required,min=1,dive,uuid"`
	DriverID    *string  `json:"driver_id" validate:"omitempty,uuid"`
	VehicleID   *string  `json:"vehicle_id" validate:"omitempty,uuid"`
	Actor       string   `json:"actor" validate:"required"`
}

// CloseManifestRequest is the body of POST /api/v1/manifests/:id/closure.
type CloseManifestRequest struct {
	Actor string `json:"actor" validate:"required"`
}

// ManifestResponse represents a delivery sheet in API responses.
// Number is empty while the sheet is preliminary.
type ManifestResponse struct {
	ID            string    `json:"id"`
	Number        *string   `json:"number"`
	Status        string    `json:"status"`
	OperatingDate time.Time `json:"operating_date"`
	RouteID       string    `json:"route_id"`
	DriverID      string    `json:"driver_id"`
	VehicleID     string    `json:"vehicle_id"`
	ShipmentIDs   []string  `json:"shipment_ids"`
	AutoClosed    bool      `json:"auto_closed"`
	Notes         string    `json:"notes,omitempty"`
}

// BuildManifestResponse is returned by the builder: the preliminary sheet
// plus its candidate shipments for the confirmation screen.
type BuildManifestResponse struct {
	Manifest   ManifestResponse   `json:"manifest"`
	Candidates []ShipmentResponse `json:"candidates"`
}

// ActiveManifestResponse is one row of GET /api/v1/manifests/active.
type ActiveManifestResponse struct {
	ID            string    `json:"id"`
	Number        *string   `json:"number"`
	Status        string    `json:"status"`
	OperatingDate time.Time `json:"operating_date"`
	RouteID       string    `json:"route_id"`
	DriverID      string    `json:"driver_id"`
	VehicleID     string    `json:"vehicle_id"`
	ShipmentCount int       `json:"shipment_count"`
}

// MarkDeliveredRequest is the body of POST /api/v1/shipments/:id/delivery.
type MarkDeliveredRequest struct {
	ReceiverName     string  `json:"receiver_name" validate:"required"`
	ReceiverDocument string  `json:"receiver_document" validate:"required"`
	Longitude        float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude         float64 `json:"latitude" validate:"min=-90,max=90"`
}

// MarkDeliveryFailureRequest is the body of POST /api/v1/shipments/:id/failure.
type MarkDeliveryFailureRequest struct {
	Reason string `json:"reason" validate:"required"`
}
