package queries

import (
	"context"
	"database/sql"
	"errors"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentByTrackingNumberQueryHandler resolves tracking lookups against
// the database. It reads the shipment row and its history rows directly,
// without touching the aggregate.
type GetShipmentByTrackingNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentByTrackingNumberQueryHandler creates a handler for tracking
// lookups.
func NewGetShipmentByTrackingNumberQueryHandler(db *gorm.DB) GetShipmentByTrackingNumberQueryHandler {
	return GetShipmentByTrackingNumberQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when no shipment
// carries the tracking number.
func (h GetShipmentByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentByTrackingNumberQuery,
) (GetShipmentByTrackingNumberQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentByTrackingNumberQueryResponse{}, err
	}

	var resp GetShipmentByTrackingNumberQueryResponse
	var id uuid.UUID
	var status shipment.Status

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			locality,
			recipient,
			package_detail,
			status,
			retry_count,
			failure_reason
		FROM shipments
		WHERE tracking_number = ?
	`, query.TrackingNumber()).Row()

	err := row.Scan(
		&id,
		&resp.TrackingNumber,
		&resp.Locality,
		&resp.Recipient,
		&resp.PackageDetail,
		&status,
		&resp.RetryCount,
		&resp.FailureReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentByTrackingNumberQueryResponse{},
			errs.NewObjectNotFoundError("trackingNumber", query.TrackingNumber())
	}
	if err != nil {
		return GetShipmentByTrackingNumberQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentByTrackingNumberQueryResponse{}, err
	}
	resp.Status = status.String()

	if resp.History, err = h.loadHistory(ctx, id); err != nil {
		return GetShipmentByTrackingNumberQueryResponse{}, err
	}

	return resp, nil
}

func (h GetShipmentByTrackingNumberQueryHandler) loadHistory(
	ctx context.Context, shipmentID uuid.UUID,
) ([]ShipmentHistoryEntryResponse, error) {
	history := make([]ShipmentHistoryEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			branch,
			at,
			reason
		FROM shipment_history
		WHERE shipment_id = ?
		ORDER BY sequence
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry ShipmentHistoryEntryResponse
		var status shipment.Status

		if err = rows.Scan(&status, &entry.Branch, &entry.At, &entry.Reason); err != nil {
			return nil, err
		}
		entry.Status = status.String()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
