package queries

import (
	"context"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveManifestsQueryHandler retrieves sheets in Pending or InDelivery
// status from the database. Closed sheets are excluded, so the dashboard only
// shows work still in motion.
type GetActiveManifestsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveManifestsQueryHandler creates a handler for active sheet queries.
func NewGetActiveManifestsQueryHandler(db *gorm.DB) GetActiveManifestsQueryHandler {
	return GetActiveManifestsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by operating date, then ID,
// for consistent output.
func (h GetActiveManifestsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveManifestsQuery,
) ([]GetActiveManifestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	manifests := make([]GetActiveManifestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			operating_date,
			route_id,
			driver_id,
			vehicle_id,
			cardinality(shipment_ids)
		FROM manifests
		WHERE status != ?
		ORDER BY operating_date, id
	`, manifest.Closed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveManifestsQueryResponse
		var id, routeID, driverID, vehicleID uuid.UUID
		var status manifest.Status

		err = rows.Scan(
			&id,
			&resp.Number,
			&status,
			&resp.OperatingDate,
			&routeID,
			&driverID,
			&vehicleID,
			&resp.ShipmentCount,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RouteID, err = kernel.UUIDFromBytes(routeID[:]); err != nil {
			return nil, err
		}
		if resp.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		if resp.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
			return nil, err
		}
		resp.Status = status.String()

		manifests = append(manifests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return manifests, nil
}
