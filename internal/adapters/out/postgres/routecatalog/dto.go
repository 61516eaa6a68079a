// Package routecatalog provides read access to route reference data. Routes
// are maintained outside this service and replicated into a local table, so
// the catalog only needs lookups.
package routecatalog

import (
	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RouteDTO represents the database structure for route reference data.
type RouteDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name             string         `gorm:"type:varchar(255);not null"`
	Localities       pq.StringArray `gorm:"type:text[];not null"`
	DefaultDriverID  uuid.UUID      `gorm:"type:uuid;not null"`
	DefaultVehicleID uuid.UUID      `gorm:"type:uuid;not null"`
}

// TableName specifies the database table name for routes.
func (RouteDTO) TableName() string {
	return "routes"
}

// toRoute converts a database DTO to the route read model.
func toRoute(dto RouteDTO) (ports.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Route{}, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DefaultDriverID[:])
	if err != nil {
		return ports.Route{}, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.DefaultVehicleID[:])
	if err != nil {
		return ports.Route{}, err
	}

	return ports.Route{
		ID:               id,
		Name:             dto.Name,
		Localities:       dto.Localities,
		DefaultDriverID:  driverID,
		DefaultVehicleID: vehicleID,
	}, nil
}
