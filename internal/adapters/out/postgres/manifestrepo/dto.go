// Package manifestrepo provides data transfer objects and mapping functions
// for delivery-sheet persistence. The sheet's shipment references are stored
// as a uuid[] column, which keeps the exclusivity probe a single indexed
// query instead of a join table scan.
package manifestrepo

import (
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ManifestDTO represents the database structure for persisting sheet
// aggregates. Number is null while the sheet is preliminary. The movement log
// lives in a child table keyed by a per-sheet sequence.
type ManifestDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Number        *string        `gorm:"type:varchar(16);uniqueIndex"`
	OperatingDate time.Time      `gorm:"type:timestamptz;not null;index"`
	RouteID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	DriverID      uuid.UUID      `gorm:"type:uuid;not null"`
	VehicleID     uuid.UUID      `gorm:"type:uuid;not null"`
	ShipmentIDs   pq.StringArray `gorm:"type:uuid[]"`
	Status        int            `gorm:"type:int;not null;index"`
	AutoClosed    bool           `gorm:"type:boolean;not null"`
	Notes         string         `gorm:"type:text"`

	Movements []MovementDTO `gorm:"foreignKey:ManifestID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for sheet entities.
func (ManifestDTO) TableName() string {
	return "manifests"
}

// MovementDTO represents one row of the append-only movement log. Actor is
// null for entries written by the expiry sweep.
type MovementDTO struct {
	ManifestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence   int       `gorm:"type:int;primaryKey"`
	Actor      *string   `gorm:"type:varchar(255)"`
	Action     string    `gorm:"type:varchar(64);not null"`
	At         time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for movement entries.
func (MovementDTO) TableName() string {
	return "manifest_movements"
}

// fromDomain converts a sheet aggregate to its database representation.
func fromDomain(m *manifest.Manifest) ManifestDTO {
	manifestID := m.ID().Bytes()

	shipmentIDs := m.ShipmentIDs()
	rawIDs := make(pq.StringArray, 0, len(shipmentIDs))
	for _, id := range shipmentIDs {
		rawIDs = append(rawIDs, id.String())
	}

	movementEntries := m.Movements()
	movements := make([]MovementDTO, 0, len(movementEntries))
	for i, entry := range movementEntries {
		movements = append(movements, MovementDTO{
			ManifestID: manifestID,
			Sequence:   i + 1,
			Actor:      entry.Actor,
			Action:     entry.Action,
			At:         entry.At,
		})
	}

	return ManifestDTO{
		ID:            manifestID,
		Number:        m.Number(),
		OperatingDate: m.OperatingDate(),
		RouteID:       m.RouteID().Bytes(),
		DriverID:      m.DriverID().Bytes(),
		VehicleID:     m.VehicleID().Bytes(),
		ShipmentIDs:   rawIDs,
		Status:        int(m.Status()),
		AutoClosed:    m.AutoClosed(),
		Notes:         m.Notes(),
		Movements:     movements,
	}
}

// toDomain converts a database DTO to a sheet aggregate using
// RestoreManifest. The movement slice must already be in sequence order.
func toDomain(dto ManifestDTO) (*manifest.Manifest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	shipmentIDs := make([]kernel.UUID, 0, len(dto.ShipmentIDs))
	for _, raw := range dto.ShipmentIDs {
		shipmentID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		shipmentIDs = append(shipmentIDs, shipmentID)
	}

	movements := make([]manifest.Movement, 0, len(dto.Movements))
	for _, entry := range dto.Movements {
		movements = append(movements, manifest.Movement{
			Actor:  entry.Actor,
			Action: entry.Action,
			At:     entry.At,
		})
	}

	return manifest.RestoreManifest(
		id,
		dto.Number,
		dto.OperatingDate,
		routeID,
		driverID,
		vehicleID,
		shipmentIDs,
		manifest.Status(dto.Status),
		dto.AutoClosed,
		dto.Notes,
		movements,
	)
}
