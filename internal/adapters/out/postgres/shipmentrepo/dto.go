// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, converting between the domain model and its relational
// representation.
package shipmentrepo

import (
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The status history lives in a child table keyed by a
// per-shipment sequence that preserves transition order.
type ShipmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	Locality       string     `gorm:"type:varchar(255);not null;index"`
	Recipient      string     `gorm:"type:varchar(255);not null"`
	PackageDetail  string     `gorm:"type:text"`
	Status         int        `gorm:"type:int;not null;index"`
	ReceiverName   string     `gorm:"type:varchar(255)"`
	ReceiverDoc    string     `gorm:"type:varchar(64)"`
	DeliveryLon    *float64   `gorm:"type:double precision"`
	DeliveryLat    *float64   `gorm:"type:double precision"`
	FailureReason  string     `gorm:"type:text"`
	RetryCount     int        `gorm:"type:int;not null"`
	LastAttemptAt  *time.Time `gorm:"type:timestamptz"`

	History []HistoryEntryDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// HistoryEntryDTO represents one row of the append-only status history.
// Sequence starts at 1 and follows transition order.
type HistoryEntryDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence   int       `gorm:"type:int;primaryKey"`
	Status     int       `gorm:"type:int;not null"`
	Branch     string    `gorm:"type:varchar(64);not null"`
	At         time.Time `gorm:"type:timestamptz;not null"`
	Reason     string    `gorm:"type:text"`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "shipment_history"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	shipmentID := s.ID().Bytes()

	historyEntries := s.History()
	history := make([]HistoryEntryDTO, 0, len(historyEntries))
	for i, entry := range historyEntries {
		history = append(history, HistoryEntryDTO{
			ShipmentID: shipmentID,
			Sequence:   i + 1,
			Status:     int(entry.Status),
			Branch:     entry.Branch,
			At:         entry.At,
			Reason:     entry.Reason,
		})
	}

	var deliveryLon, deliveryLat *float64
	if point := s.DeliveryPoint(); point != nil {
		lon, lat := point.Longitude(), point.Latitude()
		deliveryLon, deliveryLat = &lon, &lat
	}

	return ShipmentDTO{
		ID:             shipmentID,
		TrackingNumber: s.TrackingNumber(),
		Locality:       s.Locality(),
		Recipient:      s.Recipient(),
		PackageDetail:  s.PackageDetail(),
		Status:         int(s.Status()),
		ReceiverName:   s.ReceiverName(),
		ReceiverDoc:    s.ReceiverDocument(),
		DeliveryLon:    deliveryLon,
		DeliveryLat:    deliveryLat,
		FailureReason:  s.FailureReason(),
		RetryCount:     s.RetryCount(),
		LastAttemptAt:  s.LastAttemptAt(),
		History:        history,
	}
}

// toDomain converts a database DTO to a shipment aggregate using
// RestoreShipment. The history slice must already be in sequence order.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	history := make([]shipment.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, shipment.HistoryEntry{
			Status: shipment.Status(entry.Status),
			Branch: entry.Branch,
			At:     entry.At,
			Reason: entry.Reason,
		})
	}

	var deliveryPoint *kernel.GeoPoint
	if dto.DeliveryLon != nil && dto.DeliveryLat != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DeliveryLon, *dto.DeliveryLat)
		if pointErr != nil {
			return nil, pointErr
		}
		deliveryPoint = &point
	}

	return shipment.RestoreShipment(
		id,
		dto.TrackingNumber,
		dto.Locality,
		dto.Recipient,
		dto.PackageDetail,
		shipment.Status(dto.Status),
		history,
		dto.ReceiverName,
		dto.ReceiverDoc,
		deliveryPoint,
		dto.FailureReason,
		dto.RetryCount,
		dto.LastAttemptAt,
	)
}
