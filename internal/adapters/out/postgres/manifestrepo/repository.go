package manifestrepo

import (
	"context"
	"errors"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormManifestRepository implements ManifestRepository using GORM.
type GormManifestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormManifestRepository creates a new GORM manifest repository.
func NewGormManifestRepository(db *gorm.DB, tracker aggregateTracker) *GormManifestRepository {
	return &GormManifestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new sheet with its creation movement.
func (r *GormManifestRepository) Add(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing sheet, upserting any movement entries appended
// since it was loaded.
func (r *GormManifestRepository) Update(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a sheet by ID with its movement log in order.
func (r *GormManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ManifestDTO
	err := r.withMovements(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manifest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindActiveByShipment retrieves all InDelivery sheets referencing the given
// shipment, excluding the sheet with excludeID. The uuid[] membership test
// runs entirely in the database.
func (r *GormManifestRepository) FindActiveByShipment(
	ctx context.Context, shipmentID, excludeID kernel.UUID,
) ([]*manifest.Manifest, error) {
	if err := errors.Join(shipmentID.Validate(), excludeID.Validate()); err != nil {
		return nil, err
	}

	var dtos []ManifestDTO
	err := r.withMovements(ctx).
		Where("status = ? AND id != ? AND ? = ANY(shipment_ids)",
			int(manifest.InDelivery), excludeID.Bytes(), shipmentID.String()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainList(dtos)
}

// FindExpired retrieves all InDelivery sheets whose operating date falls
// inside the given window.
func (r *GormManifestRepository) FindExpired(
	ctx context.Context, window kernel.DayWindow,
) ([]*manifest.Manifest, error) {
	var dtos []ManifestDTO
	err := r.withMovements(ctx).
		Where("status = ? AND operating_date >= ? AND operating_date < ?",
			int(manifest.InDelivery), window.From, window.To).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainList(dtos)
}

func (r *GormManifestRepository) toDomainList(dtos []ManifestDTO) ([]*manifest.Manifest, error) {
	manifests := make([]*manifest.Manifest, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}

	return manifests, nil
}

func (r *GormManifestRepository) withMovements(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Movements", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence")
	})
}
