package routecatalog

import (
	"context"
	"errors"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/ports"
	"reparto/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.RouteCatalog = &GormRouteCatalog{}

// GormRouteCatalog implements ports.RouteCatalog over the local routes table.
type GormRouteCatalog struct {
	db *gorm.DB
}

// NewGormRouteCatalog creates a catalog bound to the given connection.
func NewGormRouteCatalog(db *gorm.DB) *GormRouteCatalog {
	return &GormRouteCatalog{db: db}
}

// Route returns the route with the given ID.
func (c *GormRouteCatalog) Route(ctx context.Context, id kernel.UUID) (ports.Route, error) {
	var dto RouteDTO

	result := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ports.Route{}, errs.NewObjectNotFoundError("routeID", id)
		}
		return ports.Route{}, result.Error
	}

	return toRoute(dto)
}
