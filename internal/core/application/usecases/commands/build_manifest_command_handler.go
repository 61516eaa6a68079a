package commands

import (
	"context"
	"time"

	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/ports"
)

// BuildManifestResult carries the persisted preliminary sheet together with
// its candidate shipments, ready for the confirmation screen.
type BuildManifestResult struct {
	Manifest   *manifest.Manifest
	Candidates []*shipment.Shipment
}

// BuildManifestCommandHandler assembles preliminary delivery sheets.
// It collects the route's deliverable shipments, resolves the crew, and
// persists the sheet in Pending status so it has an identity for later
// confirmation. No shipment state is mutated at this stage.
type BuildManifestCommandHandler struct {
	uowFactory UoWFactory
	routes     ports.RouteCatalog
}

// NewBuildManifestCommandHandler creates a handler for building preliminary sheets.
func NewBuildManifestCommandHandler(
	uowFactory UoWFactory, routes ports.RouteCatalog,
) BuildManifestCommandHandler {
	return BuildManifestCommandHandler{
		uowFactory: uowFactory,
		routes:     routes,
	}
}

// Handle processes the build command. It looks up the route, finds shipments
// in Pending or Rescheduled status destined for the route's localities, and
// persists a preliminary sheet referencing them.
func (h BuildManifestCommandHandler) Handle(
	ctx context.Context, cmd BuildManifestCommand,
) (BuildManifestResult, error) {
	if err := cmd.Validate(); err != nil {
		return BuildManifestResult{}, err
	}

	route, err := h.routes.Route(ctx, cmd.RouteID())
	if err != nil {
		return BuildManifestResult{}, err
	}

	driverID := route.DefaultDriverID
	if cmd.DriverID() != nil {
		driverID = *cmd.DriverID()
	}
	vehicleID := route.DefaultVehicleID
	if cmd.VehicleID() != nil {
		vehicleID = *cmd.VehicleID()
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return BuildManifestResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := uow.ShipmentRepository().FindDeliverable(ctx, route.Localities)
	if err != nil {
		return BuildManifestResult{}, err
	}

	candidateIDs := make([]kernel.UUID, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.ID())
	}

	now := time.Now().UTC()
	m, err := manifest.NewManifest(
		kernel.NewUUID(),
		now,
		route.ID,
		driverID,
		vehicleID,
		candidateIDs,
		cmd.Notes(),
		cmd.Actor(),
		now,
	)
	if err != nil {
		return BuildManifestResult{}, err
	}

	if err = uow.ManifestRepository().Add(ctx, m); err != nil {
		return BuildManifestResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BuildManifestResult{}, err
	}

	return BuildManifestResult{Manifest: m, Candidates: candidates}, nil
}
