package commands_test

import (
	"context"

	"reparto/internal/core/application/usecases/commands"
	"reparto/internal/core/domain/model/kernel"
	"reparto/internal/core/domain/model/manifest"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(
	ctx context.Context, trackingNumber string,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindDeliverable(
	ctx context.Context, localities []string,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, localities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ExistsTrackingNumber(
	ctx context.Context, trackingNumber string,
) (bool, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Bool(0), args.Error(1)
}

type MockManifestRepository struct{ mock.Mock }

func (m *MockManifestRepository) Add(ctx context.Context, a *manifest.Manifest) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockManifestRepository) Update(ctx context.Context, a *manifest.Manifest) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) FindActiveByShipment(
	ctx context.Context, shipmentID, excludeID kernel.UUID,
) ([]*manifest.Manifest, error) {
	args := m.Called(ctx, shipmentID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*manifest.Manifest), args.Error(1)
}

func (m *MockManifestRepository) FindExpired(
	ctx context.Context, window kernel.DayWindow,
) ([]*manifest.Manifest, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*manifest.Manifest), args.Error(1)
}

type MockManifestSequence struct{ mock.Mock }

func (m *MockManifestSequence) Next(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) ManifestRepository() ports.ManifestRepository {
	args := m.Called()
	return args.Get(0).(ports.ManifestRepository)
}

func (m *MockUoW) ManifestSequence() ports.ManifestSequence {
	args := m.Called()
	return args.Get(0).(ports.ManifestSequence)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRouteCatalog struct{ mock.Mock }

func (m *MockRouteCatalog) Route(ctx context.Context, id kernel.UUID) (ports.Route, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Route), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) ShipmentInDelivery(ctx context.Context, s *shipment.Shipment, manifestNumber string) {
	m.Called(ctx, s, manifestNumber)
}

func (m *MockNotifier) ShipmentDelivered(ctx context.Context, s *shipment.Shipment) {
	m.Called(ctx, s)
}
