package commands_test

import (
	"errors"
	"strings"
	"testing"

	"reparto/internal/core/application/usecases/commands"
	"reparto/internal/core/domain/model/shipment"
	"reparto/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterShipmentCommand("Villa Crespo", "Ana Juarez", "2 boxes", "central")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("ExistsTrackingNumber", ctx, mock.AnythingOfType("string")).Return(false, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterShipmentCommandHandler(factory)
	s, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, shipment.Pending, s.Status())
	require.True(t, strings.HasPrefix(s.TrackingNumber(), shipment.TrackingNumberPrefix))
	require.Len(t, s.History(), 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterShipmentCommandHandler_Handle_RetriesOnCollision(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterShipmentCommand("Villa Crespo", "Ana Juarez", "2 boxes", "central")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("ExistsTrackingNumber", ctx, mock.AnythingOfType("string")).Return(true, nil).Once(),
		repo.On("ExistsTrackingNumber", ctx, mock.AnythingOfType("string")).Return(false, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterShipmentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRegisterShipmentCommandHandler_Handle_ExhaustsAttempts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterShipmentCommand("Villa Crespo", "Ana Juarez", "2 boxes", "central")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	repo.On("ExistsTrackingNumber", ctx, mock.AnythingOfType("string")).Return(true, nil).Times(5)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterShipmentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	repo.AssertExpectations(t)
}

func TestRegisterShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewRegisterShipmentCommandHandler(new(MockShipmentUoWFactory))
	_, err := h.Handle(t.Context(), commands.RegisterShipmentCommand{})
	require.ErrorIs(t, err, commands.ErrRegisterShipmentCommandIsNotConstructed)
}

func TestRegisterShipmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterShipmentCommand("Villa Crespo", "Ana Juarez", "2 boxes", "central")
	require.NoError(t, err)

	uow := new(MockShipmentUoW)
	factory := new(MockShipmentUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewRegisterShipmentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
