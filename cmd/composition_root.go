package cmd

import (
	"log/slog"

	"reparto/internal/adapters/in/http"
	"reparto/internal/adapters/out/kafkanotifier"
	"reparto/internal/adapters/out/postgres"
	"reparto/internal/adapters/out/postgres/routecatalog"
	"reparto/internal/core/application/usecases/commands"
	"reparto/internal/core/application/usecases/queries"
	"reparto/internal/core/domain/services"
	"reparto/internal/core/ports"
	"reparto/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier: kafkanotifier.NewKafkaNotifier(
			[]string{config.KafkaHost},
			config.KafkaShipmentEventsTopic,
			logger,
		),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateRegisterShipmentCommandHandler() commands.RegisterShipmentCommandHandler {
	return commands.NewRegisterShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateBuildManifestCommandHandler() commands.BuildManifestCommandHandler {
	return commands.NewBuildManifestCommandHandler(
		c.uoWFactory(),
		routecatalog.NewGormRouteCatalog(c.gormDB),
	)
}

func (c *CompositionRoot) CreateConfirmManifestCommandHandler() commands.ConfirmManifestCommandHandler {
	return commands.NewConfirmManifestCommandHandler(c.uoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCloseManifestCommandHandler() commands.CloseManifestCommandHandler {
	return commands.NewCloseManifestCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.shipmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkDeliveryFailureCommandHandler() commands.MarkDeliveryFailureCommandHandler {
	return commands.NewMarkDeliveryFailureCommandHandler(
		c.shipmentUoWFactory(),
		services.NewFailurePolicy(),
	)
}

func (c *CompositionRoot) CreateExpireManifestsCommandHandler() commands.ExpireManifestsCommandHandler {
	return commands.NewExpireManifestsCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateGetActiveManifestsQueryHandler() queries.GetActiveManifestsQueryHandler {
	return queries.NewGetActiveManifestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentByTrackingNumberQueryHandler() queries.GetShipmentByTrackingNumberQueryHandler {
	return queries.NewGetShipmentByTrackingNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateRegisterShipmentCommandHandler(),
		c.CreateBuildManifestCommandHandler(),
		c.CreateConfirmManifestCommandHandler(),
		c.CreateCloseManifestCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateMarkDeliveryFailureCommandHandler(),
		c.CreateGetActiveManifestsQueryHandler(),
		c.CreateGetShipmentByTrackingNumberQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireManifestsCommandHandler(),
		c.config.ExpirySchedule,
		c.logger,
	)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
