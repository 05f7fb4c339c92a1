package cmd

import (
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/retry"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	tracker    ports.PositionTracker
	logger     *slog.Logger

	retrier    *retry.Retrier
	engine     services.MatchingEngine
	calculator services.EarningsCalculator

	updateLocationHandler *commands.UpdateLocationCommandHandler
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	tracker ports.PositionTracker,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	calculator, err := services.NewEarningsCalculator(config.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	retryConfig := retry.DefaultConfig()
	retryConfig.OnRetry = metrics.RecordConflictRetry

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		tracker:    tracker,
		logger:     logger,
		retrier:    retry.New(retryConfig, logger),
		engine:     services.NewMatchingEngine(),
		calculator: calculator,
	}
	c.updateLocationHandler = commands.NewUpdateLocationCommandHandler(
		c.fullUoWFactory(), notifier, tracker, logger, commands.DefaultPingTimeout)
	return c, nil
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fleetUoWFactory() commands.FleetUoWFactory {
	return FuncFleetUoWFactory(func() commands.FleetUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.fullUoWFactory(), c.retrier, c.config.DefaultCurrency)
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	return commands.NewWithdrawBidCommandHandler(c.fullUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(c.requestUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.fullUoWFactory(), c.retrier)
}

// UpdateLocationCommandHandler is shared so shutdown can wait for pings in flight.
func (c *CompositionRoot) UpdateLocationCommandHandler() *commands.UpdateLocationCommandHandler {
	return c.updateLocationHandler
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.fullUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.fullUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateAssignJobCommandHandler() commands.AssignJobCommandHandler {
	return commands.NewAssignJobCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateRateJobCommandHandler() commands.RateJobCommandHandler {
	return commands.NewRateJobCommandHandler(c.fullUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateRegisterTransporterCommandHandler() commands.RegisterTransporterCommandHandler {
	return commands.NewRegisterTransporterCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateVerifyTransporterCommandHandler() commands.VerifyTransporterCommandHandler {
	return commands.NewVerifyTransporterCommandHandler(c.fleetUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateAddVehicleCommandHandler() commands.AddVehicleCommandHandler {
	return commands.NewAddVehicleCommandHandler(c.fleetUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateAddDriverCommandHandler() commands.AddDriverCommandHandler {
	return commands.NewAddDriverCommandHandler(c.fleetUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateRemoveVehicleCommandHandler() commands.RemoveVehicleCommandHandler {
	return commands.NewRemoveVehicleCommandHandler(c.fleetUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateRemoveDriverCommandHandler() commands.RemoveDriverCommandHandler {
	return commands.NewRemoveDriverCommandHandler(c.fleetUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(postgres.NewRequestReader(c.gormDB), postgres.NewTransporterReader(c.gormDB))
}

func (c *CompositionRoot) CreateGetNearbyRequestsQueryHandler() queries.GetNearbyRequestsQueryHandler {
	return queries.NewGetNearbyRequestsQueryHandler(
		postgres.NewTransporterReader(c.gormDB),
		postgres.NewRequestReader(c.gormDB),
		c.engine,
		c.config.MaxServiceRadiusKm,
	)
}

func (c *CompositionRoot) CreateGetCandidateTransportersQueryHandler() queries.GetCandidateTransportersQueryHandler {
	return queries.NewGetCandidateTransportersQueryHandler(
		postgres.NewRequestReader(c.gormDB),
		postgres.NewTransporterReader(c.gormDB),
		c.engine,
		c.config.MaxServiceRadiusKm,
	)
}

func (c *CompositionRoot) CreateGetEarningsReportQueryHandler() queries.GetEarningsReportQueryHandler {
	return queries.NewGetEarningsReportQueryHandler(
		postgres.NewTransporterReader(c.gormDB),
		postgres.NewRequestReader(c.gormDB),
		c.calculator,
	)
}

func (c *CompositionRoot) CreateGetLastPositionQueryHandler() queries.GetLastPositionQueryHandler {
	return queries.NewGetLastPositionQueryHandler(
		postgres.NewRequestReader(c.gormDB),
		postgres.NewTransporterReader(c.gormDB),
		c.tracker,
	)
}

// HTTPHandlers wires every use case into the HTTP server.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateRequest:       c.CreateCreateRequestCommandHandler(),
		SubmitBid:           c.CreateSubmitBidCommandHandler(),
		WithdrawBid:         c.CreateWithdrawBidCommandHandler(),
		AcceptBid:           c.CreateAcceptBidCommandHandler(),
		StartTransit:        c.CreateStartTransitCommandHandler(),
		UpdateLocation:      c.UpdateLocationCommandHandler(),
		CompleteDelivery:    c.CreateCompleteDeliveryCommandHandler(),
		CancelRequest:       c.CreateCancelRequestCommandHandler(),
		AssignJob:           c.CreateAssignJobCommandHandler(),
		RateJob:             c.CreateRateJobCommandHandler(),
		RegisterTransporter: c.CreateRegisterTransporterCommandHandler(),
		VerifyTransporter:   c.CreateVerifyTransporterCommandHandler(),
		AddVehicle:          c.CreateAddVehicleCommandHandler(),
		AddDriver:           c.CreateAddDriverCommandHandler(),
		RemoveVehicle:       c.CreateRemoveVehicleCommandHandler(),
		RemoveDriver:        c.CreateRemoveDriverCommandHandler(),

		GetRequest:              c.CreateGetRequestQueryHandler(),
		GetNearbyRequests:       c.CreateGetNearbyRequestsQueryHandler(),
		GetCandidateTransporter: c.CreateGetCandidateTransportersQueryHandler(),
		GetEarningsReport:       c.CreateGetEarningsReportQueryHandler(),
		GetLastPosition:         c.CreateGetLastPositionQueryHandler(),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.HTTPHandlers(), httpadapter.ServerConfig{
		DefaultCurrency:        c.config.DefaultCurrency,
		DefaultServiceRadiusKm: c.config.DefaultServiceRadiusKm,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(c.CreateRelayOutboxCommandHandler(), jobs.OutboxRelayConfig{
		Schedule:  c.config.OutboxRelaySchedule,
		BatchSize: c.config.OutboxBatchSize,
	}, c.logger)
	return jobs.NewJobManager(relay)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
