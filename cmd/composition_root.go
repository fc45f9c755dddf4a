package cmd

import (
	"log/slog"

	"dzdelivery/internal/adapters/out/notify"
	"dzdelivery/internal/adapters/out/postgres"
	"dzdelivery/internal/adapters/out/weather"
	"dzdelivery/internal/core/application/usecases/commands"
	"dzdelivery/internal/core/application/usecases/queries"
	"dzdelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Everything hangs
// off one gorm pool, one redis client, and one slog logger.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	weather    ports.WeatherProvider
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot assembles the object graph from the shared
// infrastructure handles.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		weather:    weather.NewCachedSimulatedProvider(redisClient, logger),
		notifier:   notify.NewLogNotifier(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.weather, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSampleDemandCommandHandler() commands.SampleDemandCommandHandler {
	var f commands.DemandUoWFactory = FuncDemandUoWFactory(func() commands.DemandUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSampleDemandCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCalculatePriceQueryHandler() queries.CalculatePriceQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewCalculatePriceQueryHandler(
		uow.PricingRepository(),
		uow.DemandRepository(),
		c.weather,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetCurrentDemandQueryHandler() queries.GetCurrentDemandQueryHandler {
	return queries.NewGetCurrentDemandQueryHandler(c.gormDB, c.logger)
}

func (c *CompositionRoot) CreateDemandTrendsQueryHandler() queries.DemandTrendsQueryHandler {
	return queries.NewDemandTrendsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePeakHoursQueryHandler() queries.PeakHoursQueryHandler {
	return queries.NewPeakHoursQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePredictDemandQueryHandler() queries.PredictDemandQueryHandler {
	return queries.NewPredictDemandQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDemandUoWFactory func() commands.DemandUoW

func (f FuncDemandUoWFactory) Create() commands.DemandUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
