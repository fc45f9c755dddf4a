package postgres_test

import (
	"context"
	"testing"
	"time"

	"dzdelivery/internal/adapters/out/postgres"
	"dzdelivery/internal/adapters/out/postgres/courierrepo"
	"dzdelivery/internal/adapters/out/postgres/demandrepo"
	"dzdelivery/internal/adapters/out/postgres/orderrepo"
	"dzdelivery/internal/adapters/out/postgres/pricingrepo"
	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/core/ports"
	"dzdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	sequence  int
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkTestSuite))
}

func (s *UnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusChangeDTO{},
		&courierrepo.CourierDTO{},
		&pricingrepo.ConfigDTO{},
		&pricingrepo.ZoneDTO{},
		&pricingrepo.TimeRuleDTO{},
		&pricingrepo.WeatherRuleDTO{},
		&pricingrepo.DemandRuleDTO{},
		&pricingrepo.CalculationDTO{},
		&demandrepo.SnapshotDTO{},
	)
	s.Require().NoError(err)

	s.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (s *UnitOfWorkTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	for _, table := range []string{
		"orders", "order_status_history", "couriers",
		"pricing_configs", "pricing_zones", "pricing_time_rules",
		"pricing_weather_rules", "pricing_demand_rules",
		"pricing_calculations", "demand_snapshots",
	} {
		err := s.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		s.Require().NoError(err)
	}
}

func (s *UnitOfWorkTestSuite) newOrder() *order.Order {
	pickup, err := kernel.NewGeoPoint(36.8920, 4.1250)
	s.Require().NoError(err)
	destination, err := kernel.NewGeoPoint(36.8869, 4.1222)
	s.Require().NoError(err)

	s.sequence++
	aggregate, err := order.NewOrder(
		order.GenerateNumber(time.Now(), s.sequence),
		kernel.NewUUID(),
		kernel.NewUUID(),
		700,
		250,
		pickup,
		destination,
		"Tigzirt centre",
		5,
		time.Now(),
	)
	s.Require().NoError(err)
	return aggregate
}

func (s *UnitOfWorkTestSuite) newDispatchableCourier() *courier.Courier {
	location, err := kernel.NewGeoPoint(36.8869, 4.1222)
	s.Require().NoError(err)

	aggregate, err := courier.NewCourier("Arezki", courier.VehicleMoto, location, time.Now())
	s.Require().NoError(err)
	aggregate.MarkVerified()
	aggregate.GoOnline()
	return aggregate
}

func (s *UnitOfWorkTestSuite) TestCommitPersistsOrderWithHistory() {
	ctx := context.Background()
	aggregate := s.newOrder()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	s.Require().NoError(uow.Commit(ctx))

	check := s.factory.Create()
	loaded, err := check.OrderRepository().Get(ctx, aggregate.ID())
	s.Require().NoError(err)
	s.Equal(aggregate.Number(), loaded.Number())
	s.Equal(order.StatusPending, loaded.Status())
	s.Equal(int64(950), loaded.Total())
	s.InDelta(36.8920, loaded.Pickup().Latitude(), 0.0001)

	history, err := check.OrderRepository().GetHistory(ctx, aggregate.ID())
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(order.StatusPending, history[0].Status)
}

func (s *UnitOfWorkTestSuite) TestRollbackDiscardsOrder() {
	ctx := context.Background()
	aggregate := s.newOrder()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	s.Require().NoError(uow.Rollback(ctx))

	_, err := s.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	var notFound *errs.ObjectNotFoundError
	s.Require().ErrorAs(err, &notFound)
}

func (s *UnitOfWorkTestSuite) TestGetByNumber() {
	ctx := context.Background()
	aggregate := s.newOrder()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	s.Require().NoError(uow.Commit(ctx))

	loaded, err := s.factory.Create().OrderRepository().GetByNumber(ctx, aggregate.Number())
	s.Require().NoError(err)
	s.True(loaded.ID().IsEqual(aggregate.ID()))
}

func (s *UnitOfWorkTestSuite) TestAddReportsDuplicateNumber() {
	ctx := context.Background()
	first := s.newOrder()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, first))
	s.Require().NoError(uow.Commit(ctx))

	// Rewind the sequence so the next order draws the same number.
	s.sequence--
	duplicate := s.newOrder()
	s.Require().Equal(first.Number(), duplicate.Number())

	err := s.factory.Create().OrderRepository().Add(ctx, duplicate)
	s.Require().ErrorIs(err, ports.ErrDuplicateOrderNumber)
}

func (s *UnitOfWorkTestSuite) TestUpdateGuardedDetectsConcurrentWriter() {
	ctx := context.Background()
	aggregate := s.newOrder()

	setup := s.factory.Create()
	s.Require().NoError(setup.Begin(ctx))
	s.Require().NoError(setup.OrderRepository().Add(ctx, aggregate))
	s.Require().NoError(setup.Commit(ctx))

	restaurant, err := actor.NewActor(actor.RoleRestaurant, aggregate.RestaurantID())
	s.Require().NoError(err)

	// Two workers load the same pending order.
	first, err := s.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	s.Require().NoError(err)
	second, err := s.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	s.Require().NoError(err)

	s.Require().NoError(first.ChangeStatus(restaurant, order.StatusConfirmed, "", "", time.Now()))
	s.Require().NoError(s.factory.Create().OrderRepository().UpdateGuarded(ctx, first, order.StatusPending))

	s.Require().NoError(second.ChangeStatus(restaurant, order.StatusConfirmed, "", "", time.Now()))
	err = s.factory.Create().OrderRepository().UpdateGuarded(ctx, second, order.StatusPending)
	s.Require().ErrorIs(err, ports.ErrPreconditionFailed)
}

func (s *UnitOfWorkTestSuite) TestCourierAcquireIsExclusive() {
	ctx := context.Background()
	aggregate := s.newDispatchableCourier()

	repo := s.factory.Create().CourierRepository()
	s.Require().NoError(repo.Add(ctx, aggregate))

	s.Require().NoError(repo.Acquire(ctx, aggregate.ID()))
	s.Require().ErrorIs(repo.Acquire(ctx, aggregate.ID()), ports.ErrPreconditionFailed)

	s.Require().NoError(repo.Release(ctx, aggregate.ID()))
	s.Require().NoError(repo.Acquire(ctx, aggregate.ID()))
}

func (s *UnitOfWorkTestSuite) TestGetAllDispatchableFiltersFlags() {
	ctx := context.Background()

	ready := s.newDispatchableCourier()
	offline := s.newDispatchableCourier()
	offline.GoOffline()

	repo := s.factory.Create().CourierRepository()
	s.Require().NoError(repo.Add(ctx, ready))
	s.Require().NoError(repo.Add(ctx, offline))

	couriers, err := repo.GetAllDispatchable(ctx)
	s.Require().NoError(err)
	s.Require().Len(couriers, 1)
	s.True(couriers[0].ID().IsEqual(ready.ID()))
}

func (s *UnitOfWorkTestSuite) TestPricingSeedIsIdempotent() {
	ctx := context.Background()

	s.Require().NoError(pricingrepo.Seed(ctx, s.db))
	s.Require().NoError(pricingrepo.Seed(ctx, s.db))

	repo := s.factory.Create().PricingRepository()

	cfg, err := repo.GetConfig(ctx)
	s.Require().NoError(err)
	s.Equal(pricing.DefaultConfig(), cfg)

	zones, err := repo.GetZones(ctx)
	s.Require().NoError(err)
	s.Len(zones, 4)

	timeRules, err := repo.GetTimeRules(ctx)
	s.Require().NoError(err)
	s.Len(timeRules, len(pricing.DefaultTimeRules()))

	weatherRules, err := repo.GetWeatherRules(ctx)
	s.Require().NoError(err)
	s.Len(weatherRules, len(pricing.DefaultWeatherRules()))

	demandRules, err := repo.GetDemandRules(ctx)
	s.Require().NoError(err)
	s.Len(demandRules, len(pricing.DefaultDemandRules()))
}

func (s *UnitOfWorkTestSuite) TestGetConfigDefaultsWhenUnseeded() {
	cfg, err := s.factory.Create().PricingRepository().GetConfig(context.Background())

	s.Require().NoError(err)
	s.Equal(pricing.DefaultConfig(), cfg)
}

func (s *UnitOfWorkTestSuite) TestSaveCalculationWithWarnings() {
	ctx := context.Background()

	quote := pricing.Quote{
		BasePrice:  250,
		DistanceKm: 5,
		Total:      250,
		Warnings:   []string{"demand data unavailable, no demand multiplier applied"},
	}
	calculation := pricing.NewCalculation(quote, nil, time.Now())

	s.Require().NoError(s.factory.Create().PricingRepository().SaveCalculation(ctx, calculation))

	var count int64
	s.Require().NoError(s.db.Raw("SELECT COUNT(*) FROM pricing_calculations").Scan(&count).Error)
	s.Equal(int64(1), count)
}

func (s *UnitOfWorkTestSuite) TestDemandCountsAndSnapshot() {
	ctx := context.Background()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, s.newOrder()))
	s.Require().NoError(uow.OrderRepository().Add(ctx, s.newOrder()))
	s.Require().NoError(uow.CourierRepository().Add(ctx, s.newDispatchableCourier()))
	s.Require().NoError(uow.Commit(ctx))

	repo := s.factory.Create().DemandRepository()

	activeOrders, err := repo.CountActiveOrders(ctx)
	s.Require().NoError(err)
	s.Equal(2, activeOrders)

	availableCouriers, err := repo.CountAvailableCouriers(ctx)
	s.Require().NoError(err)
	s.Equal(1, availableCouriers)

	snapshot := demand.NewSnapshot(time.Now(), activeOrders, availableCouriers)
	s.Require().NoError(repo.SaveSnapshot(ctx, snapshot))

	var count int64
	s.Require().NoError(s.db.Raw("SELECT COUNT(*) FROM demand_snapshots").Scan(&count).Error)
	s.Equal(int64(1), count)
}

func (s *UnitOfWorkTestSuite) TestNextDailySequence() {
	ctx := context.Background()

	repo := s.factory.Create().OrderRepository()

	sequence, err := repo.NextDailySequence(ctx, time.Now())
	s.Require().NoError(err)
	s.Equal(1, sequence)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, s.newOrder()))
	s.Require().NoError(uow.Commit(ctx))

	sequence, err = repo.NextDailySequence(ctx, time.Now())
	s.Require().NoError(err)
	s.Equal(2, sequence)
}
