package queries_test

import (
	"context"
	"testing"
	"time"

	"dzdelivery/internal/adapters/out/postgres/courierrepo"
	"dzdelivery/internal/adapters/out/postgres/demandrepo"
	"dzdelivery/internal/adapters/out/postgres/orderrepo"
	"dzdelivery/internal/core/application/usecases/queries"
	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
}

func TestQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueryHandlersTestSuite))
}

func (s *QueryHandlersTestSuite) SetupSuite() {
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
		&demandrepo.SnapshotDTO{},
	)
	s.Require().NoError(err)
}

func (s *QueryHandlersTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *QueryHandlersTestSuite) SetupTest() {
	for _, table := range []string{"orders", "order_status_history", "couriers", "demand_snapshots"} {
		err := s.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		s.Require().NoError(err)
	}
}

func (s *QueryHandlersTestSuite) seedOrder(number string, status order.Status) *order.Order {
	pickup, err := kernel.NewGeoPoint(36.8920, 4.1250)
	s.Require().NoError(err)
	destination, err := kernel.NewGeoPoint(36.8869, 4.1222)
	s.Require().NoError(err)

	aggregate, err := order.NewOrder(
		number,
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

	repo := orderrepo.NewGormOrderRepository(s.db, noopTracker{})
	s.Require().NoError(repo.Add(context.Background(), aggregate))

	if status == order.StatusConfirmed {
		accepting, actorErr := actor.NewActor(actor.RoleCourier, kernel.NewUUID())
		s.Require().NoError(actorErr)
		s.Require().NoError(aggregate.ChangeStatus(accepting, status, "", "", time.Now()))
		s.Require().NoError(repo.Update(context.Background(), aggregate))
		s.Require().NoError(repo.AppendHistory(context.Background(), *aggregate.LastChange()))
	}

	return aggregate
}

func (s *QueryHandlersTestSuite) seedCourier(online bool) {
	location, err := kernel.NewGeoPoint(36.8869, 4.1222)
	s.Require().NoError(err)

	aggregate, err := courier.NewCourier("Arezki", courier.VehicleMoto, location, time.Now())
	s.Require().NoError(err)
	aggregate.MarkVerified()
	if online {
		aggregate.GoOnline()
	}

	repo := courierrepo.NewGormCourierRepository(s.db, noopTracker{})
	s.Require().NoError(repo.Add(context.Background(), aggregate))
}

func (s *QueryHandlersTestSuite) seedSnapshot(at time.Time, activeOrders, availableCouriers int) {
	repo := demandrepo.NewGormDemandRepository(s.db)
	s.Require().NoError(repo.SaveSnapshot(context.Background(), demand.NewSnapshot(at, activeOrders, availableCouriers)))
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func (s *QueryHandlersTestSuite) TestGetOrder_ByNumberWithHistory() {
	ctx := context.Background()
	aggregate := s.seedOrder("DZ-20250615-001", order.StatusConfirmed)

	handler := queries.NewGetOrderQueryHandler(s.db)
	query, err := queries.NewGetOrderQueryByNumber("DZ-20250615-001")
	s.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	s.Require().NoError(err)

	s.True(response.ID.IsEqual(aggregate.ID()))
	s.Equal(order.StatusConfirmed, response.Status)
	s.Equal(int64(950), response.Total)
	s.Require().Len(response.History, 2)
	s.Equal(order.StatusPending, response.History[0].Status)
	s.Equal(order.StatusConfirmed, response.History[1].Status)
}

func (s *QueryHandlersTestSuite) TestGetOrder_ByID() {
	ctx := context.Background()
	aggregate := s.seedOrder("DZ-20250615-002", order.StatusPending)

	handler := queries.NewGetOrderQueryHandler(s.db)
	query, err := queries.NewGetOrderQueryByID(aggregate.ID())
	s.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.Equal("DZ-20250615-002", response.Number)
}

func (s *QueryHandlersTestSuite) TestGetOrder_NotFound() {
	handler := queries.NewGetOrderQueryHandler(s.db)
	query, err := queries.NewGetOrderQueryByNumber("DZ-20250615-999")
	s.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	var notFound *errs.ObjectNotFoundError
	s.Require().ErrorAs(err, &notFound)
}

func (s *QueryHandlersTestSuite) TestGetCurrentDemand_CountsAndRecordsSample() {
	ctx := context.Background()
	s.seedOrder("DZ-20250615-003", order.StatusPending)
	s.seedOrder("DZ-20250615-004", order.StatusConfirmed)
	s.seedCourier(true)
	s.seedCourier(false)

	handler := queries.NewGetCurrentDemandQueryHandler(s.db, testLogger())
	response, err := handler.Handle(ctx, queries.NewGetCurrentDemandQuery())

	s.Require().NoError(err)
	s.Equal(2, response.ActiveOrders)
	s.Equal(1, response.AvailableCouriers)
	s.InDelta(2.0, response.Ratio, 0.001)
	s.Equal(demand.LevelHigh, response.Level)

	var samples int64
	s.Require().NoError(s.db.Raw("SELECT COUNT(*) FROM demand_snapshots").Scan(&samples).Error)
	s.Equal(int64(1), samples)
}

func (s *QueryHandlersTestSuite) TestGetCurrentDemand_NoSupplySentinel() {
	ctx := context.Background()
	s.seedOrder("DZ-20250615-005", order.StatusPending)

	handler := queries.NewGetCurrentDemandQueryHandler(s.db, testLogger())
	response, err := handler.Handle(ctx, queries.NewGetCurrentDemandQuery())

	s.Require().NoError(err)
	s.InDelta(demand.RatioNoSupply, response.Ratio, 0.001)
	s.Equal(demand.LevelCritical, response.Level)
}

func (s *QueryHandlersTestSuite) TestDemandTrends_GroupsByHourAndWeekday() {
	ctx := context.Background()
	now := time.Now()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	evening := noon.Add(7 * time.Hour)

	s.seedSnapshot(noon, 2, 2)
	s.seedSnapshot(noon.Add(10*time.Minute), 4, 2)
	s.seedSnapshot(evening, 6, 2)

	query, err := queries.NewDemandTrendsQuery(queries.TrendWindowWeek)
	s.Require().NoError(err)

	response, err := queries.NewDemandTrendsQueryHandler(s.db).Handle(ctx, query)
	s.Require().NoError(err)

	s.Require().Len(response.Hourly, 2)
	s.Equal(12, response.Hourly[0].Hour)
	s.InDelta(1.5, response.Hourly[0].AvgRatio, 0.001)
	s.Equal(2, response.Hourly[0].Samples)
	s.Equal(19, response.Hourly[1].Hour)
	s.InDelta(3.0, response.Hourly[1].AvgRatio, 0.001)

	s.NotEmpty(response.Weekly)
}

func (s *QueryHandlersTestSuite) TestPeakHours_RanksByRatio() {
	ctx := context.Background()
	now := time.Now()
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	s.seedSnapshot(base.Add(12*time.Hour), 1, 2)
	s.seedSnapshot(base.Add(19*time.Hour), 6, 2)
	s.seedSnapshot(base.Add(20*time.Hour), 4, 2)

	peaks, err := queries.NewPeakHoursQueryHandler(s.db).Handle(ctx, queries.NewPeakHoursQuery())
	s.Require().NoError(err)

	s.Require().Len(peaks, 3)
	s.Equal(19, peaks[0].Hour)
	s.InDelta(3.0, peaks[0].AvgRatio, 0.001)
	s.Equal(20, peaks[1].Hour)
	s.Equal(12, peaks[2].Hour)
}

func (s *QueryHandlersTestSuite) TestPredictDemand_SameSlotAverage() {
	ctx := context.Background()

	slot := time.Now().Add(-7 * 24 * time.Hour).Truncate(time.Hour)
	s.seedSnapshot(slot, 4, 2)
	s.seedSnapshot(slot.Add(20*time.Minute), 6, 2)

	query, err := queries.NewPredictDemandQuery(slot.AddDate(0, 0, 7))
	s.Require().NoError(err)

	response, err := queries.NewPredictDemandQueryHandler(s.db).Handle(ctx, query)
	s.Require().NoError(err)

	s.Equal(2, response.Samples)
	s.InDelta(2.5, response.PredictedRatio, 0.001)
	s.Equal(demand.LevelHigh, response.Level)
}

func (s *QueryHandlersTestSuite) TestPredictDemand_DefaultsWithoutHistory() {
	query, err := queries.NewPredictDemandQuery(time.Now())
	s.Require().NoError(err)

	response, err := queries.NewPredictDemandQueryHandler(s.db).Handle(context.Background(), query)
	s.Require().NoError(err)

	s.Equal(0, response.Samples)
	s.InDelta(1.0, response.PredictedRatio, 0.001)
	s.Equal(demand.LevelModerate, response.Level)
}
