package commands_test

import (
	"context"
	"testing"
	"time"

	"dzdelivery/internal/core/application/usecases/commands"
	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// dispatchableCourier builds a courier cleared for dispatch near Tigzirt.
func dispatchableCourier(t *testing.T) *courier.Courier {
	t.Helper()

	location, err := kernel.NewGeoPoint(36.8869, 4.1222)
	require.NoError(t, err)

	c, err := courier.NewCourier("Arezki", courier.VehicleMoto, location, time.Now())
	require.NoError(t, err)
	c.MarkVerified()
	c.GoOnline()

	return c
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateGuarded(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AppendHistory(ctx context.Context, change order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

func (m *MockOrderRepository) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) Acquire(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourierRepository) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) GetConfig(ctx context.Context) (pricing.Config, error) {
	args := m.Called(ctx)
	return args.Get(0).(pricing.Config), args.Error(1)
}

func (m *MockPricingRepository) GetZones(ctx context.Context) ([]pricing.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Zone), args.Error(1)
}

func (m *MockPricingRepository) GetTimeRules(ctx context.Context) ([]pricing.TimeRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.TimeRule), args.Error(1)
}

func (m *MockPricingRepository) GetWeatherRules(ctx context.Context) ([]pricing.WeatherRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.WeatherRule), args.Error(1)
}

func (m *MockPricingRepository) GetDemandRules(ctx context.Context) ([]pricing.DemandRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.DemandRule), args.Error(1)
}

func (m *MockPricingRepository) SaveCalculation(ctx context.Context, calculation pricing.Calculation) error {
	args := m.Called(ctx, calculation)
	return args.Error(0)
}

type MockDemandRepository struct{ mock.Mock }

func (m *MockDemandRepository) CountActiveOrders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDemandRepository) CountAvailableCouriers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDemandRepository) SaveSnapshot(ctx context.Context, snapshot demand.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, o *order.Order, change order.StatusChange) error {
	args := m.Called(ctx, o, change)
	return args.Error(0)
}

func (m *MockNotifier) NotifyNewDelivery(ctx context.Context, o *order.Order, courierIDs []kernel.UUID) error {
	args := m.Called(ctx, o, courierIDs)
	return args.Error(0)
}

type MockWeatherProvider struct{ mock.Mock }

func (m *MockWeatherProvider) Current(ctx context.Context, at kernel.GeoPoint) (pricing.Condition, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(pricing.Condition), args.Error(1)
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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) PricingRepository() ports.PricingRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingRepository)
}

func (m *MockUoW) DemandRepository() ports.DemandRepository {
	args := m.Called()
	return args.Get(0).(ports.DemandRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDemandUoWFactory struct{ mock.Mock }

func (m *MockDemandUoWFactory) Create() commands.DemandUoW {
	args := m.Called()
	return args.Get(0).(commands.DemandUoW)
}
