package queries_test

import (
	"context"
	"testing"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	clock = kernel.FixedClock{At: now}
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByProductID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByItemID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockMarginConfigRepository struct{ mock.Mock }

func (m *MockMarginConfigRepository) Load(ctx context.Context) (services.MarginConfig, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.MarginConfig), args.Bool(1), args.Error(2)
}

func (m *MockMarginConfigRepository) Save(ctx context.Context, cfg services.MarginConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

type MockMarginConfigCache struct{ mock.Mock }

func (m *MockMarginConfigCache) Get(ctx context.Context) (services.MarginConfig, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.MarginConfig), args.Bool(1), args.Error(2)
}

func (m *MockMarginConfigCache) Set(ctx context.Context, cfg services.MarginConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

// fixedMargins always returns cfg.
type fixedMargins struct{ cfg services.MarginConfig }

func (f fixedMargins) MarginConfig(context.Context) (services.MarginConfig, error) {
	return f.cfg, nil
}

func newActor(t *testing.T, role kernel.Role, party *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, role.String()+"@example.com", party)
	require.NoError(t, err)
	return a
}

// quotedOrder returns an order submitted to the manufacturer with one quoted
// product of 150 pieces: unit 10, sample fee 25, air 300, boat 120, 30
// production days, boat shipping.
func quotedOrder(t *testing.T, creator kernel.UUID, clientID, manufacturerID *kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewDraft(kernel.NewUUID(), "Spring totes", creator, clientID, manufacturerID, now)
	require.NoError(t, err)
	require.NoError(t, o.ReplaceContents("Spring totes", clientID, manufacturerID, []order.ProductSpec{{
		ProductRef: "TOTE-01",
		Items: []order.ItemSpec{
			{Label: "Natural", Quantity: 100},
			{Label: "Black", Quantity: 50},
		},
	}}))
	_, err = o.TransitionTo(order.SubmittedToManufacturer, creator, now)
	require.NoError(t, err)

	p := o.Products()[0]
	days := 30
	require.NoError(t, o.UpdateQuote(p.ID(), order.Quote{
		Costs: order.Costs{
			UnitPrice: decimal.NewFromInt(10),
			SampleFee: decimal.NewFromInt(25),
			AirPrice:  decimal.NewFromInt(300),
			BoatPrice: decimal.NewFromInt(120),
		},
		Production: order.Production{Days: &days},
	}))
	require.NoError(t, o.SelectShippingMethod(p.ID(), order.ShippingBoat))
	return o
}
