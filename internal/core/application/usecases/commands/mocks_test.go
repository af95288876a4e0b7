package commands_test

import (
	"context"
	"testing"
	"time"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/notification"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	clock = kernel.FixedClock{At: now}
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
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

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Record(ctx context.Context, e *audit.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkPublished(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockOrderDeleter struct{ mock.Mock }

func (m *MockOrderDeleter) Delete(ctx context.Context, id kernel.UUID) (ports.DeleteReport, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.DeleteReport), args.Error(1)
}

type MockMessagePublisher struct{ mock.Mock }

func (m *MockMessagePublisher) Publish(ctx context.Context, msgs ...ports.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Upload(ctx context.Context, file ports.Upload) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

func (m *MockOrderUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeleteOrderUoW struct{ mock.Mock }

func (m *MockDeleteOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeleteOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeleteOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeleteOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDeleteOrderUoW) OrderDeleter() ports.OrderDeleter {
	args := m.Called()
	return args.Get(0).(ports.OrderDeleter)
}

type MockDeleteOrderUoWFactory struct{ mock.Mock }

func (m *MockDeleteOrderUoWFactory) Create() commands.DeleteOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.DeleteOrderUoW)
}

type MockNotificationUoW struct{ mock.Mock }

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

// fixture holds the parties of a test order.
type fixture struct {
	clientID       kernel.UUID
	manufacturerID kernel.UUID
	approver       kernel.Actor
	creator        kernel.Actor
	admin          kernel.Actor
	superAdmin     kernel.Actor
	manufacturer   kernel.Actor
	client         kernel.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{clientID: kernel.NewUUID(), manufacturerID: kernel.NewUUID()}
	f.approver = newActor(t, kernel.OrderApprover, nil)
	f.creator = newActor(t, kernel.OrderCreator, nil)
	f.admin = newActor(t, kernel.Admin, nil)
	f.superAdmin = newActor(t, kernel.SuperAdmin, nil)
	f.manufacturer = newActor(t, kernel.Manufacturer, &f.manufacturerID)
	f.client = newActor(t, kernel.Client, &f.clientID)
	return f
}

func newActor(t *testing.T, role kernel.Role, party *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, role.String()+"@example.com", party)
	require.NoError(t, err)
	return a
}

// draft returns a draft created by f.creator with one product of two items.
// sampleNotes decides whether submission asks for a sample.
func (f fixture) draft(t *testing.T, sampleNotes string) *order.Order {
	t.Helper()
	o, err := order.NewDraft(kernel.NewUUID(), "Spring totes", f.creator.ID(), &f.clientID, &f.manufacturerID, now)
	require.NoError(t, err)
	require.NoError(t, o.ReplaceContents("Spring totes", &f.clientID, &f.manufacturerID, []order.ProductSpec{{
		ProductRef:  "TOTE-01",
		Description: "Canvas tote",
		SampleNotes: sampleNotes,
		Items: []order.ItemSpec{
			{Label: "Natural", Quantity: 100},
			{Label: "Black", Quantity: 50},
		},
	}}))
	return o
}

// submitted returns an order sent to the manufacturer without a sample.
func (f fixture) submitted(t *testing.T) *order.Order {
	t.Helper()
	o := f.draft(t, "")
	_, err := o.TransitionTo(order.SubmittedToManufacturer, f.approver.ID(), now)
	require.NoError(t, err)
	return o
}

// withSample returns an order submitted for a sample.
func (f fixture) withSample(t *testing.T) *order.Order {
	t.Helper()
	o := f.draft(t, "pantone 7527C")
	_, err := o.TransitionTo(order.SubmittedForSample, f.approver.ID(), now)
	require.NoError(t, err)
	return o
}

func firstProduct(o *order.Order) *order.Product {
	return o.Products()[0]
}

func firstItem(o *order.Order) *order.Item {
	return o.Products()[0].Items()[0]
}

// orderUoW wires a MockOrderUoW with its repositories.
type orderUoW struct {
	uow           *MockOrderUoW
	factory       *MockOrderUoWFactory
	orders        *MockOrderRepository
	audits        *MockAuditRepository
	notifications *MockNotificationRepository
}

func newOrderUoW() orderUoW {
	w := orderUoW{
		uow:           new(MockOrderUoW),
		factory:       new(MockOrderUoWFactory),
		orders:        new(MockOrderRepository),
		audits:        new(MockAuditRepository),
		notifications: new(MockNotificationRepository),
	}
	w.factory.On("Create").Return(w.uow).Once()
	return w
}

func (w orderUoW) assert(t *testing.T) {
	t.Helper()
	w.factory.AssertExpectations(t)
	w.uow.AssertExpectations(t)
	w.orders.AssertExpectations(t)
	w.audits.AssertExpectations(t)
	w.notifications.AssertExpectations(t)
}

// captureAudit collects recorded audit entries for inspection.
func (w orderUoW) captureAudit(entries *[]*audit.Entry) func(mock.Arguments) {
	return func(args mock.Arguments) {
		*entries = append(*entries, args.Get(1).(*audit.Entry))
	}
}
