package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "mfgorders/internal/adapters/out/postgres"
	"mfgorders/internal/adapters/out/postgres/orderrepo"
	"mfgorders/internal/adapters/out/postgres/pgtest"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	creator        kernel.UUID
	clientID       kernel.UUID
	manufacturerID kernel.UUID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.creator = kernel.NewUUID()
	suite.clientID = kernel.NewUUID()
	suite.manufacturerID = kernel.NewUUID()
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createDraft(sampleNotes string) *order.Order {
	o, err := order.NewDraft(kernel.NewUUID(), "Spring totes", suite.creator, &suite.clientID, &suite.manufacturerID, now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.ReplaceContents("Spring totes", &suite.clientID, &suite.manufacturerID, []order.ProductSpec{
		{
			ProductRef:  "TOTE-01",
			Description: "Canvas tote",
			SampleNotes: sampleNotes,
			Items: []order.ItemSpec{
				{Label: "Natural", Quantity: 100},
				{Label: "Black", Quantity: 50, Notes: "matte"},
			},
		},
		{
			ProductRef: "CAP-02",
			Items:      []order.ItemSpec{{Label: "One size", Quantity: 20}},
		},
	}))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) reload(id kernel.UUID) *order.Order {
	o, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksAndPersistsTheAggregate() {
	ctx := context.Background()
	o := suite.createDraft("")
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", o.ID(), o).Once()
	repo := orderrepo.NewGormOrderRepository(suite.db, tracker)

	suite.Require().NoError(repo.Add(ctx, o))

	got := suite.reload(o.ID())
	suite.Equal(o.Number(), got.Number())
	suite.Equal(order.Draft, got.Status())
	suite.Equal(suite.clientID, *got.ClientID())
	suite.Require().Len(got.Products(), 2)
	suite.Equal("TOTE-01", got.Products()[0].ProductRef())
	suite.Equal([]string{"Natural", "Black"}, []string{
		got.Products()[0].Items()[0].Label(),
		got.Products()[0].Items()[1].Label(),
	})
	suite.Equal("matte", got.Products()[0].Items()[1].Notes())
	suite.Equal(order.DecisionPending, got.Products()[0].Items()[0].AdminStatus())
	suite.Equal(0, got.Version())
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndRejectsStaleWrites() {
	ctx := context.Background()
	o := suite.createDraft("")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first := suite.reload(o.ID())
	second := suite.reload(o.ID())

	suite.Require().NoError(first.ReplaceContents("Renamed", &suite.clientID, &suite.manufacturerID, nil))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ReplaceContents("Lost update", nil, nil, nil))
	err := suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	got := suite.reload(o.ID())
	suite.Equal("Renamed", got.Name())
	suite.Equal(1, got.Version())
	suite.Empty(got.Products(), "removed products are deleted")

	var items int64
	suite.Require().NoError(suite.db.Table("order_items").Count(&items).Error)
	suite.Zero(items)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.createDraft("")
	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RoundTripsWorkflowState() {
	ctx := context.Background()
	o := suite.createDraft("pantone 7527C")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	o = suite.reload(o.ID())
	_, err := o.TransitionTo(order.SubmittedForSample, suite.creator, now)
	suite.Require().NoError(err)

	p := o.Products()[0]
	days := 30
	suite.Require().NoError(o.UpdateQuote(p.ID(), order.Quote{
		Costs: order.Costs{
			UnitPrice: decimal.RequireFromString("12.50"),
			SampleFee: decimal.NewFromInt(25),
			AirPrice:  decimal.NewFromInt(300),
			BoatPrice: decimal.NewFromInt(120),
		},
		Production: order.Production{Days: &days},
	}))
	suite.Require().NoError(o.SelectShippingMethod(p.ID(), order.ShippingAir))
	suite.Require().NoError(o.RaiseQuestion(p.ID(), "which thread colour?"))
	fee := decimal.NewFromInt(35)
	eta := kernel.NewDate(2025, 3, 20)
	suite.Require().NoError(o.UpdateSample(order.SampleUpdate{Fee: &fee, ETA: &eta}))

	uploader := kernel.NewUUID()
	pid := p.ID()
	productMedia, err := order.NewMediaAttachment(kernel.NewUUID(), &pid, "/media/a.png", "a.png", order.MediaImage, uploader, now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AttachMedia(productMedia))
	sampleMedia, err := order.NewMediaAttachment(kernel.NewUUID(), nil, "/media/s.mp4", "s.mp4", order.MediaVideo, uploader, now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(o.AttachMedia(sampleMedia))

	_, _, err = o.DecideItem(p.Items()[0].ID(), order.ManufacturerStatus, order.DecisionApproved)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, o))

	got := suite.reload(o.ID())
	gp := got.Products()[0]
	suite.Equal(order.SubmittedForSample, got.Status())
	suite.Equal(order.CustodianManufacturer, gp.RoutedTo())
	suite.NotNil(gp.RoutedAt())
	suite.True(gp.Costs().UnitPrice.Equal(decimal.RequireFromString("12.5")))
	suite.Equal(order.ShippingAir, gp.ShippingMethod())
	suite.Equal(30, *gp.Production().Days)
	suite.True(gp.QuestionRaised())
	suite.Equal("which thread colour?", gp.QuestionNote())
	suite.Equal(order.DecisionApproved, gp.Items()[0].ManufacturerStatus())
	suite.Require().Len(gp.Media(), 1)
	suite.Equal(order.MediaImage, gp.Media()[0].Kind())

	s := got.Sample()
	suite.True(s.Required)
	suite.Equal(order.CustodianManufacturer, s.RoutedTo)
	suite.True(s.Fee.Equal(fee))
	suite.Equal("2025-03-20", s.ETA.String())
	suite.Require().Len(got.SampleMedia(), 1)
	suite.True(got.SampleMedia()[0].SampleScoped())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLegacyQuestionStatusReadsAsOverlay() {
	ctx := context.Background()
	o := suite.createDraft("")
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.db.Exec(
		"UPDATE order_products SET status = 'question_for_admin' WHERE id = ?", o.Products()[0].ID().String(),
	).Error)

	got := suite.reload(o.ID())
	suite.Equal(order.ProductPending, got.Products()[0].Status())
	suite.True(got.Products()[0].QuestionRaised())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RoundTripsOpenClientReview() {
	ctx := context.Background()
	o := suite.createDraft("")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	o = suite.reload(o.ID())
	_, err := o.TransitionTo(order.SubmittedToManufacturer, suite.creator, now)
	suite.Require().NoError(err)
	p := o.Products()[0]
	today := kernel.DateOf(now)
	suite.Require().NoError(o.AdvanceProduct(p.ID(), order.ProductInProduction, order.Shipment{}, today))
	suite.Require().NoError(o.AdvanceProduct(p.ID(), order.ProductCompleted, order.Shipment{}, today))
	_, err = o.RouteProduct(p.ID(), order.CustodianClient, suite.creator, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got := suite.reload(o.ID())
	gp := got.Products()[0]
	suite.Equal(order.ProductPendingClientApproval, gp.Status())
	suite.Equal(order.ProductCompleted, gp.ReviewedFrom())
	suite.Require().NotNil(gp.Production().StartDate)

	_, err = got.RouteProduct(gp.ID(), order.CustodianStaff, suite.creator, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, got))

	back := suite.reload(o.ID()).Products()[0]
	suite.Equal(order.ProductCompleted, back.Status())
	suite.Equal(order.UnknownProductStatus, back.ReviewedFrom())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByProductAndItem() {
	ctx := context.Background()
	o := suite.createDraft("")
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createDraft("")))

	byProduct, err := suite.repository.GetByProductID(ctx, o.Products()[1].ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), byProduct.ID())

	byItem, err := suite.repository.GetByItemID(ctx, o.Products()[0].Items()[1].ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), byItem.ID())

	_, err = suite.repository.GetByItemID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_Filters() {
	ctx := context.Background()
	draft := suite.createDraft("")
	suite.Require().NoError(suite.repository.Add(ctx, draft))

	submitted := suite.createDraft("")
	_, err := submitted.TransitionTo(order.SubmittedToManufacturer, suite.creator, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, submitted))

	other, err := order.NewDraft(kernel.NewUUID(), "Other", kernel.NewUUID(), nil, nil, now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	all, err := suite.repository.List(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 3)
	suite.Equal(other.ID(), all[0].ID(), "newest first")

	mine, err := suite.repository.List(ctx, ports.OrderFilter{CreatedBy: &suite.creator})
	suite.Require().NoError(err)
	suite.Len(mine, 2)

	forClient, err := suite.repository.List(ctx, ports.OrderFilter{
		ClientID:        &suite.clientID,
		ExcludeStatuses: []order.Status{order.Draft},
	})
	suite.Require().NoError(err)
	suite.Require().Len(forClient, 1)
	suite.Equal(submitted.ID(), forClient[0].ID())
	suite.Len(forClient[0].Products(), 2)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
