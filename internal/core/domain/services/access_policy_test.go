package services_test

import (
	"testing"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	creator      kernel.Actor
	otherCreator kernel.Actor
	approver     kernel.Actor
	admin        kernel.Actor
	superAdmin   kernel.Actor
	manufacturer kernel.Actor
	otherMfr     kernel.Actor
	client       kernel.Actor
	otherClient  kernel.Actor
	clientID     kernel.UUID
	mfrID        kernel.UUID
}

func actor(t *testing.T, role kernel.Role, party *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, role.String()+"@example.com", party)
	require.NoError(t, err)
	return a
}

func newFixture(t *testing.T) fixture {
	clientID := kernel.NewUUID()
	mfrID := kernel.NewUUID()
	otherParty := kernel.NewUUID()
	return fixture{
		creator:      actor(t, kernel.OrderCreator, nil),
		otherCreator: actor(t, kernel.OrderCreator, nil),
		approver:     actor(t, kernel.OrderApprover, nil),
		admin:        actor(t, kernel.Admin, nil),
		superAdmin:   actor(t, kernel.SuperAdmin, nil),
		manufacturer: actor(t, kernel.Manufacturer, &mfrID),
		otherMfr:     actor(t, kernel.Manufacturer, &otherParty),
		client:       actor(t, kernel.Client, &clientID),
		otherClient:  actor(t, kernel.Client, &otherParty),
		clientID:     clientID,
		mfrID:        mfrID,
	}
}

func (f fixture) order(status order.Status, routedTo order.Custodian) *order.Order {
	product := order.RestoreProduct(order.ProductState{
		ID:         kernel.NewUUID(),
		ProductRef: "TOTE-01",
		RoutedTo:   routedTo,
		Status:     order.ProductPending,
	})
	clientID := f.clientID
	mfrID := f.mfrID
	return order.RestoreOrder(order.State{
		ID:             kernel.NewUUID(),
		Name:           "Spring run",
		Status:         status,
		ClientID:       &clientID,
		ManufacturerID: &mfrID,
		CreatedBy:      f.creator.ID(),
		Products:       []*order.Product{product},
	})
}

func TestAccessPolicy_CanView(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	draft := f.order(order.Draft, order.CustodianStaff)
	submitted := f.order(order.SubmittedToManufacturer, order.CustodianManufacturer)
	withStaff := f.order(order.SubmittedToManufacturer, order.CustodianStaff)

	for _, a := range []kernel.Actor{f.admin, f.superAdmin, f.approver} {
		require.NoError(t, policy.CanView(a, draft), a.Role().String())
		require.NoError(t, policy.CanView(a, submitted), a.Role().String())
	}

	require.NoError(t, policy.CanView(f.creator, draft))
	require.ErrorIs(t, policy.CanView(f.otherCreator, draft), errs.ErrNotPermitted)

	require.NoError(t, policy.CanView(f.manufacturer, submitted))
	require.ErrorIs(t, policy.CanView(f.manufacturer, withStaff), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanView(f.manufacturer, f.order(order.Draft, order.CustodianManufacturer)), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanView(f.otherMfr, submitted), errs.ErrNotPermitted)

	require.NoError(t, policy.CanView(f.client, withStaff))
	require.ErrorIs(t, policy.CanView(f.client, draft), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanView(f.otherClient, withStaff), errs.ErrNotPermitted)

	visible := policy.FilterVisible(f.manufacturer, []*order.Order{draft, submitted, withStaff})
	require.Len(t, visible, 1)
	assert.True(t, visible[0].IsEqual(submitted))
}

func TestAccessPolicy_ListScope(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)

	assert.True(t, policy.ListScope(f.admin).All)
	assert.True(t, policy.ListScope(f.creator).CreatedBy.IsEqual(f.creator.ID()))

	mfr := policy.ListScope(f.manufacturer)
	assert.True(t, mfr.ManufacturerID.IsEqual(f.mfrID))
	assert.True(t, mfr.ExcludeDrafts)

	client := policy.ListScope(f.client)
	assert.True(t, client.ClientID.IsEqual(f.clientID))
	assert.True(t, client.ExcludeDrafts)
}

func TestAccessPolicy_Drafts(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	draft := f.order(order.Draft, order.CustodianStaff)

	require.NoError(t, policy.CanEditDraft(f.creator, draft))
	require.NoError(t, policy.CanEditDraft(f.approver, draft))
	require.NoError(t, policy.CanEditDraft(f.superAdmin, draft))
	require.ErrorIs(t, policy.CanEditDraft(f.otherCreator, draft), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanEditDraft(f.manufacturer, draft), errs.ErrNotPermitted)

	require.NoError(t, policy.CanCreate(f.creator))
	require.NoError(t, policy.CanCreate(f.client))
	require.ErrorIs(t, policy.CanCreate(f.manufacturer), errs.ErrNotPermitted)
}

func TestAccessPolicy_Transitions(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	draft := f.order(order.Draft, order.CustodianStaff)
	request := f.order(order.ClientRequest, order.CustodianStaff)

	require.NoError(t, policy.CanTransition(f.approver, draft, order.SubmittedToManufacturer))
	require.NoError(t, policy.CanTransition(f.superAdmin, draft, order.SubmittedToManufacturer))
	require.ErrorIs(t, policy.CanTransition(f.creator, draft, order.SubmittedToManufacturer), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanTransition(f.admin, draft, order.SubmittedToManufacturer), errs.ErrNotPermitted)
	require.NoError(t, policy.CanTransition(f.admin, request, order.Draft))
	require.ErrorIs(t, policy.CanTransition(f.client, request, order.Draft), errs.ErrNotPermitted)
}

func TestAccessPolicy_CanDelete(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	draft := f.order(order.Draft, order.CustodianStaff)
	active := f.order(order.InProgress, order.CustodianManufacturer)

	require.NoError(t, policy.CanDelete(f.superAdmin, draft))
	require.NoError(t, policy.CanDelete(f.superAdmin, active))
	require.NoError(t, policy.CanDelete(f.admin, draft))

	err := policy.CanDelete(f.admin, active)
	require.ErrorIs(t, err, errs.ErrNotPermitted)
	assert.Contains(t, err.Error(), "in_progress")

	for _, a := range []kernel.Actor{f.approver, f.creator, f.manufacturer, f.client} {
		require.ErrorIs(t, policy.CanDelete(a, draft), errs.ErrNotPermitted, a.Role().String())
	}
}

func TestAccessPolicy_ProductActions(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	o := f.order(order.SubmittedToManufacturer, order.CustodianManufacturer)
	p := o.Products()[0]

	require.NoError(t, policy.CanRouteProduct(f.admin, o, p, order.CustodianClient))
	require.NoError(t, policy.CanRouteProduct(f.manufacturer, o, p, order.CustodianStaff))
	require.ErrorIs(t, policy.CanRouteProduct(f.manufacturer, o, p, order.CustodianClient), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanRouteProduct(f.client, o, p, order.CustodianStaff), errs.ErrNotPermitted)

	require.NoError(t, policy.CanApproveProduct(f.client, o))
	require.ErrorIs(t, policy.CanApproveProduct(f.admin, o), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanApproveProduct(f.otherClient, o), errs.ErrNotPermitted)

	require.NoError(t, policy.CanDecideItem(f.approver, o, order.AdminStatus))
	require.ErrorIs(t, policy.CanDecideItem(f.manufacturer, o, order.AdminStatus), errs.ErrNotPermitted)
	require.NoError(t, policy.CanDecideItem(f.manufacturer, o, order.ManufacturerStatus))
	require.ErrorIs(t, policy.CanDecideItem(f.admin, o, order.ManufacturerStatus), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanDecideItem(f.otherMfr, o, order.ManufacturerStatus), errs.ErrNotPermitted)

	require.NoError(t, policy.CanWorkProduct(f.manufacturer, o))
	require.ErrorIs(t, policy.CanWorkProduct(f.superAdmin, o), errs.ErrNotPermitted)

	require.NoError(t, policy.CanSelectShipping(f.client, o))
	require.NoError(t, policy.CanSelectShipping(f.creator, o))
	require.ErrorIs(t, policy.CanSelectShipping(f.manufacturer, o), errs.ErrNotPermitted)
}

func TestAccessPolicy_ManufacturerActsOnlyOnVisibleOrders(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)

	for name, o := range map[string]*order.Order{
		"nothing routed to it": f.order(order.SubmittedToManufacturer, order.CustodianStaff),
		"draft":                f.order(order.Draft, order.CustodianManufacturer),
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, policy.CanView(f.manufacturer, o), errs.ErrNotPermitted)
			require.ErrorIs(t, policy.CanDecideItem(f.manufacturer, o, order.ManufacturerStatus), errs.ErrNotPermitted)
			require.ErrorIs(t, policy.CanWorkProduct(f.manufacturer, o), errs.ErrNotPermitted)
			require.NoError(t, policy.CanDecideItem(f.approver, o, order.AdminStatus))
		})
	}
}

func TestAccessPolicy_Sample(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	o := order.RestoreOrder(order.State{
		ID:             kernel.NewUUID(),
		Status:         order.SubmittedForSample,
		ClientID:       &f.clientID,
		ManufacturerID: &f.mfrID,
		CreatedBy:      f.creator.ID(),
		Sample:         order.Sample{Required: true, Status: order.DecisionPending, RoutedTo: order.CustodianManufacturer},
	})

	require.NoError(t, policy.CanRouteSample(f.manufacturer, o))
	require.NoError(t, policy.CanRouteSample(f.approver, o))
	require.ErrorIs(t, policy.CanRouteSample(f.client, o), errs.ErrNotPermitted)
	require.NoError(t, policy.CanUpdateSample(f.manufacturer, o))
	require.NoError(t, policy.CanDecideSample(f.client, o))
	require.ErrorIs(t, policy.CanDecideSample(f.superAdmin, o), errs.ErrNotPermitted)
}

func TestAccessPolicy_DenialDetailStaysInTheReason(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)

	err := policy.CanDelete(f.client, f.order(order.Draft, order.CustodianStaff))

	var denied *errs.NotPermittedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "delete order", denied.Action)
	assert.Contains(t, denied.Reason, "client")
	assert.Equal(t, "not permitted", errs.ErrNotPermitted.Error())
}

func TestAccessPolicy_MediaAndAudit(t *testing.T) {
	policy := services.NewAccessPolicy()
	f := newFixture(t)
	o := f.order(order.SubmittedToManufacturer, order.CustodianManufacturer)

	require.NoError(t, policy.CanUploadMedia(f.creator, o))
	require.NoError(t, policy.CanUploadMedia(f.manufacturer, o))
	require.ErrorIs(t, policy.CanUploadMedia(f.otherCreator, o), errs.ErrNotPermitted)
	require.ErrorIs(t, policy.CanUploadMedia(f.client, o), errs.ErrNotPermitted)

	require.NoError(t, policy.CanViewAudit(f.admin, o))
	require.ErrorIs(t, policy.CanViewAudit(f.manufacturer, o), errs.ErrNotPermitted)

	require.NoError(t, policy.CanResolveQuestion(f.approver))
	require.ErrorIs(t, policy.CanResolveQuestion(f.manufacturer), errs.ErrNotPermitted)
}
