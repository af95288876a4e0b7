package commands_test

import (
	"testing"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/notification"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRound(t *testing.T) {
	f := newFixture(t)
	o := f.withSample(t)
	require.Equal(t, order.CustodianManufacturer, o.Sample().RoutedTo)

	t.Run("manufacturer enters the sample details", func(t *testing.T) {
		fee := decimal.RequireFromString("35")
		eta := kernel.NewDate(2025, 3, 20)
		cmd, err := commands.NewUpdateSampleCommand(f.manufacturer, o.ID(), order.SampleUpdate{
			Fee: &fee, ETA: &eta, Shipment: order.Shipment{TrackingNumber: "DHL123", Carrier: "DHL"},
		})
		require.NoError(t, err)
		w := newOrderUoW()
		var entries []*audit.Entry
		expectMutation(w, "Get", o.ID(), o, 1, 0, &entries, nil)

		require.NoError(t, commands.NewUpdateSampleCommandHandler(w.factory, clock).Handle(t.Context(), cmd))
		assert.Equal(t, "fee=- eta=- tracking=", entries[0].OldValue())
		assert.Equal(t, "fee=35.00 eta=2025-03-20 tracking=DHL123", entries[0].NewValue())
		w.assert(t)
	})

	t.Run("manufacturer sends it to the client", func(t *testing.T) {
		cmd, err := commands.NewRouteSampleCommand(f.manufacturer, o.ID(), order.CustodianClient)
		require.NoError(t, err)
		w := newOrderUoW()
		var entries []*audit.Entry
		var sent []*notification.Notification
		expectMutation(w, "Get", o.ID(), o, 1, 1, &entries, &sent)

		require.NoError(t, commands.NewRouteSampleCommandHandler(w.factory, clock).Handle(t.Context(), cmd))
		assert.Equal(t, order.CustodianClient, o.Sample().RoutedTo)
		assert.Equal(t, audit.TargetSample, entries[0].TargetType())
		assert.Equal(t, f.clientID, *sent[0].PartyID())
	})

	t.Run("client rejects", func(t *testing.T) {
		cmd, err := commands.NewDecideSampleCommand(f.client, o.ID(), order.DecisionRejected)
		require.NoError(t, err)
		w := newOrderUoW()
		var entries []*audit.Entry
		var sent []*notification.Notification
		expectMutation(w, "Get", o.ID(), o, 1, 1, &entries, &sent)

		require.NoError(t, commands.NewDecideSampleCommandHandler(w.factory, clock).Handle(t.Context(), cmd))
		assert.Equal(t, order.DecisionRejected, o.Sample().Status)
		assert.Equal(t, order.CustodianStaff, o.Sample().RoutedTo)
		assert.Equal(t, "sample.rejected", sent[0].Kind())
	})

	t.Run("staff reopen the round with the manufacturer", func(t *testing.T) {
		cmd, err := commands.NewRouteSampleCommand(f.admin, o.ID(), order.CustodianManufacturer)
		require.NoError(t, err)
		w := newOrderUoW()
		var entries []*audit.Entry
		var sent []*notification.Notification
		expectMutation(w, "Get", o.ID(), o, 1, 1, &entries, &sent)

		require.NoError(t, commands.NewRouteSampleCommandHandler(w.factory, clock).Handle(t.Context(), cmd))
		assert.Equal(t, order.DecisionPending, o.Sample().Status)
		assert.Nil(t, o.Sample().DecidedBy)
	})

	t.Run("manufacturer cannot decide", func(t *testing.T) {
		cmd, err := commands.NewDecideSampleCommand(f.manufacturer, o.ID(), order.DecisionApproved)
		require.NoError(t, err)
		w := newOrderUoW()
		expectRejection(w, "Get", o.ID(), o)

		err = commands.NewDecideSampleCommandHandler(w.factory, clock).Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrNotPermitted)
	})

	t.Run("approval is final", func(t *testing.T) {
		_, err := o.RouteSample(order.CustodianClient, now)
		require.NoError(t, err)
		_, err = o.DecideSample(order.DecisionApproved, f.client.ID(), now)
		require.NoError(t, err)

		cmd, err := commands.NewDecideSampleCommand(f.client, o.ID(), order.DecisionRejected)
		require.NoError(t, err)
		w := newOrderUoW()
		expectRejection(w, "Get", o.ID(), o)

		err = commands.NewDecideSampleCommandHandler(w.factory, clock).Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.DecisionApproved, o.Sample().Status)
	})
}

func TestNewDecideSampleCommand_RejectsPending(t *testing.T) {
	f := newFixture(t)
	_, err := commands.NewDecideSampleCommand(f.client, kernel.NewUUID(), order.DecisionPending)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
