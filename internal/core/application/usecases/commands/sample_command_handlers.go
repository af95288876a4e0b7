package commands

import (
	"context"
	"fmt"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// RouteSampleCommandHandler moves the sample between custodians. Sending a
// rejected sample back to the manufacturer opens a new round.
type RouteSampleCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewRouteSampleCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) RouteSampleCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return RouteSampleCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h RouteSampleCommandHandler) Handle(ctx context.Context, cmd RouteSampleCommand) (err error) {
	ctx, done := observe(ctx, "route_sample")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	now := h.clock.Now()
	return mutate(ctx, h.uowFactory, actor, now, byOrder(cmd.OrderID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanRouteSample(actor, o); err != nil {
			return outcome{}, err
		}
		prev, err := o.RouteSample(cmd.Target(), now)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			changes: []change{{
				action:     audit.SampleRouted,
				targetType: audit.TargetSample,
				targetID:   o.ID(),
				oldValue:   prev.String(),
				newValue:   cmd.Target().String(),
			}},
			notices: []notice{{
				recipient: cmd.Target(),
				kind:      "sample.routed",
				message:   "The sample of " + o.Number() + " is waiting for you",
			}},
		}, nil
	})
}

type UpdateSampleCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewUpdateSampleCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) UpdateSampleCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return UpdateSampleCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h UpdateSampleCommandHandler) Handle(ctx context.Context, cmd UpdateSampleCommand) (err error) {
	ctx, done := observe(ctx, "update_sample")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	return mutate(ctx, h.uowFactory, actor, h.clock.Now(), byOrder(cmd.OrderID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanUpdateSample(actor, o); err != nil {
			return outcome{}, err
		}
		old := sampleSummary(o.Sample())
		if err := o.UpdateSample(cmd.Update()); err != nil {
			return outcome{}, err
		}
		return outcome{changes: []change{{
			action:     audit.SampleUpdated,
			targetType: audit.TargetSample,
			targetID:   o.ID(),
			oldValue:   old,
			newValue:   sampleSummary(o.Sample()),
		}}}, nil
	})
}

// DecideSampleCommandHandler records the client's verdict; the sample goes
// back to staff, who are notified.
type DecideSampleCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewDecideSampleCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) DecideSampleCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return DecideSampleCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h DecideSampleCommandHandler) Handle(ctx context.Context, cmd DecideSampleCommand) (err error) {
	ctx, done := observe(ctx, "decide_sample")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	now := h.clock.Now()
	return mutate(ctx, h.uowFactory, actor, now, byOrder(cmd.OrderID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanDecideSample(actor, o); err != nil {
			return outcome{}, err
		}
		old, err := o.DecideSample(cmd.Verdict(), actor.ID(), now)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			changes: []change{{
				action:     audit.SampleDecided,
				targetType: audit.TargetSample,
				targetID:   o.ID(),
				oldValue:   old.String(),
				newValue:   cmd.Verdict().String(),
			}},
			notices: []notice{{
				recipient: order.CustodianStaff,
				kind:      "sample." + cmd.Verdict().String(),
				message:   fmt.Sprintf("The sample of %s was %s by the client", o.Number(), cmd.Verdict()),
			}},
		}, nil
	})
}

func sampleSummary(s order.Sample) string {
	fee := "-"
	if s.Fee != nil {
		fee = s.Fee.StringFixed(2)
	}
	eta := "-"
	if s.ETA != nil {
		eta = s.ETA.String()
	}
	return fmt.Sprintf("fee=%s eta=%s tracking=%s", fee, eta, s.Shipment.TrackingNumber)
}
