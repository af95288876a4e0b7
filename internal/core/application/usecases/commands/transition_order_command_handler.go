package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// TransitionOrderCommandHandler runs one lifecycle step. Submitting a draft
// routes every product to the manufacturer, which is notified.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) TransitionOrderCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return TransitionOrderCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (err error) {
	ctx, done := observe(ctx, "transition_order")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	now := h.clock.Now()
	return mutate(ctx, h.uowFactory, actor, now, byOrder(cmd.OrderID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanTransition(actor, o, cmd.Target()); err != nil {
			return outcome{}, err
		}
		prev, err := o.TransitionTo(cmd.Target(), actor.ID(), now)
		if err != nil {
			return outcome{}, err
		}

		out := outcome{changes: []change{{
			action:     audit.OrderTransitioned,
			targetType: audit.TargetOrder,
			targetID:   o.ID(),
			oldValue:   prev.String(),
			newValue:   o.Status().String(),
		}}}
		if prev == order.Draft {
			for _, p := range o.Products() {
				out.changes = append(out.changes, change{
					action:     audit.ProductRouted,
					targetType: audit.TargetProduct,
					targetID:   p.ID(),
					oldValue:   order.CustodianStaff.String(),
					newValue:   p.RoutedTo().String(),
				})
			}
			out.notices = append(out.notices, notice{
				recipient: order.CustodianManufacturer,
				kind:      "order." + o.Status().String(),
				message:   o.Number() + " was sent to you",
			})
		}
		return out, nil
	})
}
