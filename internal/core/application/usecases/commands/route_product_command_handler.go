package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// RouteProductCommandHandler changes the custodian of a product and notifies
// the new custodian.
//
// Example:
//
//	cmd, _ := NewRouteProductCommand(actor, productID, order.CustodianClient)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrConflict) {
//	    // already routed there
//	}
type RouteProductCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewRouteProductCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) RouteProductCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return RouteProductCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h RouteProductCommandHandler) Handle(ctx context.Context, cmd RouteProductCommand) (err error) {
	ctx, done := observe(ctx, "route_product")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	now := h.clock.Now()
	return mutate(ctx, h.uowFactory, actor, now, byProduct(cmd.ProductID()), func(o *order.Order) (outcome, error) {
		p, err := o.Product(cmd.ProductID())
		if err != nil {
			return outcome{}, err
		}
		if err = h.policy.CanRouteProduct(actor, o, p, cmd.Target()); err != nil {
			return outcome{}, err
		}
		prev, err := o.RouteProduct(p.ID(), cmd.Target(), actor.ID(), now)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			changes: []change{{
				action:     audit.ProductRouted,
				targetType: audit.TargetProduct,
				targetID:   p.ID(),
				oldValue:   prev.String(),
				newValue:   cmd.Target().String(),
			}},
			notices: []notice{{
				recipient: cmd.Target(),
				kind:      "product.routed",
				message:   productLabel(o, p) + " is waiting for you",
			}},
		}, nil
	})
}
