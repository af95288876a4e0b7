package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// AdvanceProductStatusCommandHandler runs a production step for the assigned
// manufacturer. Staff are told when a product ships.
type AdvanceProductStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewAdvanceProductStatusCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) AdvanceProductStatusCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return AdvanceProductStatusCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h AdvanceProductStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceProductStatusCommand) (err error) {
	ctx, done := observe(ctx, "advance_product_status")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	return mutate(ctx, h.uowFactory, actor, h.clock.Now(), byProduct(cmd.ProductID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanWorkProduct(actor, o); err != nil {
			return outcome{}, err
		}
		p, err := o.Product(cmd.ProductID())
		if err != nil {
			return outcome{}, err
		}
		old := p.Status()
		if err = o.AdvanceProduct(p.ID(), cmd.Target(), cmd.Shipment(), h.clock.Today()); err != nil {
			return outcome{}, err
		}
		out := outcome{changes: []change{{
			action:     audit.ProductAdvanced,
			targetType: audit.TargetProduct,
			targetID:   p.ID(),
			oldValue:   old.String(),
			newValue:   p.Status().String(),
		}}}
		if p.Status() == order.ProductShipped {
			out.notices = []notice{{
				recipient: order.CustodianStaff,
				kind:      "product.shipped",
				message:   productLabel(o, p) + " shipped with " + p.Shipment().Carrier + " " + p.Shipment().TrackingNumber,
			}}
		}
		return out, nil
	})
}
