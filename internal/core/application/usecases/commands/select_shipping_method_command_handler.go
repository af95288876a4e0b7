package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

type SelectShippingMethodCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewSelectShippingMethodCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) SelectShippingMethodCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return SelectShippingMethodCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h SelectShippingMethodCommandHandler) Handle(ctx context.Context, cmd SelectShippingMethodCommand) (err error) {
	ctx, done := observe(ctx, "select_shipping_method")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	return mutate(ctx, h.uowFactory, actor, h.clock.Now(), byProduct(cmd.ProductID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanSelectShipping(actor, o); err != nil {
			return outcome{}, err
		}
		p, err := o.Product(cmd.ProductID())
		if err != nil {
			return outcome{}, err
		}
		old := p.ShippingMethod()
		if err = o.SelectShippingMethod(p.ID(), cmd.Method()); err != nil {
			return outcome{}, err
		}
		return outcome{changes: []change{{
			action:     audit.ShippingSelected,
			targetType: audit.TargetProduct,
			targetID:   p.ID(),
			oldValue:   old.String(),
			newValue:   cmd.Method().String(),
		}}}, nil
	})
}
