package commands

import (
	"context"
	"fmt"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

type UpdateProductQuoteCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewUpdateProductQuoteCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) UpdateProductQuoteCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return UpdateProductQuoteCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h UpdateProductQuoteCommandHandler) Handle(ctx context.Context, cmd UpdateProductQuoteCommand) (err error) {
	ctx, done := observe(ctx, "update_product_quote")
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
		old := quoteSummary(p.Costs())
		if err = o.UpdateQuote(p.ID(), cmd.Quote()); err != nil {
			return outcome{}, err
		}
		return outcome{changes: []change{{
			action:     audit.ProductQuoted,
			targetType: audit.TargetProduct,
			targetID:   p.ID(),
			oldValue:   old,
			newValue:   quoteSummary(p.Costs()),
		}}}, nil
	})
}

func quoteSummary(c order.Costs) string {
	return fmt.Sprintf("unit=%s sample=%s air=%s boat=%s",
		c.UnitPrice.StringFixed(2), c.SampleFee.StringFixed(2), c.AirPrice.StringFixed(2), c.BoatPrice.StringFixed(2))
}
