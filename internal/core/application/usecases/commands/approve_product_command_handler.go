package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// ApproveProductCommandHandler marks a product client approved and hands it
// back to staff.
type ApproveProductCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewApproveProductCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ApproveProductCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return ApproveProductCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h ApproveProductCommandHandler) Handle(ctx context.Context, cmd ApproveProductCommand) (err error) {
	ctx, done := observe(ctx, "approve_product")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	now := h.clock.Now()
	return mutate(ctx, h.uowFactory, actor, now, byProduct(cmd.ProductID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanApproveProduct(actor, o); err != nil {
			return outcome{}, err
		}
		p, err := o.Product(cmd.ProductID())
		if err != nil {
			return outcome{}, err
		}
		old := p.Status()
		if err = o.ApproveProduct(p.ID(), actor.ID(), now); err != nil {
			return outcome{}, err
		}
		return outcome{
			changes: []change{
				{
					action:     audit.ProductApproved,
					targetType: audit.TargetProduct,
					targetID:   p.ID(),
					oldValue:   old.String(),
					newValue:   p.Status().String(),
				},
				{
					action:     audit.ProductRouted,
					targetType: audit.TargetProduct,
					targetID:   p.ID(),
					oldValue:   order.CustodianClient.String(),
					newValue:   p.RoutedTo().String(),
				},
			},
			notices: []notice{{
				recipient: order.CustodianStaff,
				kind:      "product.client_approved",
				message:   productLabel(o, p) + " was approved by the client",
			}},
		}, nil
	})
}
