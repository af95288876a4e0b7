package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// DecideItemCommandHandler applies a role-matched item decision and audits
// the old and new value. A decided field is never overwritten.
type DecideItemCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewDecideItemCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) DecideItemCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return DecideItemCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h DecideItemCommandHandler) Handle(ctx context.Context, cmd DecideItemCommand) (err error) {
	ctx, done := observe(ctx, "decide_item")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	return mutate(ctx, h.uowFactory, actor, h.clock.Now(), byItem(cmd.ItemID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanDecideItem(actor, o, cmd.Field()); err != nil {
			return outcome{}, err
		}
		_, old, err := o.DecideItem(cmd.ItemID(), cmd.Field(), cmd.Verdict())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: []change{{
			action:     audit.ItemDecided(cmd.Field().String()),
			targetType: audit.TargetItem,
			targetID:   cmd.ItemID(),
			oldValue:   old.String(),
			newValue:   cmd.Verdict().String(),
		}}}, nil
	})
}
