package commands

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
)

// RaiseQuestionCommandHandler sets the question overlay and notifies staff.
type RaiseQuestionCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewRaiseQuestionCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) RaiseQuestionCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return RaiseQuestionCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h RaiseQuestionCommandHandler) Handle(ctx context.Context, cmd RaiseQuestionCommand) (err error) {
	ctx, done := observe(ctx, "raise_question")
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
		if err = o.RaiseQuestion(p.ID(), cmd.Note()); err != nil {
			return outcome{}, err
		}
		return outcome{
			changes: []change{{
				action:     audit.QuestionRaised,
				targetType: audit.TargetProduct,
				targetID:   p.ID(),
				newValue:   cmd.Note(),
			}},
			notices: []notice{{
				recipient: order.CustodianStaff,
				kind:      "product.question",
				message:   productLabel(o, p) + ": " + cmd.Note(),
			}},
		}, nil
	})
}

// ResolveQuestionCommandHandler clears the question overlay and tells the manufacturer.
type ResolveQuestionCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewResolveQuestionCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ResolveQuestionCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return ResolveQuestionCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

func (h ResolveQuestionCommandHandler) Handle(ctx context.Context, cmd ResolveQuestionCommand) (err error) {
	ctx, done := observe(ctx, "resolve_question")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err = h.policy.CanResolveQuestion(actor); err != nil {
		return err
	}

	return mutate(ctx, h.uowFactory, actor, h.clock.Now(), byProduct(cmd.ProductID()), func(o *order.Order) (outcome, error) {
		p, err := o.Product(cmd.ProductID())
		if err != nil {
			return outcome{}, err
		}
		note := p.QuestionNote()
		if err = o.ResolveQuestion(p.ID()); err != nil {
			return outcome{}, err
		}
		return outcome{
			changes: []change{{
				action:     audit.QuestionResolved,
				targetType: audit.TargetProduct,
				targetID:   p.ID(),
				oldValue:   note,
			}},
			notices: []notice{{
				recipient: order.CustodianManufacturer,
				kind:      "product.question_resolved",
				message:   "Question on " + productLabel(o, p) + " was answered",
			}},
		}, nil
	})
}
