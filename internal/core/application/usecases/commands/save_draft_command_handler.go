package commands

import (
	"context"
	"strconv"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/pkg/errs"
)

// SaveDraftCommandHandler applies a draft edit under optimistic concurrency.
type SaveDraftCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewSaveDraftCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) SaveDraftCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return SaveDraftCommandHandler{uowFactory: uowFactory, clock: clock, policy: services.NewAccessPolicy()}
}

// Handle returns the version the draft has after the save.
func (h SaveDraftCommandHandler) Handle(ctx context.Context, cmd SaveDraftCommand) (version int, err error) {
	ctx, done := observe(ctx, "save_draft")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	actor := cmd.Actor()
	err = mutate(ctx, h.uowFactory, actor, h.clock.Now(), byOrder(cmd.OrderID()), func(o *order.Order) (outcome, error) {
		if err := h.policy.CanEditDraft(actor, o); err != nil {
			return outcome{}, err
		}
		if o.Version() != cmd.ExpectedVersion() {
			return outcome{}, errs.NewConflictError("version", o.Version())
		}
		if err := o.ReplaceContents(cmd.Name(), cmd.ClientID(), cmd.ManufacturerID(), cmd.Products()); err != nil {
			return outcome{}, err
		}
		version = o.Version() + 1
		return outcome{changes: []change{{
			action:     audit.DraftSaved,
			targetType: audit.TargetOrder,
			targetID:   o.ID(),
			oldValue:   strconv.Itoa(o.Version()),
			newValue:   strconv.Itoa(version),
		}}}, nil
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}
