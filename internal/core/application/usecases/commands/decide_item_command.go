package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/guard"
)

var ErrDecideItemCommandIsNotConstructed = errors.New(
	"DecideItemCommand must be created via NewDecideItemCommand constructor",
)

// DecideItemCommand approves or rejects one approval field of an item.
type DecideItemCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	itemID  kernel.UUID
	field   order.ApprovalField
	verdict order.Decision

	guard guard.ConstructorGuard
}

func NewDecideItemCommand(
	actor kernel.Actor,
	itemID kernel.UUID,
	field order.ApprovalField,
	verdict order.Decision,
) (DecideItemCommand, error) {
	var fieldErr, verdictErr error
	if field != order.AdminStatus && field != order.ManufacturerStatus {
		fieldErr = errs.NewValueIsInvalidError("field")
	}
	if verdict != order.DecisionApproved && verdict != order.DecisionRejected {
		verdictErr = errs.NewValueIsInvalidError("decision")
	}
	if err := errors.Join(actor.Validate(), itemID.Validate(), fieldErr, verdictErr); err != nil {
		return DecideItemCommand{}, err
	}
	return DecideItemCommand{
		actor:   actor,
		itemID:  itemID,
		field:   field,
		verdict: verdict,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DecideItemCommand) Validate() error {
	return c.guard.Validate(ErrDecideItemCommandIsNotConstructed)
}

func (c DecideItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DecideItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c DecideItemCommand) Field() order.ApprovalField {
	return c.field
}

func (c DecideItemCommand) Verdict() order.Decision {
	return c.verdict
}
