package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/guard"
)

var ErrApproveProductCommandIsNotConstructed = errors.New(
	"ApproveProductCommand must be created via NewApproveProductCommand constructor",
)

// ApproveProductCommand records the client's approval of a product under review.
type ApproveProductCommand struct { //nolint:recvcheck //using for validation
	productTarget

	guard guard.ConstructorGuard
}

func NewApproveProductCommand(actor kernel.Actor, productID kernel.UUID) (ApproveProductCommand, error) {
	t, err := newProductTarget(actor, productID)
	if err != nil {
		return ApproveProductCommand{}, err
	}
	return ApproveProductCommand{productTarget: t, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveProductCommand) Validate() error {
	return c.guard.Validate(ErrApproveProductCommandIsNotConstructed)
}
