package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/guard"
)

var ErrUpdateProductQuoteCommandIsNotConstructed = errors.New(
	"UpdateProductQuoteCommand must be created via NewUpdateProductQuoteCommand constructor",
)

// UpdateProductQuoteCommand carries the manufacturer's prices and schedule.
type UpdateProductQuoteCommand struct { //nolint:recvcheck //using for validation
	productTarget
	quote order.Quote

	guard guard.ConstructorGuard
}

func NewUpdateProductQuoteCommand(actor kernel.Actor, productID kernel.UUID, quote order.Quote) (UpdateProductQuoteCommand, error) {
	t, err := newProductTarget(actor, productID)
	if err != nil {
		return UpdateProductQuoteCommand{}, err
	}
	return UpdateProductQuoteCommand{productTarget: t, quote: quote, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateProductQuoteCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductQuoteCommandIsNotConstructed)
}

func (c UpdateProductQuoteCommand) Quote() order.Quote {
	return c.quote
}
