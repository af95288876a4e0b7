package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/guard"
)

var ErrSelectShippingMethodCommandIsNotConstructed = errors.New(
	"SelectShippingMethodCommand must be created via NewSelectShippingMethodCommand constructor",
)

// SelectShippingMethodCommand chooses air, boat or no shipping method.
type SelectShippingMethodCommand struct { //nolint:recvcheck //using for validation
	productTarget
	method order.ShippingMethod

	guard guard.ConstructorGuard
}

func NewSelectShippingMethodCommand(
	actor kernel.Actor,
	productID kernel.UUID,
	method order.ShippingMethod,
) (SelectShippingMethodCommand, error) {
	t, err := newProductTarget(actor, productID)
	if err = errors.Join(err, method.Validate()); err != nil {
		return SelectShippingMethodCommand{}, err
	}
	return SelectShippingMethodCommand{productTarget: t, method: method, guard: guard.NewConstructorGuard()}, nil
}

func (c SelectShippingMethodCommand) Validate() error {
	return c.guard.Validate(ErrSelectShippingMethodCommandIsNotConstructed)
}

func (c SelectShippingMethodCommand) Method() order.ShippingMethod {
	return c.method
}
