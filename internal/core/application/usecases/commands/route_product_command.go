package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/guard"
)

var ErrRouteProductCommandIsNotConstructed = errors.New(
	"RouteProductCommand must be created via NewRouteProductCommand constructor",
)

// RouteProductCommand hands a product to staff, the manufacturer or the client.
type RouteProductCommand struct { //nolint:recvcheck //using for validation
	productTarget
	target order.Custodian

	guard guard.ConstructorGuard
}

func NewRouteProductCommand(actor kernel.Actor, productID kernel.UUID, target order.Custodian) (RouteProductCommand, error) {
	t, err := newProductTarget(actor, productID)
	if err = errors.Join(err, target.Validate()); err != nil {
		return RouteProductCommand{}, err
	}
	return RouteProductCommand{productTarget: t, target: target, guard: guard.NewConstructorGuard()}, nil
}

func (c RouteProductCommand) Validate() error {
	return c.guard.Validate(ErrRouteProductCommandIsNotConstructed)
}

func (c RouteProductCommand) Target() order.Custodian {
	return c.target
}
