package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/guard"
)

var ErrAdvanceProductStatusCommandIsNotConstructed = errors.New(
	"AdvanceProductStatusCommand must be created via NewAdvanceProductStatusCommand constructor",
)

// AdvanceProductStatusCommand moves a product one production step forward.
// Shipment is read only when the target is shipped.
type AdvanceProductStatusCommand struct { //nolint:recvcheck //using for validation
	productTarget
	target   order.ProductStatus
	shipment order.Shipment

	guard guard.ConstructorGuard
}

func NewAdvanceProductStatusCommand(
	actor kernel.Actor,
	productID kernel.UUID,
	target order.ProductStatus,
	shipment order.Shipment,
) (AdvanceProductStatusCommand, error) {
	t, err := newProductTarget(actor, productID)
	if err = errors.Join(err, target.Validate()); err != nil {
		return AdvanceProductStatusCommand{}, err
	}
	return AdvanceProductStatusCommand{
		productTarget: t,
		target:        target,
		shipment:      shipment,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceProductStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceProductStatusCommandIsNotConstructed)
}

func (c AdvanceProductStatusCommand) Target() order.ProductStatus {
	return c.target
}

func (c AdvanceProductStatusCommand) Shipment() order.Shipment {
	return c.shipment
}
