package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
)

// productTarget is embedded by commands acting on a single product.
type productTarget struct {
	actor     kernel.Actor
	productID kernel.UUID
}

func newProductTarget(actor kernel.Actor, productID kernel.UUID) (productTarget, error) {
	if err := errors.Join(actor.Validate(), productID.Validate()); err != nil {
		return productTarget{}, err
	}
	return productTarget{actor: actor, productID: productID}, nil
}

func (t productTarget) Actor() kernel.Actor {
	return t.actor
}

func (t productTarget) ProductID() kernel.UUID {
	return t.productID
}

// sampleTarget is embedded by commands acting on the sample of an order.
type sampleTarget struct {
	actor   kernel.Actor
	orderID kernel.UUID
}

func newSampleTarget(actor kernel.Actor, orderID kernel.UUID) (sampleTarget, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return sampleTarget{}, err
	}
	return sampleTarget{actor: actor, orderID: orderID}, nil
}

func (t sampleTarget) Actor() kernel.Actor {
	return t.actor
}

func (t sampleTarget) OrderID() kernel.UUID {
	return t.orderID
}
