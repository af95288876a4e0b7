package queries

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/guard"
)

var (
	ErrComputeTotalsQueryIsNotConstructed = errors.New(
		"ComputeTotalsQuery must be created via NewComputeTotalsQuery constructor",
	)
	ErrComputeETAQueryIsNotConstructed = errors.New(
		"ComputeETAQuery must be created via NewComputeETAQuery constructor",
	)
)

// ComputeTotalsQuery prices an order for the actor's role.
type ComputeTotalsQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewComputeTotalsQuery(actor kernel.Actor, orderID kernel.UUID) (ComputeTotalsQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ComputeTotalsQuery{}, err
	}
	return ComputeTotalsQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ComputeTotalsQuery) Validate() error {
	return q.guard.Validate(ErrComputeTotalsQueryIsNotConstructed)
}

func (q ComputeTotalsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ComputeTotalsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ComputeETAQuery estimates the delivery date of one product.
type ComputeETAQuery struct {
	actor     kernel.Actor
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewComputeETAQuery(actor kernel.Actor, productID kernel.UUID) (ComputeETAQuery, error) {
	if err := errors.Join(actor.Validate(), productID.Validate()); err != nil {
		return ComputeETAQuery{}, err
	}
	return ComputeETAQuery{actor: actor, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q ComputeETAQuery) Validate() error {
	return q.guard.Validate(ErrComputeETAQueryIsNotConstructed)
}

func (q ComputeETAQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ComputeETAQuery) ProductID() kernel.UUID {
	return q.productID
}
