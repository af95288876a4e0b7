package commands

import (
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/guard"
)

var (
	ErrRouteSampleCommandIsNotConstructed = errors.New(
		"RouteSampleCommand must be created via NewRouteSampleCommand constructor",
	)
	ErrUpdateSampleCommandIsNotConstructed = errors.New(
		"UpdateSampleCommand must be created via NewUpdateSampleCommand constructor",
	)
	ErrDecideSampleCommandIsNotConstructed = errors.New(
		"DecideSampleCommand must be created via NewDecideSampleCommand constructor",
	)
)

// RouteSampleCommand hands the order's sample to another custodian.
type RouteSampleCommand struct { //nolint:recvcheck //using for validation
	sampleTarget
	target order.Custodian

	guard guard.ConstructorGuard
}

func NewRouteSampleCommand(actor kernel.Actor, orderID kernel.UUID, target order.Custodian) (RouteSampleCommand, error) {
	t, err := newSampleTarget(actor, orderID)
	if err = errors.Join(err, target.Validate()); err != nil {
		return RouteSampleCommand{}, err
	}
	return RouteSampleCommand{sampleTarget: t, target: target, guard: guard.NewConstructorGuard()}, nil
}

func (c RouteSampleCommand) Validate() error {
	return c.guard.Validate(ErrRouteSampleCommandIsNotConstructed)
}

func (c RouteSampleCommand) Target() order.Custodian {
	return c.target
}

// UpdateSampleCommand carries the manufacturer's sample fee, ETA and shipment.
type UpdateSampleCommand struct { //nolint:recvcheck //using for validation
	sampleTarget
	update order.SampleUpdate

	guard guard.ConstructorGuard
}

func NewUpdateSampleCommand(actor kernel.Actor, orderID kernel.UUID, update order.SampleUpdate) (UpdateSampleCommand, error) {
	t, err := newSampleTarget(actor, orderID)
	if err != nil {
		return UpdateSampleCommand{}, err
	}
	return UpdateSampleCommand{sampleTarget: t, update: update, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateSampleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSampleCommandIsNotConstructed)
}

func (c UpdateSampleCommand) Update() order.SampleUpdate {
	return c.update
}

// DecideSampleCommand carries the client's verdict on the sample.
type DecideSampleCommand struct { //nolint:recvcheck //using for validation
	sampleTarget
	verdict order.Decision

	guard guard.ConstructorGuard
}

func NewDecideSampleCommand(actor kernel.Actor, orderID kernel.UUID, verdict order.Decision) (DecideSampleCommand, error) {
	t, err := newSampleTarget(actor, orderID)
	var verdictErr error
	if verdict != order.DecisionApproved && verdict != order.DecisionRejected {
		verdictErr = errs.NewValueIsInvalidError("decision")
	}
	if err = errors.Join(err, verdictErr); err != nil {
		return DecideSampleCommand{}, err
	}
	return DecideSampleCommand{sampleTarget: t, verdict: verdict, guard: guard.NewConstructorGuard()}, nil
}

func (c DecideSampleCommand) Validate() error {
	return c.guard.Validate(ErrDecideSampleCommandIsNotConstructed)
}

func (c DecideSampleCommand) Verdict() order.Decision {
	return c.verdict
}
