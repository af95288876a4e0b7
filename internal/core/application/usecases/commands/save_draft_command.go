package commands

import (
	"errors"
	"fmt"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/guard"
)

var ErrSaveDraftCommandIsNotConstructed = errors.New(
	"SaveDraftCommand must be created via NewSaveDraftCommand constructor",
)

// SaveDraftCommand replaces the editable contents of a draft. ExpectedVersion
// is the version the editor loaded; a newer stored version rejects the save.
type SaveDraftCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	expectedVersion int
	name            string
	clientID        *kernel.UUID
	manufacturerID  *kernel.UUID
	products        []order.ProductSpec

	guard guard.ConstructorGuard
}

func NewSaveDraftCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	expectedVersion int,
	name string,
	clientID, manufacturerID *kernel.UUID,
	products []order.ProductSpec,
) (SaveDraftCommand, error) {
	cmd := SaveDraftCommand{
		name:           name,
		clientID:       clientID,
		manufacturerID: manufacturerID,
		products:       products,
		guard:          guard.NewConstructorGuard(),
	}

	var versionErr error
	if expectedVersion < 0 {
		versionErr = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is less than 0", expectedVersion))
	}
	if err := errors.Join(actor.Validate(), orderID.Validate(), versionErr); err != nil {
		return SaveDraftCommand{}, err
	}

	cmd.actor = actor
	cmd.orderID = orderID
	cmd.expectedVersion = expectedVersion
	return cmd, nil
}

func (c SaveDraftCommand) Validate() error {
	return c.guard.Validate(ErrSaveDraftCommandIsNotConstructed)
}

func (c SaveDraftCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SaveDraftCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SaveDraftCommand) ExpectedVersion() int {
	return c.expectedVersion
}

func (c SaveDraftCommand) Name() string {
	return c.name
}

func (c SaveDraftCommand) ClientID() *kernel.UUID {
	return c.clientID
}

func (c SaveDraftCommand) ManufacturerID() *kernel.UUID {
	return c.manufacturerID
}

func (c SaveDraftCommand) Products() []order.ProductSpec {
	return c.products
}
