package commands

import (
	"errors"
	"strings"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand opens a new order. Staff open drafts; a client opens a
// client request bound to their own client reference, whatever clientID says.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, "Spring tote run", &clientID, &manufacturerID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	name           string
	clientID       *kernel.UUID
	manufacturerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the actor and the order name.
func NewCreateOrderCommand(
	actor kernel.Actor,
	name string,
	clientID, manufacturerID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		clientID:       clientID,
		manufacturerID: manufacturerID,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setName(name),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Name() string {
	return c.name
}

func (c CreateOrderCommand) ClientID() *kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) ManufacturerID() *kernel.UUID {
	return c.manufacturerID
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
