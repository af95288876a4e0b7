package commands

import (
	"errors"
	"strings"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/guard"
)

var (
	ErrRaiseQuestionCommandIsNotConstructed = errors.New(
		"RaiseQuestionCommand must be created via NewRaiseQuestionCommand constructor",
	)
	ErrResolveQuestionCommandIsNotConstructed = errors.New(
		"ResolveQuestionCommand must be created via NewResolveQuestionCommand constructor",
	)
)

// RaiseQuestionCommand flags a product with a question for staff.
type RaiseQuestionCommand struct { //nolint:recvcheck //using for validation
	productTarget
	note string

	guard guard.ConstructorGuard
}

func NewRaiseQuestionCommand(actor kernel.Actor, productID kernel.UUID, note string) (RaiseQuestionCommand, error) {
	t, err := newProductTarget(actor, productID)
	var noteErr error
	if strings.TrimSpace(note) == "" {
		noteErr = errs.NewValueIsRequiredError("question note")
	}
	if err = errors.Join(err, noteErr); err != nil {
		return RaiseQuestionCommand{}, err
	}
	return RaiseQuestionCommand{productTarget: t, note: strings.TrimSpace(note), guard: guard.NewConstructorGuard()}, nil
}

func (c RaiseQuestionCommand) Validate() error {
	return c.guard.Validate(ErrRaiseQuestionCommandIsNotConstructed)
}

func (c RaiseQuestionCommand) Note() string {
	return c.note
}

// ResolveQuestionCommand clears an open question.
type ResolveQuestionCommand struct { //nolint:recvcheck //using for validation
	productTarget

	guard guard.ConstructorGuard
}

func NewResolveQuestionCommand(actor kernel.Actor, productID kernel.UUID) (ResolveQuestionCommand, error) {
	t, err := newProductTarget(actor, productID)
	if err != nil {
		return ResolveQuestionCommand{}, err
	}
	return ResolveQuestionCommand{productTarget: t, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveQuestionCommand) Validate() error {
	return c.guard.Validate(ErrResolveQuestionCommandIsNotConstructed)
}
