package queries

import (
	"errors"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/guard"
)

var ErrListAuditQueryIsNotConstructed = errors.New(
	"ListAuditQuery must be created via NewListAuditQuery constructor",
)

// ListAuditQuery reads the audit trail of one order, oldest first.
type ListAuditQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAuditQuery(actor kernel.Actor, orderID kernel.UUID) (ListAuditQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ListAuditQuery{}, err
	}
	return ListAuditQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditQuery) Validate() error {
	return q.guard.Validate(ErrListAuditQueryIsNotConstructed)
}

func (q ListAuditQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListAuditQuery) OrderID() kernel.UUID {
	return q.orderID
}

// AuditEntryView is one row of the audit trail.
type AuditEntryView struct {
	ID         kernel.UUID
	ActorID    kernel.UUID
	ActorRole  string
	Action     string
	TargetType string
	TargetID   kernel.UUID
	OldValue   string
	NewValue   string
	CreatedAt  time.Time
}
