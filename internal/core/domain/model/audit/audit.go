// Package audit models the append-only trail of state-changing actions.
package audit

import (
	"errors"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"
)

// Action names a recorded state change. Values are persisted.
type Action string

const (
	OrderCreated      Action = "order.created"
	DraftSaved        Action = "order.draft_saved"
	OrderTransitioned Action = "order.transitioned"
	ProductRouted     Action = "product.routed"
	ProductApproved   Action = "product.client_approved"
	ProductQuoted     Action = "product.quote_updated"
	ProductAdvanced   Action = "product.status_changed"
	QuestionRaised    Action = "product.question_raised"
	QuestionResolved  Action = "product.question_resolved"
	ShippingSelected  Action = "product.shipping_selected"
	SampleRouted      Action = "sample.routed"
	SampleUpdated     Action = "sample.updated"
	SampleDecided     Action = "sample.decided"
	MediaUploaded     Action = "media.uploaded"
)

const itemDecisionPrefix = "item."

// ItemDecided returns the action for a decision on the named item field,
// e.g. "item.admin_status".
func ItemDecided(field string) Action {
	return Action(itemDecisionPrefix + field)
}

// TargetType is the kind of record an entry is about.
type TargetType string

const (
	TargetOrder   TargetType = "order"
	TargetProduct TargetType = "product"
	TargetItem    TargetType = "item"
	TargetSample  TargetType = "sample"
)

// Entry is one audit record. Entries are never updated.
type Entry struct {
	id         kernel.UUID
	actorID    kernel.UUID
	actorRole  kernel.Role
	action     Action
	targetType TargetType
	targetID   kernel.UUID
	orderID    kernel.UUID
	oldValue   string
	newValue   string
	createdAt  time.Time
}

// NewEntry records that actor changed target from oldValue to newValue.
func NewEntry(
	actor kernel.Actor,
	action Action,
	targetType TargetType,
	targetID, orderID kernel.UUID,
	oldValue, newValue string,
	at time.Time,
) (*Entry, error) {
	var actionErr error
	if action == "" {
		actionErr = errs.NewValueIsRequiredError("audit action")
	}
	if err := errors.Join(actor.Validate(), targetID.Validate(), orderID.Validate(), actionErr); err != nil {
		return nil, err
	}
	return &Entry{
		id:         kernel.NewUUID(),
		actorID:    actor.ID(),
		actorRole:  actor.Role(),
		action:     action,
		targetType: targetType,
		targetID:   targetID,
		orderID:    orderID,
		oldValue:   oldValue,
		newValue:   newValue,
		createdAt:  at.UTC(),
	}, nil
}

// RestoreEntry rehydrates an entry from storage.
func RestoreEntry(
	id, actorID kernel.UUID,
	actorRole kernel.Role,
	action Action,
	targetType TargetType,
	targetID, orderID kernel.UUID,
	oldValue, newValue string,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:         id,
		actorID:    actorID,
		actorRole:  actorRole,
		action:     action,
		targetType: targetType,
		targetID:   targetID,
		orderID:    orderID,
		oldValue:   oldValue,
		newValue:   newValue,
		createdAt:  createdAt,
	}
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

func (e *Entry) ActorRole() kernel.Role {
	return e.actorRole
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) TargetType() TargetType {
	return e.targetType
}

func (e *Entry) TargetID() kernel.UUID {
	return e.targetID
}

func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

func (e *Entry) OldValue() string {
	return e.oldValue
}

func (e *Entry) NewValue() string {
	return e.newValue
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
