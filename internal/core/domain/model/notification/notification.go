// Package notification models order-scoped messages for the party that just
// received custody of a product or sample. Rows are relayed to the message
// bus by a background job; delivery is out of scope.
package notification

import (
	"errors"
	"strings"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/pkg/errs"
)

// Notification is addressed to a custodian of an order, optionally narrowed
// to the manufacturer or client party.
type Notification struct {
	id          kernel.UUID
	orderID     kernel.UUID
	recipient   order.Custodian
	partyID     *kernel.UUID
	kind        string
	message     string
	createdAt   time.Time
	publishedAt *time.Time
}

func NewNotification(
	orderID kernel.UUID,
	recipient order.Custodian,
	partyID *kernel.UUID,
	kind, message string,
	at time.Time,
) (*Notification, error) {
	var kindErr error
	if strings.TrimSpace(kind) == "" {
		kindErr = errs.NewValueIsRequiredError("notification kind")
	}
	if err := errors.Join(orderID.Validate(), recipient.Validate(), kindErr); err != nil {
		return nil, err
	}
	return &Notification{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		recipient: recipient,
		partyID:   partyID,
		kind:      kind,
		message:   message,
		createdAt: at.UTC(),
	}, nil
}

func RestoreNotification(
	id, orderID kernel.UUID,
	recipient order.Custodian,
	partyID *kernel.UUID,
	kind, message string,
	createdAt time.Time,
	publishedAt *time.Time,
) *Notification {
	return &Notification{
		id:          id,
		orderID:     orderID,
		recipient:   recipient,
		partyID:     partyID,
		kind:        kind,
		message:     message,
		createdAt:   createdAt,
		publishedAt: publishedAt,
	}
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

func (n *Notification) Recipient() order.Custodian {
	return n.recipient
}

func (n *Notification) PartyID() *kernel.UUID {
	return n.partyID
}

func (n *Notification) Kind() string {
	return n.kind
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) PublishedAt() *time.Time {
	return n.publishedAt
}

// MarkPublished stamps the relay time; a notification is published once.
func (n *Notification) MarkPublished(at time.Time) error {
	if n.publishedAt != nil {
		return errs.NewConflictError("notification", "published")
	}
	t := at.UTC()
	n.publishedAt = &t
	return nil
}
