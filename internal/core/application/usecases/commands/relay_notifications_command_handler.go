package commands

import (
	"context"
	"encoding/json"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/notification"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/metrics"
)

// NotificationEvent is the message bus payload of a notification row.
type NotificationEvent struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Recipient string    `json:"recipient"`
	PartyID   string    `json:"party_id,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// RelayNotificationsCommandHandler moves pending notification rows to the
// message bus. Rows are stamped only after the bus accepted the batch, so a
// failed publish leaves them for the next run.
type RelayNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	publisher  ports.MessagePublisher
	clock      kernel.Clock
}

func NewRelayNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	publisher ports.MessagePublisher,
	clock kernel.Clock,
) RelayNotificationsCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return RelayNotificationsCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

// Handle returns the number of relayed notifications.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (relayed int, err error) {
	ctx, done := observe(ctx, "relay_notifications")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	pending, err := repo.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	msgs := make([]ports.Message, 0, len(pending))
	for _, n := range pending {
		msg, err := toMessage(n)
		if err != nil {
			return 0, err
		}
		msgs = append(msgs, msg)
	}

	if err = h.publisher.Publish(ctx, msgs...); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	for _, n := range pending {
		if err = n.MarkPublished(now); err != nil {
			return 0, err
		}
		if err = repo.MarkPublished(ctx, n); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.NotificationsRelayed.Add(float64(len(pending)))
	return len(pending), nil
}

func toMessage(n *notification.Notification) (ports.Message, error) {
	event := NotificationEvent{
		ID:        n.ID().String(),
		OrderID:   n.OrderID().String(),
		Recipient: n.Recipient().String(),
		Kind:      n.Kind(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
	}
	if n.PartyID() != nil {
		event.PartyID = n.PartyID().String()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return ports.Message{}, err
	}
	return ports.Message{
		Key:     event.OrderID,
		Value:   payload,
		Headers: map[string]string{"kind": event.Kind, "recipient": event.Recipient},
	}, nil
}
