package ports

import (
	"context"

	"mfgorders/internal/core/domain/model/notification"
)

// NotificationRepository stores order-scoped notifications until relayed.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// ListUnpublished returns up to limit notifications without a publish
	// stamp, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error)

	// MarkPublished persists the publish stamp of n.
	MarkPublished(ctx context.Context, n *notification.Notification) error
}
