package queries

import (
	"context"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAuditQueryHandler reads audit_log directly. Only staff who can see the
// order may read its trail.
type ListAuditQueryHandler struct {
	db     *gorm.DB
	orders ports.OrderRepository
	policy services.AccessPolicy
}

func NewListAuditQueryHandler(db *gorm.DB, orders ports.OrderRepository) ListAuditQueryHandler {
	return ListAuditQueryHandler{db: db, orders: orders, policy: services.NewAccessPolicy()}
}

func (h ListAuditQueryHandler) Handle(ctx context.Context, query ListAuditQuery) ([]AuditEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.CanViewAudit(query.Actor(), o); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			actor_role,
			action,
			target_type,
			target_id,
			old_value,
			new_value,
			created_at
		FROM audit_log
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AuditEntryView, 0)
	for rows.Next() {
		var (
			view                  AuditEntryView
			id, actorID, targetID uuid.UUID
			oldValue, newValue    *string
			createdAt             time.Time
		)
		if err = rows.Scan(
			&id,
			&actorID,
			&view.ActorRole,
			&view.Action,
			&view.TargetType,
			&targetID,
			&oldValue,
			&newValue,
			&createdAt,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		if view.TargetID, err = kernel.UUIDFromBytes(targetID[:]); err != nil {
			return nil, err
		}
		if oldValue != nil {
			view.OldValue = *oldValue
		}
		if newValue != nil {
			view.NewValue = *newValue
		}
		view.CreatedAt = createdAt.UTC()
		entries = append(entries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
