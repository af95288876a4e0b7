package commands

import (
	"context"
	"encoding/json"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/metrics"

	"go.uber.org/zap"
)

// OrderDeletedEvent is published once a cascade delete has committed.
type OrderDeletedEvent struct {
	Type      string             `json:"type"`
	OrderID   string             `json:"order_id"`
	Number    string             `json:"number"`
	ActorID   string             `json:"actor_id"`
	DeletedAt time.Time          `json:"deleted_at"`
	Steps     []ports.DeleteStep `json:"steps"`
}

// DeleteOrderCommandHandler authorizes and runs the cascade delete of an order.
//
// Example:
//
//	report, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotPermitted):
//	    // 403
//	case errors.Is(err, errs.ErrReferentialIntegrity):
//	    // related rows still exist, nothing was deleted
//	}
type DeleteOrderCommandHandler struct {
	uowFactory DeleteOrderUoWFactory
	publisher  ports.MessagePublisher
	clock      kernel.Clock
	logger     *zap.Logger
	policy     services.AccessPolicy
}

// NewDeleteOrderCommandHandler builds the handler. publisher may be nil, in
// which case no event is emitted.
func NewDeleteOrderCommandHandler(
	uowFactory DeleteOrderUoWFactory,
	publisher ports.MessagePublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) DeleteOrderCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle deletes the order in one transaction and returns the per-table
// report. Authorization happens before any row is touched. A failed event
// publish is logged and does not undo the delete.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (report ports.DeleteReport, err error) {
	ctx, done := observe(ctx, "delete_order")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return ports.DeleteReport{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ports.DeleteReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.DeleteReport{}, err
	}

	if err = h.policy.CanDelete(cmd.Actor(), o); err != nil {
		return ports.DeleteReport{}, err
	}

	report, err = uow.OrderDeleter().Delete(ctx, o.ID())
	if err != nil {
		return report, err
	}

	if err = uow.Commit(ctx); err != nil {
		return report, err
	}

	for _, step := range report.Steps {
		metrics.CascadeDeleteRows.WithLabelValues(step.Table).Add(float64(step.Rows))
	}

	h.publish(ctx, OrderDeletedEvent{
		Type:      "order.deleted",
		OrderID:   o.ID().String(),
		Number:    o.Number(),
		ActorID:   cmd.Actor().ID().String(),
		DeletedAt: h.clock.Now().UTC(),
		Steps:     report.Steps,
	})

	return report, nil
}

func (h DeleteOrderCommandHandler) publish(ctx context.Context, event OrderDeletedEvent) {
	if h.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("encode order deleted event", zap.String("order_id", event.OrderID), zap.Error(err))
		return
	}
	if err = h.publisher.Publish(ctx, ports.Message{
		Key:     event.OrderID,
		Value:   payload,
		Headers: map[string]string{"type": event.Type},
	}); err != nil {
		h.logger.Warn("publish order deleted event", zap.String("order_id", event.OrderID), zap.Error(err))
	}
}
