package commands

import (
	"context"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"
)

// notice is a notification produced by a command.
type notice struct {
	recipient order.Custodian
	kind      string
	message   string
}

// outcome is what a mutation reports back for recording.
type outcome struct {
	changes []change
	notices []notice
}

// loader fetches the order a command works on.
type loader func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error)

func byOrder(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.Get(ctx, id)
	}
}

func byProduct(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByProductID(ctx, id)
	}
}

func byItem(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByItemID(ctx, id)
	}
}

// mutate runs one order change in a single transaction: load, authorize and
// mutate through fn, persist the aggregate, then write the audit entries and
// notifications fn reported.
func mutate(
	ctx context.Context,
	factory OrderUoWFactory,
	actor kernel.Actor,
	now time.Time,
	load loader,
	fn func(o *order.Order) (outcome, error),
) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := load(ctx, orderRepo)
	if err != nil {
		return err
	}

	out, err := fn(o)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if len(out.changes) > 0 {
		auditRepo := uow.AuditRepository()
		for _, c := range out.changes {
			if err = record(ctx, auditRepo, actor, o, c, now); err != nil {
				return err
			}
		}
	}

	if len(out.notices) > 0 {
		notificationRepo := uow.NotificationRepository()
		for _, n := range out.notices {
			if err = notify(ctx, notificationRepo, o, n.recipient, n.kind, n.message, now); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
