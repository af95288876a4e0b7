// Package commands contains business operations that modify order state.
// Every command is built through its constructor, authorized against the
// actor it carries and executed inside one unit of work, together with the
// audit entries and notifications it produces.
package commands

import (
	"context"

	"mfgorders/internal/core/ports"
)

// Unit of Work interfaces give command handlers access to transaction-bound
// repositories. Each handler asks only for what it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AuditRepoFactory provides access to the audit log within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// NotificationRepoFactory provides access to notification rows within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderDeleterFactory provides access to the cascade deleter within a transaction.
	OrderDeleterFactory interface {
		OrderDeleter() ports.OrderDeleter
	}

	// OrderUoW manages transactions for commands that change an order and
	// record what they changed.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate o
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.AuditRepository().Record(ctx, entry)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
		NotificationRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeleteOrderUoW manages the transaction of a cascade delete.
	DeleteOrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderDeleterFactory
	}

	// DeleteOrderUoWFactory creates new delete unit of work instances.
	DeleteOrderUoWFactory interface {
		Create() DeleteOrderUoW
	}

	// NotificationUoW manages transactions of the notification relay.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
