// Package ports defines the contracts between the order core and its
// infrastructure: persistence, caching, blob storage and messaging.
package ports

import (
	"context"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
)

// OrderFilter narrows List. Nil fields do not filter.
type OrderFilter struct {
	CreatedBy       *kernel.UUID
	ClientID        *kernel.UUID
	ManufacturerID  *kernel.UUID
	ExcludeStatuses []order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
// Loaded orders always carry their products, items, sample and media.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write succeeds only if
	// the stored version still equals aggregate.Version(), and stores
	// Version()+1; otherwise it returns an errs.ConflictError. Products, items
	// and media are diffed against what is stored: missing rows are deleted,
	// the rest upserted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByProductID retrieves the order owning the product.
	GetByProductID(ctx context.Context, productID kernel.UUID) (*order.Order, error)

	// GetByItemID retrieves the order owning the item.
	GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error)

	// List returns orders matching filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
