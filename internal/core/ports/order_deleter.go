package ports

import (
	"context"

	"mfgorders/internal/core/domain/model/kernel"
)

// DeleteStep reports one table touched by a cascade delete.
type DeleteStep struct {
	Table    string `json:"table"`
	Rows     int64  `json:"rows"`
	Optional bool   `json:"optional"`
	// Skipped is set for optional tables that are missing or failed.
	Skipped bool   `json:"skipped"`
	Err     string `json:"error,omitempty"`
}

// DeleteReport lists the steps of a cascade delete in execution order.
type DeleteReport struct {
	OrderID kernel.UUID
	Steps   []DeleteStep
}

// OrderDeleter removes an order and every dependent row in dependency order.
// A failed mandatory step aborts the delete with either an
// errs.ReferentialIntegrityError or the underlying error; failures of
// optional steps are recorded in the report and swallowed.
type OrderDeleter interface {
	Delete(ctx context.Context, orderID kernel.UUID) (DeleteReport, error)
}
