// Package cascade removes an order and its dependent rows in dependency order
// inside the caller's transaction.
package cascade

import (
	"context"
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const foreignKeyViolation = "23503"

type step struct {
	table    string
	query    string
	optional bool
}

// Steps run in this order. Optional tables belong to neighbouring services
// and may be absent.
var steps = []step{
	{table: "order_media", query: "DELETE FROM order_media WHERE order_id = ?"},
	{table: "order_items", query: "DELETE FROM order_items WHERE product_id IN (SELECT id FROM order_products WHERE order_id = ?)"},
	{table: "audit_log", query: "DELETE FROM audit_log WHERE order_id = ?"},
	{table: "notifications", query: "DELETE FROM notifications WHERE order_id = ?"},
	{table: "workflow_logs", query: "DELETE FROM workflow_logs WHERE order_id = ?", optional: true},
	{table: "manufacturer_notifications", query: "DELETE FROM manufacturer_notifications WHERE order_id = ?", optional: true},
	{table: "order_products", query: "DELETE FROM order_products WHERE order_id = ?"},
	{table: "orders", query: "DELETE FROM orders WHERE id = ?"},
}

// GormOrderDeleter implements ports.OrderDeleter. db must be inside a
// transaction for the savepoints around optional steps to apply.
type GormOrderDeleter struct {
	db *gorm.DB
}

func NewGormOrderDeleter(db *gorm.DB) *GormOrderDeleter {
	return &GormOrderDeleter{db: db}
}

func (d *GormOrderDeleter) Delete(ctx context.Context, orderID kernel.UUID) (ports.DeleteReport, error) {
	report := ports.DeleteReport{OrderID: orderID}
	if err := orderID.Validate(); err != nil {
		return report, err
	}

	db := d.db.WithContext(ctx)
	id := orderID.String()

	for _, s := range steps {
		if s.optional {
			report.Steps = append(report.Steps, d.optional(db, s, id))
			continue
		}

		result := db.Exec(s.query, id)
		if result.Error != nil {
			return report, classify(s.table, result.Error)
		}
		report.Steps = append(report.Steps, ports.DeleteStep{Table: s.table, Rows: result.RowsAffected})

		if s.table == "orders" && result.RowsAffected == 0 {
			return report, errs.NewObjectNotFoundError("order", id)
		}
	}

	return report, nil
}

func (d *GormOrderDeleter) optional(db *gorm.DB, s step, id string) ports.DeleteStep {
	res := ports.DeleteStep{Table: s.table, Optional: true}
	if !db.Migrator().HasTable(s.table) {
		res.Skipped = true
		return res
	}

	savepoint := "cascade_" + s.table
	if err := db.SavePoint(savepoint).Error; err != nil {
		res.Skipped = true
		res.Err = err.Error()
		return res
	}

	result := db.Exec(s.query, id)
	if result.Error != nil {
		_ = db.RollbackTo(savepoint)
		res.Skipped = true
		res.Err = result.Error.Error()
		return res
	}
	res.Rows = result.RowsAffected
	return res
}

func classify(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return errs.NewReferentialIntegrityError(table+" ("+pgErr.ConstraintName+")", err)
	}
	return err
}
