package ports

import (
	"context"

	"mfgorders/internal/core/domain/model/audit"
)

// AuditRepository appends audit entries. Entries are never changed.
type AuditRepository interface {
	Record(ctx context.Context, entry *audit.Entry) error
}
