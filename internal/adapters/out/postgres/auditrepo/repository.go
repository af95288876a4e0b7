// Package auditrepo appends audit entries to audit_log.
package auditrepo

import (
	"context"
	"time"

	"mfgorders/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryDTO is the audit_log row. Rows are inserted once and never updated.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ActorRole  string    `gorm:"size:32"`
	Action     string    `gorm:"size:64;not null"`
	TargetType string    `gorm:"size:16;not null"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null"`
	OldValue   *string   `gorm:"type:text"`
	NewValue   *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index"`
}

func (EntryDTO) TableName() string {
	return "audit_log"
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromDomain(e *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:         e.ID().Bytes(),
		OrderID:    e.OrderID().Bytes(),
		ActorID:    e.ActorID().Bytes(),
		ActorRole:  e.ActorRole().String(),
		Action:     string(e.Action()),
		TargetType: string(e.TargetType()),
		TargetID:   e.TargetID().Bytes(),
		OldValue:   optionalText(e.OldValue()),
		NewValue:   optionalText(e.NewValue()),
		CreatedAt:  e.CreatedAt(),
	}
}

// GormAuditRepository implements ports.AuditRepository.
type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Record(ctx context.Context, entry *audit.Entry) error {
	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
