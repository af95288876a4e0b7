// Package notificationrepo stores order-scoped notifications until the relay
// publishes them.
package notificationrepo

import (
	"context"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/notification"
	"mfgorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Recipient   string     `gorm:"size:16;not null"`
	PartyID     *uuid.UUID `gorm:"type:uuid"`
	Kind        string     `gorm:"size:64;not null"`
	Message     string     `gorm:"type:text"`
	CreatedAt   time.Time
	PublishedAt *time.Time `gorm:"index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:          n.ID().Bytes(),
		OrderID:     n.OrderID().Bytes(),
		Recipient:   n.Recipient().String(),
		Kind:        n.Kind(),
		Message:     n.Message(),
		CreatedAt:   n.CreatedAt(),
		PublishedAt: n.PublishedAt(),
	}
	if party := n.PartyID(); party != nil {
		raw := party.Bytes()
		dto.PartyID = &raw
	}
	return dto
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	recipient, err := order.ParseCustodian(dto.Recipient)
	if err != nil {
		return nil, err
	}
	var partyID *kernel.UUID
	if dto.PartyID != nil {
		p, pErr := kernel.UUIDFromBytes(dto.PartyID[:])
		if pErr != nil {
			return nil, pErr
		}
		partyID = &p
	}
	return notification.RestoreNotification(
		id, orderID, recipient, partyID, dto.Kind, dto.Message, dto.CreatedAt.UTC(), dto.PublishedAt,
	), nil
}

// GormNotificationRepository implements ports.NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	dto := fromDomain(n)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListUnpublished locks the returned rows, skipping rows another relay holds.
func (r *GormNotificationRepository) ListUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at").
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *GormNotificationRepository) MarkPublished(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Update("published_at", n.PublishedAt()).Error
}
