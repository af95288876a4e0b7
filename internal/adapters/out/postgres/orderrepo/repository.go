package orderrepo

import (
	"context"
	"errors"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// NewGormOrderRepository creates a new GORM order repository. tracker may be
// nil for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its products, items and media.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row guarded by its version and reconciles the child
// rows with the aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	next := dto
	next.Version = dto.Version + 1
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if err := r.syncProducts(db, dto); err != nil {
		return err
	}
	if err := r.syncMedia(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var stored []int
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Pluck("version", &stored).Error; err != nil {
		return err
	}
	if len(stored) == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConflictError("version", stored[0])
}

func (r *GormOrderRepository) syncProducts(db *gorm.DB, dto OrderDTO) error {
	keep := make([]uuid.UUID, 0, len(dto.Products))
	var items []ItemDTO
	for _, p := range dto.Products {
		keep = append(keep, p.ID)
		items = append(items, p.Items...)
	}

	removed := db.Model(&ProductDTO{}).Select("id").Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		removed = removed.Where("id NOT IN ?", keep)
	}
	if err := db.Where("product_id IN (?)", removed).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("product_id IN (?)", removed).Delete(&MediaDTO{}).Error; err != nil {
		return err
	}
	stale := db.Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&ProductDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Products) == 0 {
		return nil
	}

	if err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto.Products).Error; err != nil {
		return err
	}

	keepItems := make([]uuid.UUID, 0, len(items))
	for _, i := range items {
		keepItems = append(keepItems, i.ID)
	}
	staleItems := db.Where("product_id IN ?", keep)
	if len(keepItems) > 0 {
		staleItems = staleItems.Where("id NOT IN ?", keepItems)
	}
	if err := staleItems.Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&items).Error
}

func (r *GormOrderRepository) syncMedia(db *gorm.DB, dto OrderDTO) error {
	keep := make([]uuid.UUID, 0, len(dto.Media))
	for _, m := range dto.Media {
		keep = append(keep, m.ID)
	}
	stale := db.Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&MediaDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Media) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Media).Error
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Products.Items").Preload("Media")
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByProductID retrieves the order owning the product.
func (r *GormOrderRepository) GetByProductID(ctx context.Context, productID kernel.UUID) (*order.Order, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	owner := r.db.Model(&ProductDTO{}).Select("order_id").Where("id = ?", productID.Bytes())
	return r.getOwner(ctx, owner, "product", productID)
}

// GetByItemID retrieves the order owning the item.
func (r *GormOrderRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	owner := r.db.Model(&ProductDTO{}).
		Select("order_products.order_id").
		Joins("JOIN order_items ON order_items.product_id = order_products.id").
		Where("order_items.id = ?", itemID.Bytes())
	return r.getOwner(ctx, owner, "item", itemID)
}

func (r *GormOrderRepository) getOwner(ctx context.Context, owner *gorm.DB, param string, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	if err := r.preloaded(ctx).Where("id IN (?)", owner).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// List returns orders matching filter, newest first.
func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	q := r.preloaded(ctx)
	if filter.CreatedBy != nil {
		q = q.Where("created_by = ?", filter.CreatedBy.Bytes())
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", filter.ClientID.Bytes())
	}
	if filter.ManufacturerID != nil {
		q = q.Where("manufacturer_id = ?", filter.ManufacturerID.Bytes())
	}
	if len(filter.ExcludeStatuses) > 0 {
		excluded := make([]string, 0, len(filter.ExcludeStatuses))
		for _, s := range filter.ExcludeStatuses {
			excluded = append(excluded, s.String())
		}
		q = q.Where("status NOT IN ?", excluded)
	}

	var dtos []OrderDTO
	if err := q.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
