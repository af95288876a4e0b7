// Package configrepo reads and writes the margin keys of system_config.
package configrepo

import (
	"context"
	"fmt"

	"mfgorders/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ProductMarginKey  = "product_margin_pct"
	ShippingMarginKey = "shipping_margin_pct"
)

// SettingDTO is a system_config row.
type SettingDTO struct {
	Name  string `gorm:"size:64;primaryKey"`
	Value string `gorm:"type:text"`
}

func (SettingDTO) TableName() string {
	return "system_config"
}

// GormMarginConfigRepository implements ports.MarginConfigRepository. A key
// that is missing keeps its default; the config counts as found when at
// least one key is stored.
type GormMarginConfigRepository struct {
	db *gorm.DB
}

func NewGormMarginConfigRepository(db *gorm.DB) *GormMarginConfigRepository {
	return &GormMarginConfigRepository{db: db}
}

func (r *GormMarginConfigRepository) Load(ctx context.Context) (services.MarginConfig, bool, error) {
	var rows []SettingDTO
	if err := r.db.WithContext(ctx).
		Where("name IN ?", []string{ProductMarginKey, ShippingMarginKey}).
		Find(&rows).Error; err != nil {
		return services.MarginConfig{}, false, err
	}

	cfg := services.DefaultMarginConfig()
	if len(rows) == 0 {
		return cfg, false, nil
	}

	for _, row := range rows {
		v, err := decimal.NewFromString(row.Value)
		if err != nil {
			return services.MarginConfig{}, false, fmt.Errorf("system_config %s: %w", row.Name, err)
		}
		switch row.Name {
		case ProductMarginKey:
			cfg.ProductMarginPct = v
		case ShippingMarginKey:
			cfg.ShippingMarginPct = v
		}
	}
	return cfg, true, nil
}

func (r *GormMarginConfigRepository) Save(ctx context.Context, cfg services.MarginConfig) error {
	rows := []SettingDTO{
		{Name: ProductMarginKey, Value: cfg.ProductMarginPct.String()},
		{Name: ShippingMarginKey, Value: cfg.ShippingMarginPct.String()},
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rows).Error
}
