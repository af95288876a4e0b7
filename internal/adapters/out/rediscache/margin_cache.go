// Package rediscache shares the margin configuration between service
// instances through redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mfgorders/internal/core/domain/services"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const DefaultKey = "mfgorders:margin_config"

type marginPayload struct {
	ProductMarginPct  decimal.Decimal `json:"product_margin_pct"`
	ShippingMarginPct decimal.Decimal `json:"shipping_margin_pct"`
}

// MarginCache implements ports.MarginConfigCache.
type MarginCache struct {
	client goredis.Cmdable
	key    string
	ttl    time.Duration
}

// NewMarginCache stores the config under key for ttl. A zero ttl keeps the
// value until it is overwritten or deleted.
func NewMarginCache(client goredis.Cmdable, key string, ttl time.Duration) *MarginCache {
	if key == "" {
		key = DefaultKey
	}
	return &MarginCache{client: client, key: key, ttl: ttl}
}

func (c *MarginCache) Get(ctx context.Context) (services.MarginConfig, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return services.MarginConfig{}, false, nil
	}
	if err != nil {
		return services.MarginConfig{}, false, err
	}

	var payload marginPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return services.MarginConfig{}, false, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return services.MarginConfig{
		ProductMarginPct:  payload.ProductMarginPct,
		ShippingMarginPct: payload.ShippingMarginPct,
	}, true, nil
}

func (c *MarginCache) Set(ctx context.Context, cfg services.MarginConfig) error {
	raw, err := json.Marshal(marginPayload{
		ProductMarginPct:  cfg.ProductMarginPct,
		ShippingMarginPct: cfg.ShippingMarginPct,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, raw, c.ttl).Err()
}

// Delete drops the shared copy so the next reader reloads from the database.
func (c *MarginCache) Delete(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
