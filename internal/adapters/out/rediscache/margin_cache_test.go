package rediscache_test

import (
	"testing"
	"time"

	"mfgorders/internal/adapters/out/rediscache"
	"mfgorders/internal/core/domain/services"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*rediscache.MarginCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return rediscache.NewMarginCache(client, "", ttl), mr
}

func TestMarginCache_MissThenHit(t *testing.T) {
	ctx := t.Context()
	cache, _ := newCache(t, time.Minute)

	_, found, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	want := services.MarginConfig{
		ProductMarginPct:  decimal.RequireFromString("62.5"),
		ShippingMarginPct: decimal.NewFromInt(10),
	}
	require.NoError(t, cache.Set(ctx, want))

	got, found, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, want.ProductMarginPct.Equal(got.ProductMarginPct))
	assert.True(t, want.ShippingMarginPct.Equal(got.ShippingMarginPct))
}

func TestMarginCache_Expires(t *testing.T) {
	ctx := t.Context()
	cache, mr := newCache(t, time.Minute)
	require.NoError(t, cache.Set(ctx, services.DefaultMarginConfig()))

	assert.Equal(t, time.Minute, mr.TTL(rediscache.DefaultKey))
	mr.FastForward(2 * time.Minute)

	_, found, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMarginCache_Delete(t *testing.T) {
	ctx := t.Context()
	cache, _ := newCache(t, 0)
	require.NoError(t, cache.Set(ctx, services.DefaultMarginConfig()))

	require.NoError(t, cache.Delete(ctx))

	_, found, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMarginCache_CorruptValue(t *testing.T) {
	cache, mr := newCache(t, 0)
	require.NoError(t, mr.Set(rediscache.DefaultKey, "{not json"))

	_, _, err := cache.Get(t.Context())

	require.Error(t, err)
	assert.Contains(t, err.Error(), rediscache.DefaultKey)
}

func TestMarginCache_ServerDown(t *testing.T) {
	cache, mr := newCache(t, 0)
	mr.Close()

	_, _, err := cache.Get(t.Context())

	assert.Error(t, err)
}
