package queries_test

import (
	"errors"
	"testing"

	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedMargins() services.MarginConfig {
	return services.MarginConfig{ProductMarginPct: decimal.NewFromInt(60), ShippingMarginPct: decimal.NewFromInt(5)}
}

func TestCachedMarginConfigProvider_LoadsOnce(t *testing.T) {
	repo := new(MockMarginConfigRepository)
	cache := new(MockMarginConfigCache)
	mock.InOrder(
		cache.On("Get", mock.Anything).Return(services.MarginConfig{}, false, nil).Once(),
		repo.On("Load", mock.Anything).Return(storedMargins(), true, nil).Once(),
		cache.On("Set", mock.Anything, storedMargins()).Return(nil).Once(),
	)
	provider := queries.NewCachedMarginConfigProvider(repo, cache, 0, nil)

	for range 3 {
		cfg, err := provider.MarginConfig(t.Context())
		require.NoError(t, err)
		assert.True(t, cfg.ProductMarginPct.Equal(decimal.NewFromInt(60)))
	}

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCachedMarginConfigProvider_SharedCacheHit(t *testing.T) {
	repo := new(MockMarginConfigRepository)
	cache := new(MockMarginConfigCache)
	cache.On("Get", mock.Anything).Return(storedMargins(), true, nil).Once()
	provider := queries.NewCachedMarginConfigProvider(repo, cache, 0, nil)

	cfg, err := provider.MarginConfig(t.Context())

	require.NoError(t, err)
	assert.True(t, cfg.ShippingMarginPct.Equal(decimal.NewFromInt(5)))
	repo.AssertNotCalled(t, "Load", mock.Anything)
}

func TestCachedMarginConfigProvider_DefaultsWhenMissing(t *testing.T) {
	repo := new(MockMarginConfigRepository)
	repo.On("Load", mock.Anything).Return(services.MarginConfig{}, false, nil).Once()
	provider := queries.NewCachedMarginConfigProvider(repo, nil, 0, nil)

	cfg, err := provider.MarginConfig(t.Context())

	require.NoError(t, err)
	assert.True(t, cfg.ProductMarginPct.Equal(decimal.NewFromInt(80)))
	assert.True(t, cfg.ShippingMarginPct.IsZero())
}

func TestCachedMarginConfigProvider_CacheFailureFallsThrough(t *testing.T) {
	repo := new(MockMarginConfigRepository)
	cache := new(MockMarginConfigCache)
	cache.On("Get", mock.Anything).Return(services.MarginConfig{}, false, errors.New("connection refused")).Once()
	repo.On("Load", mock.Anything).Return(storedMargins(), true, nil).Once()
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	provider := queries.NewCachedMarginConfigProvider(repo, cache, 0, nil)

	cfg, err := provider.MarginConfig(t.Context())

	require.NoError(t, err)
	assert.True(t, cfg.ProductMarginPct.Equal(decimal.NewFromInt(60)))
}

func TestCachedMarginConfigProvider_RepositoryErrorIsNotCached(t *testing.T) {
	repo := new(MockMarginConfigRepository)
	repo.On("Load", mock.Anything).Return(services.MarginConfig{}, false, errors.New("db down")).Once()
	repo.On("Load", mock.Anything).Return(storedMargins(), true, nil).Once()
	provider := queries.NewCachedMarginConfigProvider(repo, nil, 0, nil)

	_, err := provider.MarginConfig(t.Context())
	require.Error(t, err)

	cfg, err := provider.MarginConfig(t.Context())
	require.NoError(t, err)
	assert.True(t, cfg.ProductMarginPct.Equal(decimal.NewFromInt(60)))
}

func TestCachedMarginConfigProvider_Invalidate(t *testing.T) {
	repo := new(MockMarginConfigRepository)
	repo.On("Load", mock.Anything).Return(services.DefaultMarginConfig(), true, nil).Once()
	repo.On("Load", mock.Anything).Return(storedMargins(), true, nil).Once()
	provider := queries.NewCachedMarginConfigProvider(repo, nil, 0, nil)

	_, err := provider.MarginConfig(t.Context())
	require.NoError(t, err)
	provider.Invalidate()
	cfg, err := provider.MarginConfig(t.Context())

	require.NoError(t, err)
	assert.True(t, cfg.ProductMarginPct.Equal(decimal.NewFromInt(60)))
	repo.AssertNumberOfCalls(t, "Load", 2)
}
