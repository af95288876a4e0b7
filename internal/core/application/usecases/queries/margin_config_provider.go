package queries

import (
	"context"
	"sync"
	"time"

	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"

	"go.uber.org/zap"
)

// CachedMarginConfigProvider resolves the margin configuration through an
// in-process copy, then the shared cache, then system configuration. Missing
// configuration resolves to services.DefaultMarginConfig.
//
// A ttl of zero keeps the first resolved value for the life of the process.
type CachedMarginConfigProvider struct {
	repo   ports.MarginConfigRepository
	cache  ports.MarginConfigCache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	cfg      *services.MarginConfig
	loadedAt time.Time
}

// NewCachedMarginConfigProvider builds the provider. cache may be nil.
func NewCachedMarginConfigProvider(
	repo ports.MarginConfigRepository,
	cache ports.MarginConfigCache,
	ttl time.Duration,
	logger *zap.Logger,
) *CachedMarginConfigProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedMarginConfigProvider{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "margin_config")),
		now:    time.Now,
	}
}

func (p *CachedMarginConfigProvider) MarginConfig(ctx context.Context) (services.MarginConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg != nil && (p.ttl == 0 || p.now().Sub(p.loadedAt) < p.ttl) {
		return *p.cfg, nil
	}

	cfg, err := p.resolve(ctx)
	if err != nil {
		return services.MarginConfig{}, err
	}
	p.cfg = &cfg
	p.loadedAt = p.now()
	return cfg, nil
}

// Invalidate drops the in-process copy so the next call reads through.
func (p *CachedMarginConfigProvider) Invalidate() {
	p.mu.Lock()
	p.cfg = nil
	p.mu.Unlock()
}

func (p *CachedMarginConfigProvider) resolve(ctx context.Context) (services.MarginConfig, error) {
	if p.cache != nil {
		cfg, found, err := p.cache.Get(ctx)
		switch {
		case err != nil:
			p.logger.Warn("margin cache read failed", zap.Error(err))
		case found:
			return cfg, nil
		}
	}

	cfg, found, err := p.repo.Load(ctx)
	if err != nil {
		return services.MarginConfig{}, err
	}
	if !found {
		cfg = services.DefaultMarginConfig()
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, cfg); err != nil {
			p.logger.Warn("margin cache write failed", zap.Error(err))
		}
	}
	return cfg, nil
}
