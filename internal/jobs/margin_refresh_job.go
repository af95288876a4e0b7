package jobs

import (
	"context"
	"time"

	"mfgorders/internal/core/domain/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type marginProvider interface {
	Invalidate()
	MarginConfig(ctx context.Context) (services.MarginConfig, error)
}

// MarginRefreshJob forgets the memoized margin config and loads it again, so
// a change written by another instance is picked up without a restart.
type MarginRefreshJob struct {
	provider marginProvider
	spec     string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewMarginRefreshJob(provider marginProvider, spec string, logger *zap.Logger) *MarginRefreshJob {
	return &MarginRefreshJob{
		provider: provider,
		spec:     spec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "margin_refresh_job")),
	}
}

func (j *MarginRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("margin refresh job started", zap.String("schedule", j.spec))
	return nil
}

func (j *MarginRefreshJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	j.provider.Invalidate()
	cfg, err := j.provider.MarginConfig(ctx)
	if err != nil {
		j.logger.Warn("margin reload failed", zap.Error(err))
		return
	}
	j.logger.Debug("margin config reloaded",
		zap.String("product_margin_pct", cfg.ProductMarginPct.String()),
		zap.String("shipping_margin_pct", cfg.ShippingMarginPct.String()))
}

func (j *MarginRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("margin refresh job stopped")
}
