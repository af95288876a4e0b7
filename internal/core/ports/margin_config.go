package ports

import (
	"context"

	"mfgorders/internal/core/domain/services"
)

// MarginConfigRepository reads margin percentages from system configuration.
// found is false when no margin keys are stored.
type MarginConfigRepository interface {
	Load(ctx context.Context) (cfg services.MarginConfig, found bool, err error)
	Save(ctx context.Context, cfg services.MarginConfig) error
}

// MarginConfigCache is a shared cache in front of MarginConfigRepository.
type MarginConfigCache interface {
	Get(ctx context.Context) (cfg services.MarginConfig, found bool, err error)
	Set(ctx context.Context, cfg services.MarginConfig) error
}

// MarginConfigProvider returns the process-wide margin configuration. It never
// fails for missing configuration; defaults are returned instead.
type MarginConfigProvider interface {
	MarginConfig(ctx context.Context) (services.MarginConfig, error)
}
