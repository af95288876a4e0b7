package jobs

import (
	"context"
	"time"

	"mfgorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type relayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (int, error)
}

// NotificationRelayJob hands pending notifications to the message bus on a
// schedule. Runs never overlap.
type NotificationRelayJob struct {
	handler   relayHandler
	spec      string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewNotificationRelayJob(handler relayHandler, spec string, batchSize int, logger *zap.Logger) *NotificationRelayJob {
	logger = logger.With(zap.String("component", "notification_relay_job"))
	return &NotificationRelayJob{
		handler:   handler,
		spec:      spec,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("notification relay job started", zap.String("schedule", j.spec))
	return nil
}

// RunOnce relays one batch and returns how many notifications were published.
func (j *NotificationRelayJob) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.Error("invalid relay batch size", zap.Int("batch_size", j.batchSize), zap.Error(err))
		return 0
	}
	relayed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("notification relay failed", zap.Error(err))
		return 0
	}
	if relayed > 0 {
		j.logger.Debug("notifications relayed", zap.Int("count", relayed))
	}
	return relayed
}

func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification relay job stopped")
}
