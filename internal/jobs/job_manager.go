package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Schedule holds the cron expressions (with seconds) of the jobs. Empty
// fields take the defaults.
type Schedule struct {
	Relay         string
	RelayBatch    int
	MarginRefresh string
}

const (
	DefaultRelaySchedule  = "*/10 * * * * *"
	DefaultRelayBatch     = 100
	DefaultMarginSchedule = "0 */5 * * * *"
)

func (s Schedule) withDefaults() Schedule {
	if s.Relay == "" {
		s.Relay = DefaultRelaySchedule
	}
	if s.RelayBatch == 0 {
		s.RelayBatch = DefaultRelayBatch
	}
	if s.MarginRefresh == "" {
		s.MarginRefresh = DefaultMarginSchedule
	}
	return s
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	relayJob  *NotificationRelayJob
	marginJob *MarginRefreshJob
}

func NewJobManager(
	relay relayHandler,
	margins marginProvider,
	schedule Schedule,
	logger *zap.Logger,
) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule = schedule.withDefaults()
	return &JobManager{
		relayJob:  NewNotificationRelayJob(relay, schedule.Relay, schedule.RelayBatch, logger),
		marginJob: NewMarginRefreshJob(margins, schedule.MarginRefresh, logger),
	}
}

// StartAll starts all scheduled jobs. Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.relayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}

	if err := jm.marginJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.relayJob.Stop()
		return fmt.Errorf("failed to start margin refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.marginJob.Stop()
	jm.relayJob.Stop()
}
