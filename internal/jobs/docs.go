// Package jobs provides scheduled background tasks of the order service.
//
// Jobs run on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// 1. NotificationRelayJob - publishes pending notification rows to the message bus
// 2. MarginRefreshJob - drops the in-process margin config so the next read reloads it
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, marginProvider, jobs.Schedule{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing run is logged and retried on the next tick. A relay run whose
// publish fails leaves its rows unpublished, so nothing is lost.
package jobs
