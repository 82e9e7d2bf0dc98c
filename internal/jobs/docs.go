// Package jobs provides scheduled background tasks.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Currently one job exists: DailyReportJob, which sends the previous day's
// order summary to the admin chat on a configurable schedule.
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(statsHandler, messenger, adminChatID, "0 8 * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// Job failures are logged and retried on the next scheduled run; a missed
// report is recoverable through the on-demand "report" chat command.
package jobs
