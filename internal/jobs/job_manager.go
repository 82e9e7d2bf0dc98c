package jobs

import (
	"fmt"
	"log/slog"

	"chatorder/internal/adapters/in/chat"
	"chatorder/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dailyReportJob *DailyReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	stats chat.StatsProvider,
	messenger ports.Messenger,
	adminChatID string,
	reportSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dailyReportJob: NewDailyReportJob(stats, messenger, adminChatID, reportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dailyReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start daily report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dailyReportJob.Stop()
}
