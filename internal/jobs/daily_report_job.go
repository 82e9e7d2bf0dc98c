package jobs

import (
	"context"
	"log/slog"
	"time"

	"chatorder/internal/adapters/in/chat"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DailyReportJob sends an order summary for the previous day to the admin
// chat on a cron schedule.
type DailyReportJob struct {
	stats       chat.StatsProvider
	messenger   ports.Messenger
	adminChatID string
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
	now         func() time.Time
}

// NewDailyReportJob creates the report job. schedule is a standard five-field
// cron expression, e.g. "0 8 * * *" for 08:00 every day.
func NewDailyReportJob(
	stats chat.StatsProvider,
	messenger ports.Messenger,
	adminChatID string,
	schedule string,
	logger *slog.Logger,
) *DailyReportJob {
	return &DailyReportJob{
		stats:       stats,
		messenger:   messenger,
		adminChatID: adminChatID,
		schedule:    schedule,
		cron:        cron.New(),
		logger:      logger.With("component", "daily_report_job"),
		now:         time.Now,
	}
}

// Start schedules the report job.
func (j *DailyReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Daily report job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Daily report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the report job.
func (j *DailyReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Daily report job stopped")
}

// run builds the summary for the calendar day before the run and sends it.
// Reporting on the finished day keeps the numbers stable; the on-demand
// "report" chat command covers the running day.
func (j *DailyReportJob) run(ctx context.Context) error {
	now := j.now().UTC()
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayStart := dayEnd.AddDate(0, 0, -1)

	query, err := queries.NewGetOrderStatsQuery(dayStart, dayEnd)
	if err != nil {
		return err
	}

	stats, err := j.stats.Handle(ctx, query)
	if err != nil {
		return err
	}

	return j.messenger.Send(ctx, j.adminChatID, reportText(dayStart, stats))
}
