package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chatorder/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStats struct {
	resp      queries.GetOrderStatsQueryResponse
	lastQuery queries.GetOrderStatsQuery
}

func (s *stubStats) Handle(
	_ context.Context, query queries.GetOrderStatsQuery,
) (queries.GetOrderStatsQueryResponse, error) {
	s.lastQuery = query
	return s.resp, nil
}

type stubMessenger struct {
	chatID string
	text   string
}

func (s *stubMessenger) Send(_ context.Context, chatID, text string) error {
	s.chatID = chatID
	s.text = text
	return nil
}

func TestDailyReportJob_Run_ReportsPreviousDay(t *testing.T) {
	stats := &stubStats{resp: queries.GetOrderStatsQueryResponse{Total: 7, Delivered: 5, Cancelled: 1, Pending: 1}}
	messenger := &stubMessenger{}

	job := NewDailyReportJob(stats, messenger, "admin-chat", "0 8 * * *", slog.Default())
	job.now = func() time.Time {
		return time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)
	}

	err := job.run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), stats.lastQuery.From())
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), stats.lastQuery.To())
	assert.Equal(t, "admin-chat", messenger.chatID)
	assert.Contains(t, messenger.text, "Daily report for Mon, 15 Jan 2024")
	assert.Contains(t, messenger.text, "7 orders")
	assert.Contains(t, messenger.text, "Delivered: 5")
}
