package jobs

import (
	"fmt"
	"time"

	"chatorder/internal/core/application/usecases/queries"
)

// reportText renders the scheduled daily summary message.
func reportText(day time.Time, stats queries.GetOrderStatsQueryResponse) string {
	return fmt.Sprintf(
		"Daily report for %s: %d orders\nPending: %d\nDelivered: %d\nCancelled: %d",
		day.Format("Mon, 02 Jan 2006"),
		stats.Total,
		stats.Pending,
		stats.Delivered,
		stats.Cancelled,
	)
}
