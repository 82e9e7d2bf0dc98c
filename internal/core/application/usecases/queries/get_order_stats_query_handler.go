package queries

import (
	"context"

	"chatorder/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler aggregates order counts by status within a window.
//
// Example:
//
//	handler := NewGetOrderStatsQueryHandler(db)
//	query, _ := NewGetOrderStatsQuery(from, to)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders, %d delivered\n", stats.Total, stats.Delivered)
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for order count summaries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle counts orders created in [from, to) grouped by status. Statuses
// with no orders simply stay at zero; an unknown status in the table is
// ignored rather than failing the whole report.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	response := GetOrderStatsQueryResponse{
		From: query.From(),
		To:   query.To(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status
	`, query.From(), query.To()).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int

		if err = rows.Scan(&status, &count); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}

		response.Total += count
		switch status {
		case order.Pending.String():
			response.Pending = count
		case order.Delivered.String():
			response.Delivered = count
		case order.Cancelled.String():
			response.Cancelled = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return response, nil
}
