package queries

import (
	"errors"
	"time"

	"chatorder/internal/pkg/guard"
)

var (
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)
	ErrStatsWindowIsInvalid = errors.New("stats window end must be after its start")
)

// GetOrderStatsQuery counts orders created inside a time window, broken down
// by status. Backs both the chat report commands and the summary endpoint.
//
// Example:
//
//	from := time.Now().Truncate(24 * time.Hour)
//	query, err := NewGetOrderStatsQuery(from, from.Add(24*time.Hour))
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderStatsQueryHandler(db)
//	stats, err := handler.Handle(ctx, query)
type GetOrderStatsQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query for the half-open window
// [from, to). Returns ErrStatsWindowIsInvalid when to is not after from.
func NewGetOrderStatsQuery(from, to time.Time) (GetOrderStatsQuery, error) {
	if !to.After(from) {
		return GetOrderStatsQuery{}, ErrStatsWindowIsInvalid
	}

	return GetOrderStatsQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatsQueryIsNotConstructed if validation fails.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// From returns the inclusive window start.
func (q GetOrderStatsQuery) From() time.Time {
	return q.from
}

// To returns the exclusive window end.
func (q GetOrderStatsQuery) To() time.Time {
	return q.to
}

// GetOrderStatsQueryResponse holds per-status order counts for a window.
type GetOrderStatsQueryResponse struct {
	From      time.Time
	To        time.Time
	Total     int
	Pending   int
	Delivered int
	Cancelled int
}
