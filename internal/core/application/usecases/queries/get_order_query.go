// Package queries contains read-only operations that bypass the domain model.
// Query handlers read gorm directly and return plain response structs, which
// keeps the read side free of aggregate reconstruction costs.
package queries

import (
	"errors"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its status history.
//
// Example:
//
//	orderID, _ := kernel.OrderIDFromString("ORD20240115042")
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	orderView, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by its id.
func NewGetOrderQuery(orderID kernel.OrderID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// GetOrderQueryResponse is the read model for a single order.
type GetOrderQueryResponse struct {
	ID             string
	CustomerName   string
	PhoneNumber    string
	Address        string
	Items          string
	DeliveryDate   *time.Time
	Status         string
	AddedBy        string
	DeliveryPerson string
	CreatedAt      time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	History        []HistoryEntryResponse
}

// HistoryEntryResponse is one status change in an order's audit trail.
type HistoryEntryResponse struct {
	Status     string
	ChangedBy  string
	Notes      string
	OccurredAt time.Time
}
