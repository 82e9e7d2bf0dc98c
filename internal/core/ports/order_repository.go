package ports

import (
	"context"
	"errors"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
)

var (
	// ErrDuplicateOrderID is returned by Add when the generated order id
	// already exists. Callers regenerate the suffix and retry.
	ErrDuplicateOrderID = errors.New("order id already exists")

	// ErrConcurrentUpdate is returned by UpdateStatusFrom when the row no
	// longer holds the expected status, meaning another writer got there
	// first. Callers re-read the order to classify the conflict.
	ErrConcurrentUpdate = errors.New("order was modified concurrently")
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add inserts a new order. Returns ErrDuplicateOrderID when the id is
	// already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatusFrom persists the order's state only if the stored row
	// still holds the expected status. Returns ErrConcurrentUpdate when it
	// does not. This is the compare-and-set that keeps two admins from
	// finalizing the same order twice.
	UpdateStatusFrom(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get loads an order by id. Returns errs.ObjectNotFoundError when no
	// such order exists.
	Get(ctx context.Context, orderID kernel.OrderID) (*order.Order, error)
}
