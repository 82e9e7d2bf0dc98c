package commands

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"
)

// maxOrderIDAttempts bounds the retries performed when a freshly generated
// order id collides with an existing row. Five collisions in a row on a
// 1000-value suffix space means something else is wrong.
const maxOrderIDAttempts = 5

// ErrOrderIDSpaceExhausted is returned when every generated order id collided.
var ErrOrderIDSpaceExhausted = errors.New("could not generate a unique order id")

// CreateOrderCommandHandler handles the business logic for order creation.
// Generates the order id, normalizes the phone number and persists the order
// together with its first history entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, "234")
//	cmd, _ := NewCreateOrderCommand("Amaka Obi", phone,
//	    "12 Allen Avenue, Ikeja", "2x Jollof rice", nil, "admin")
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("Order %s registered", orderID)
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	countryCode string
	now         func() time.Time
	suffix      func() int
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// countryCode is the dialing code used to normalize local phone numbers.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, countryCode string) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		countryCode: countryCode,
		now:         time.Now,
		suffix:      func() int { return rand.IntN(kernel.MaxOrderIDSuffix + 1) },
	}
}

// Handle processes the order creation command and returns the new order id.
//
// The id carries the creation date plus a random three digit suffix, so two
// orders created the same day can collide. Each attempt runs in its own
// transaction because the insert error aborts the current one; on a
// duplicate id the whole write is retried with a fresh suffix.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderCommand,
) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	now := h.now()
	phoneNumber := cmd.PhoneNumber().Normalized(h.countryCode)

	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		orderID, err := kernel.NewOrderID(now, h.suffix())
		if err != nil {
			return kernel.OrderID{}, err
		}

		err = h.persist(ctx, cmd, orderID, phoneNumber, now)
		if errors.Is(err, ports.ErrDuplicateOrderID) {
			continue
		}
		if err != nil {
			return kernel.OrderID{}, err
		}

		return orderID, nil
	}

	return kernel.OrderID{}, ErrOrderIDSpaceExhausted
}

func (h *CreateOrderCommandHandler) persist(
	ctx context.Context,
	cmd CreateOrderCommand,
	orderID kernel.OrderID,
	phoneNumber string,
	now time.Time,
) error {
	aggregate, err := order.NewOrder(
		orderID,
		cmd.CustomerName(),
		phoneNumber,
		cmd.Address(),
		cmd.Items(),
		cmd.DeliveryDate(),
		cmd.AddedBy(),
		now,
	)
	if err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(orderID, order.Pending, cmd.AddedBy(), "Order created", now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
