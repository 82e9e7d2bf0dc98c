package commands

import (
	"context"
	"errors"
	"time"

	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"
)

// CancelOrderCommandHandler cancels pending orders.
//
// Mirrors MarkDeliveredCommandHandler: the status write is conditional on
// the row still being pending, and a lost compare-and-set is reported as the
// order's actual terminal state.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle cancels the order and appends a history entry.
//
// Returns order.ErrAlreadyCancelled when the order is already cancelled,
// order.ErrInvalidTransition when it was delivered, and
// errs.ObjectNotFoundError when no such order exists.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.now()
	if err = aggregate.Cancel(now); err != nil {
		return err
	}

	err = orderRepo.UpdateStatusFrom(ctx, aggregate, order.Pending)
	if errors.Is(err, ports.ErrConcurrentUpdate) {
		return h.classifyConflict(ctx, orderRepo, cmd)
	}
	if err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		cmd.OrderID(), order.Cancelled, cmd.CancelledBy(), "Order cancelled", now,
	)
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CancelOrderCommandHandler) classifyConflict(
	ctx context.Context, orderRepo ports.OrderRepository, cmd CancelOrderCommand,
) error {
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if current.Status() == order.Cancelled {
		return order.ErrAlreadyCancelled
	}
	return order.ErrInvalidTransition
}
