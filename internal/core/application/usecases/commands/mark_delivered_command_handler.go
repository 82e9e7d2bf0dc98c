package commands

import (
	"context"
	"errors"
	"time"

	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"
)

// MarkDeliveredCommandHandler finalizes pending orders as delivered.
//
// The status write is conditional on the row still being pending, so two
// admins replying "done" to the same order cannot both win: the loser's
// update matches zero rows and the handler reports the order's actual state
// instead of silently overwriting it.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmation.
func NewMarkDeliveredCommandHandler(uowFactory UoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle marks the order delivered and appends a history entry.
//
// Returns order.ErrAlreadyDelivered when the order is already delivered,
// order.ErrInvalidTransition when it was cancelled, and
// errs.ObjectNotFoundError when no such order exists. Both error paths are
// also taken when a concurrent writer finalized the order first.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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
	if err = aggregate.MarkDelivered(cmd.DeliveryPerson(), now); err != nil {
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
		cmd.OrderID(), order.Delivered, cmd.DeliveryPerson(), "Marked delivered", now,
	)
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// classifyConflict re-reads the order after a lost compare-and-set and maps
// its actual status to the same errors a direct transition would produce.
func (h *MarkDeliveredCommandHandler) classifyConflict(
	ctx context.Context, orderRepo ports.OrderRepository, cmd MarkDeliveredCommand,
) error {
	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if current.Status() == order.Delivered {
		return order.ErrAlreadyDelivered
	}
	return order.ErrInvalidTransition
}
