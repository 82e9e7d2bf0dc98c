package commands

import (
	"errors"
	"strings"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrCancelledByIsRequired = errors.New("cancelled by is required")
)

// CancelOrderCommand represents a request to cancel a pending order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.OrderID
	cancelledBy string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// cancelledBy identifies who requested the cancellation.
func NewCancelOrderCommand(orderID kernel.OrderID, cancelledBy string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCancelledBy(cancelledBy),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CancelledBy returns who requested the cancellation.
func (c CancelOrderCommand) CancelledBy() string {
	return c.cancelledBy
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setCancelledBy(cancelledBy string) error {
	if strings.TrimSpace(cancelledBy) == "" {
		return ErrCancelledByIsRequired
	}

	c.cancelledBy = cancelledBy
	return nil
}
