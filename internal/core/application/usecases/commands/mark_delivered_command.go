package commands

import (
	"errors"
	"strings"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/guard"
)

var (
	ErrMarkDeliveredCommandIsNotConstructed = errors.New(
		"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
	)
	ErrDeliveryPersonIsRequired = errors.New("delivery person is required")
)

// MarkDeliveredCommand represents a request to finalize an order as delivered.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.OrderID
	deliveryPerson string

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to mark an order delivered.
// deliveryPerson identifies who confirmed the delivery.
func NewMarkDeliveredCommand(orderID kernel.OrderID, deliveryPerson string) (MarkDeliveredCommand, error) {
	command := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDeliveryPerson(deliveryPerson),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkDeliveredCommandIsNotConstructed if validation fails.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to finalize.
func (c MarkDeliveredCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// DeliveryPerson returns who confirmed the delivery.
func (c MarkDeliveredCommand) DeliveryPerson() string {
	return c.deliveryPerson
}

func (c *MarkDeliveredCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkDeliveredCommand) setDeliveryPerson(deliveryPerson string) error {
	if strings.TrimSpace(deliveryPerson) == "" {
		return ErrDeliveryPersonIsRequired
	}

	c.deliveryPerson = deliveryPerson
	return nil
}
