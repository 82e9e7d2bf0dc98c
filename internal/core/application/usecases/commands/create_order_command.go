package commands

import (
	"errors"
	"strings"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrAddressIsRequired      = errors.New("address is required")
	ErrItemsAreRequired       = errors.New("items are required")
	ErrAddedByIsRequired      = errors.New("added by is required")
)

// CreateOrderCommand represents a request to register a new customer order.
// Carries the extracted order fields plus the identity of the admin whose
// message produced them. The delivery date is optional.
//
// Example:
//
//	phone, err := kernel.NewPhone("08012345678")
//	if err != nil {
//	    return fmt.Errorf("invalid phone: %w", err)
//	}
//
//	cmd, err := NewCreateOrderCommand("Amaka Obi", phone,
//	    "12 Allen Avenue, Ikeja", "2x Jollof rice", nil, "admin")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, "234")
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	phoneNumber  kernel.Phone
	address      string
	items        string
	deliveryDate *time.Time
	addedBy      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the phone is a constructed value object and that name,
// address, items and addedBy are not blank. Returns a joined error listing
// every failed validation.
func NewCreateOrderCommand(
	customerName string,
	phoneNumber kernel.Phone,
	address string,
	items string,
	deliveryDate *time.Time,
	addedBy string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerName(customerName),
		orderCommand.setPhoneNumber(phoneNumber),
		orderCommand.setAddress(address),
		orderCommand.setItems(items),
		orderCommand.setAddedBy(addedBy),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.deliveryDate = deliveryDate
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerName returns the customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// PhoneNumber returns the customer's phone value object.
func (c CreateOrderCommand) PhoneNumber() kernel.Phone {
	return c.phoneNumber
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Items returns the ordered items description.
func (c CreateOrderCommand) Items() string {
	return c.items
}

// DeliveryDate returns the requested delivery date, or nil when none was given.
func (c CreateOrderCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

// AddedBy returns the identity of the admin who submitted the order.
func (c CreateOrderCommand) AddedBy() string {
	return c.addedBy
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setPhoneNumber(phoneNumber kernel.Phone) error {
	if err := phoneNumber.Validate(); err != nil {
		return err
	}

	c.phoneNumber = phoneNumber
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items string) error {
	if strings.TrimSpace(items) == "" {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setAddedBy(addedBy string) error {
	if strings.TrimSpace(addedBy) == "" {
		return ErrAddedByIsRequired
	}

	c.addedBy = addedBy
	return nil
}
