package order

import (
	"errors"
	"strings"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyDelivered signals a delivery attempt on an order that is already
	// delivered. Callers treat it as an idempotent no-op, not a failure.
	ErrAlreadyDelivered = errors.New("order is already delivered")

	// ErrAlreadyCancelled signals a cancellation attempt on an order that is
	// already cancelled. Callers treat it as an idempotent no-op, not a failure.
	ErrAlreadyCancelled = errors.New("order is already cancelled")

	// ErrInvalidTransition signals a transition that contradicts a terminal
	// state, such as delivering a cancelled order.
	ErrInvalidTransition = errors.New("transition contradicts the order's terminal status")
)

// Order is the aggregate root for a customer order recovered from chat text.
// It owns the pending/delivered/cancelled lifecycle and the data captured by
// the extraction pipeline.
//
// Order maintains these invariants:
//   - identifier, customer name, phone, address, items, and addedBy are non-empty
//   - the phone number is in normalized international form
//   - status transitions are monotonic: no order leaves a terminal state
//   - deliveredAt and cancelledAt are mutually exclusive and set at most once
//   - deliveryPerson is set only on delivery
//
// Private fields keep the aggregate encapsulated; all mutation goes through
// MarkDelivered and Cancel.
type Order struct {
	id             kernel.OrderID
	customerName   string
	phoneNumber    string
	address        string
	items          string
	deliveryDate   *time.Time
	status         Status
	addedBy        string
	deliveryPerson string
	createdAt      time.Time
	deliveredAt    *time.Time
	cancelledAt    *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a pending Order from validated extraction output.
//
// Parameters:
//   - id: canonical order identifier
//   - customerName, phoneNumber, address, items: required order fields;
//     phoneNumber must already be normalized
//   - deliveryDate: optional requested delivery date (nil when absent)
//   - addedBy: identity of the sender who placed the order
//   - createdAt: creation instant recorded on the aggregate
//
// Returns a validation error when any required value is missing or invalid.
func NewOrder(
	id kernel.OrderID,
	customerName string,
	phoneNumber string,
	address string,
	items string,
	deliveryDate *time.Time,
	addedBy string,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerName(customerName),
		order.setPhoneNumber(phoneNumber),
		order.setAddress(address),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	if addedBy == "" {
		return nil, errs.NewValueIsRequiredError("addedBy")
	}
	order.addedBy = addedBy
	order.deliveryDate = deliveryDate

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// creation flow. Used by repositories when rehydrating aggregates.
func RestoreOrder(
	id kernel.OrderID,
	customerName string,
	phoneNumber string,
	address string,
	items string,
	deliveryDate *time.Time,
	status Status,
	addedBy string,
	deliveryPerson string,
	createdAt time.Time,
	deliveredAt *time.Time,
	cancelledAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order, err := NewOrder(id, customerName, phoneNumber, address, items, deliveryDate, addedBy, createdAt)
	if err != nil {
		return nil, err
	}

	order.status = status
	order.deliveryPerson = deliveryPerson
	order.deliveredAt = deliveredAt
	order.cancelledAt = cancelledAt

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// CustomerName returns the recipient's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// PhoneNumber returns the normalized international phone number.
func (o *Order) PhoneNumber() string {
	return o.phoneNumber
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// Items returns the ordered item list as captured from the message.
func (o *Order) Items() string {
	return o.items
}

// DeliveryDate returns the requested delivery date, or nil when none was given.
func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// AddedBy returns the sender identity that placed the order.
func (o *Order) AddedBy() string {
	return o.addedBy
}

// DeliveryPerson returns who delivered the order. Empty until delivery.
func (o *Order) DeliveryPerson() string {
	return o.deliveryPerson
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the delivery instant, or nil if not delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns the cancellation instant, or nil if not cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// MarkDelivered transitions the order to Delivered.
//
// Business rules:
//   - only a Pending order can be delivered
//   - an already Delivered order yields ErrAlreadyDelivered without mutation
//   - a Cancelled order yields ErrInvalidTransition without mutation
//
// On success the delivery person and delivery instant are recorded.
func (o *Order) MarkDelivered(deliveryPerson string, at time.Time) error {
	if deliveryPerson == "" {
		return errs.NewValueIsRequiredError("deliveryPerson")
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryPerson = deliveryPerson
	o.deliveredAt = &at
	return nil
}

// Cancel transitions the order to Cancelled.
//
// Business rules:
//   - only a Pending order can be cancelled
//   - an already Cancelled order yields ErrAlreadyCancelled without mutation
//   - a Delivered order yields ErrInvalidTransition without mutation
func (o *Order) Cancel(at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &at
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = strings.TrimSpace(customerName)
	return nil
}

func (o *Order) setPhoneNumber(phoneNumber string) error {
	if strings.TrimSpace(phoneNumber) == "" {
		return errs.NewValueIsRequiredError("phoneNumber")
	}
	o.phoneNumber = strings.TrimSpace(phoneNumber)
	return nil
}

func (o *Order) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = strings.TrimSpace(address)
	return nil
}

func (o *Order) setItems(items string) error {
	if strings.TrimSpace(items) == "" {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = strings.TrimSpace(items)
	return nil
}
