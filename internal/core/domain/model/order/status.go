package order

import (
	"fmt"

	"chatorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Delivered
//	          │
//	          └──> Cancelled
//
// Delivered and Cancelled are terminal: no order ever leaves either state.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial and only entry status. Orders in this status
	// are waiting to be delivered or cancelled.
	Pending

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was called off. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the persisted string form of a status.
// Returns an error for anything outside the three valid states.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
//
// Returns "pending", "delivered", or "cancelled" for valid statuses and
// "unknown" otherwise. Implements fmt.Stringer and is safe to call on any
// Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Deliver transitions the status to Delivered.
//
// Valid transition:
//   - Pending -> Delivered
//
// Outcomes for other states:
//   - Delivered -> ErrAlreadyDelivered (idempotent no-op for callers)
//   - Cancelled -> ErrInvalidTransition (cannot deliver a cancelled order)
//   - anything else -> validation error
func (s Status) Deliver() (Status, error) {
	switch s {
	case Pending:
		return Delivered, nil
	case Delivered:
		return 0, ErrAlreadyDelivered
	case Cancelled:
		return 0, ErrInvalidTransition
	default:
		return 0, s.Validate()
	}
}

// Cancel transitions the status to Cancelled.
//
// Valid transition:
//   - Pending -> Cancelled
//
// Outcomes for other states:
//   - Cancelled -> ErrAlreadyCancelled (idempotent no-op for callers)
//   - Delivered -> ErrInvalidTransition (cannot cancel a delivered order)
//   - anything else -> validation error
func (s Status) Cancel() (Status, error) {
	switch s {
	case Pending:
		return Cancelled, nil
	case Cancelled:
		return 0, ErrAlreadyCancelled
	case Delivered:
		return 0, ErrInvalidTransition
	default:
		return 0, s.Validate()
	}
}
