package kernel

import (
	"fmt"
	"regexp"
	"time"

	"chatorder/internal/pkg/errs"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not properly initialized
// through one of the constructor functions. This error is returned when validating
// a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString",
)

// orderIDPattern matches the canonical identifier shape: the literal prefix
// "ORD", an 8-digit calendar date and a 3-digit suffix.
var orderIDPattern = regexp.MustCompile(`^ORD\d{8}\d{3}$`)

const (
	orderIDPrefix     = "ORD"
	orderIDDateLayout = "20060102"

	// MinOrderIDSuffix and MaxOrderIDSuffix bound the numeric suffix drawn
	// when generating a fresh identifier.
	MinOrderIDSuffix = 0
	MaxOrderIDSuffix = 999
)

// OrderID is a value object identifying an order. The canonical form is
// "ORD" + YYYYMMDD + a zero-padded 3-digit suffix, e.g. "ORD20240115042".
//
// The zero value of OrderID is invalid and must be constructed using
// NewOrderID or OrderIDFromString. OrderID is immutable and safe for
// concurrent use.
//
// The suffix is drawn randomly, so uniqueness is enforced by the persistence
// layer's primary key; callers creating orders retry with a fresh suffix when
// the store reports a duplicate.
type OrderID struct {
	value string
}

// NewOrderID builds an OrderID for the given day and suffix.
// The suffix must be within [MinOrderIDSuffix, MaxOrderIDSuffix].
func NewOrderID(day time.Time, suffix int) (OrderID, error) {
	if suffix < MinOrderIDSuffix || suffix > MaxOrderIDSuffix {
		return OrderID{}, errs.NewValueIsOutOfRangeError("suffix", suffix, MinOrderIDSuffix, MaxOrderIDSuffix)
	}

	return OrderID{value: fmt.Sprintf("%s%s%03d", orderIDPrefix, day.Format(orderIDDateLayout), suffix)}, nil
}

// OrderIDFromString parses an identifier in canonical form.
// Returns an error when the string does not match the expected shape.
func OrderIDFromString(s string) (OrderID, error) {
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	if !orderIDPattern.MatchString(s) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q does not match %s", s, orderIDPattern.String()))
	}

	return OrderID{value: s}, nil
}

// Validate ensures the OrderID was created through a constructor.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

// String returns the canonical string form of the identifier.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}
