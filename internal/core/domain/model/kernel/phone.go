package kernel

import (
	"strings"

	"chatorder/internal/pkg/errs"
)

// ErrPhoneIsNotConstructed indicates that a Phone was not properly initialized
// through the NewPhone constructor.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("Phone must be created via NewPhone")

const (
	// MinPhoneDigits and MaxPhoneDigits bound the number of digits a raw
	// phone value may carry once formatting characters are stripped.
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// Phone is a value object holding a customer phone number as captured from
// chat text. The raw value keeps whatever separators the sender typed;
// Normalized produces the international form used on persisted orders.
//
// The zero value of Phone is invalid and must be constructed via NewPhone.
type Phone struct {
	raw string
}

// NewPhone validates and wraps a raw phone value. The value must contain
// between MinPhoneDigits and MaxPhoneDigits digits once every non-digit
// character is removed.
func NewPhone(raw string) (Phone, error) {
	if strings.TrimSpace(raw) == "" {
		return Phone{}, errs.NewValueIsRequiredError("phoneNumber")
	}

	digits := Digits(raw)
	if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("phone digits", len(digits), MinPhoneDigits, MaxPhoneDigits)
	}

	return Phone{raw: strings.TrimSpace(raw)}, nil
}

// Validate ensures the Phone was created through NewPhone.
func (p Phone) Validate() error {
	if p.raw == "" {
		return ErrPhoneIsNotConstructed
	}
	return nil
}

// Raw returns the phone value as captured from the message.
func (p Phone) Raw() string {
	return p.raw
}

// Normalized converts the raw value to international form: non-digits are
// stripped, a leading "0" is replaced with the country code, the country code
// is prepended when absent, and the result is prefixed with "+".
//
// The prefix check is textual: a national number that happens to begin with
// the country code digits is treated as already prefixed and is not prefixed
// again. See the package tests for the documented consequences.
func (p Phone) Normalized(countryCode string) string {
	digits := Digits(p.raw)

	switch {
	case strings.HasPrefix(digits, "0"):
		digits = countryCode + digits[1:]
	case !strings.HasPrefix(digits, countryCode):
		digits = countryCode + digits
	}

	return "+" + digits
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
