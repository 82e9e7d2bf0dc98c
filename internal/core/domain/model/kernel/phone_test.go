package kernel_test

import (
	"testing"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countryCode = "234"

func TestNewPhone(t *testing.T) {
	t.Run("accepts_local_number_with_separators", func(t *testing.T) {
		phone, err := kernel.NewPhone("0801 234 5678")

		require.NoError(t, err)
		assert.Equal(t, "0801 234 5678", phone.Raw())
		require.NoError(t, phone.Validate())
	})

	t.Run("rejects_too_few_digits", func(t *testing.T) {
		_, err := kernel.NewPhone("080123")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_too_many_digits", func(t *testing.T) {
		_, err := kernel.NewPhone("0801234567890123")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_empty_value", func(t *testing.T) {
		_, err := kernel.NewPhone("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var phone kernel.Phone
		require.Error(t, phone.Validate())
	})
}

func TestPhone_Normalized(t *testing.T) {
	normalize := func(t *testing.T, raw string) string {
		t.Helper()
		phone, err := kernel.NewPhone(raw)
		require.NoError(t, err)
		return phone.Normalized(countryCode)
	}

	t.Run("leading_zero_is_replaced_with_country_code", func(t *testing.T) {
		assert.Equal(t, "+2348012345678", normalize(t, "08012345678"))
	})

	t.Run("existing_country_code_is_kept", func(t *testing.T) {
		assert.Equal(t, "+2348012345678", normalize(t, "2348012345678"))
	})

	t.Run("plus_prefixed_number_is_unchanged", func(t *testing.T) {
		assert.Equal(t, "+2348012345678", normalize(t, "+2348012345678"))
	})

	t.Run("bare_national_number_gets_country_code", func(t *testing.T) {
		assert.Equal(t, "+2348012345678", normalize(t, "8012345678"))
	})

	t.Run("separators_are_stripped", func(t *testing.T) {
		assert.Equal(t, "+2348012345678", normalize(t, "0801-234-5678"))
	})

	// The prefix check is textual, so normalization is not a safe fixpoint
	// for every input. A bare national number that happens to start with the
	// country code digits is treated as already prefixed and left alone.
	// These tests pin the current behavior rather than an ideal one.
	t.Run("documented_quirk_national_number_starting_with_country_code", func(t *testing.T) {
		assert.Equal(t, "+23415678901", normalize(t, "23415678901"))
	})

	t.Run("documented_quirk_double_normalization_of_listed_inputs_is_stable", func(t *testing.T) {
		for _, raw := range []string{"08012345678", "2348012345678", "8012345678"} {
			once := normalize(t, raw)
			twice := normalize(t, once)
			assert.Equal(t, once, twice, "input %q", raw)
		}
	})
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "2348012345678", kernel.Digits("+234 (801) 234-5678"))
	assert.Equal(t, "", kernel.Digits("no digits here"))
}
