package order_test

import (
	"testing"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderID(t *testing.T) kernel.OrderID {
	t.Helper()
	id, err := kernel.OrderIDFromString("ORD20240115042")
	require.NoError(t, err)
	return id
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	createdAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(
		testOrderID(t),
		"Amaka Obi",
		"+2348012345678",
		"12 Allen Avenue, Ikeja",
		"2x Jollof rice, 1 chicken",
		nil,
		"Chidi",
		createdAt,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_pending_order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "Amaka Obi", o.CustomerName())
		assert.Equal(t, "+2348012345678", o.PhoneNumber())
		assert.Equal(t, "12 Allen Avenue, Ikeja", o.Address())
		assert.Equal(t, "2x Jollof rice, 1 chicken", o.Items())
		assert.Equal(t, "Chidi", o.AddedBy())
		assert.Nil(t, o.DeliveryDate())
		assert.Empty(t, o.DeliveryPerson())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("trims_surrounding_whitespace", func(t *testing.T) {
		o, err := order.NewOrder(
			testOrderID(t),
			"  Amaka Obi ",
			" +2348012345678 ",
			"  12 Allen Avenue, Ikeja  ",
			" 2x Jollof rice ",
			nil,
			"Chidi",
			time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, "Amaka Obi", o.CustomerName())
		assert.Equal(t, "+2348012345678", o.PhoneNumber())
		assert.Equal(t, "12 Allen Avenue, Ikeja", o.Address())
		assert.Equal(t, "2x Jollof rice", o.Items())
	})

	t.Run("rejects_missing_required_fields", func(t *testing.T) {
		id := testOrderID(t)
		now := time.Now()

		testCases := []struct {
			name                          string
			customer, phone, addr, items  string
		}{
			{"missing_customer", "", "+2348012345678", "12 Allen Avenue", "rice"},
			{"missing_phone", "Amaka Obi", "", "12 Allen Avenue", "rice"},
			{"missing_address", "Amaka Obi", "+2348012345678", "", "rice"},
			{"missing_items", "Amaka Obi", "+2348012345678", "12 Allen Avenue", "  "},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.NewOrder(id, tc.customer, tc.phone, tc.addr, tc.items, nil, "Chidi", now)
				require.ErrorIs(t, err, errs.ErrValueIsRequired)
			})
		}
	})

	t.Run("rejects_missing_added_by", func(t *testing.T) {
		_, err := order.NewOrder(testOrderID(t), "Amaka Obi", "+2348012345678", "12 Allen Avenue", "rice", nil, "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_invalid_id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.OrderID{}, "Amaka Obi", "+2348012345678", "12 Allen Avenue", "rice", nil, "Chidi", time.Now())
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil_is_rejected", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_MarkDelivered(t *testing.T) {
	deliveredAt := time.Date(2024, 1, 16, 18, 30, 0, 0, time.UTC)

	t.Run("pending_order_is_delivered", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.MarkDelivered("Emeka", deliveredAt)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, "Emeka", o.DeliveryPerson())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("second_delivery_is_idempotent_no_op", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.MarkDelivered("Emeka", deliveredAt))

		err := o.MarkDelivered("Tunde", deliveredAt.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrAlreadyDelivered)
		assert.Equal(t, "Emeka", o.DeliveryPerson(), "no mutation on repeated delivery")
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
	})

	t.Run("cancelled_order_cannot_be_delivered", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(deliveredAt))

		err := o.MarkDelivered("Emeka", deliveredAt)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("requires_delivery_person", func(t *testing.T) {
		o := newPendingOrder(t)
		err := o.MarkDelivered("", deliveredAt)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	cancelledAt := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	t.Run("pending_order_is_cancelled", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Cancel(cancelledAt)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, cancelledAt, *o.CancelledAt())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("second_cancellation_is_idempotent_no_op", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(cancelledAt))

		err := o.Cancel(cancelledAt.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrAlreadyCancelled)
		assert.Equal(t, cancelledAt, *o.CancelledAt(), "no mutation on repeated cancellation")
	})

	t.Run("delivered_order_cannot_be_cancelled", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.MarkDelivered("Emeka", cancelledAt))

		err := o.Cancel(cancelledAt)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Nil(t, o.CancelledAt())
	})
}

func TestRestoreOrder(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	deliveredAt := createdAt.Add(26 * time.Hour)

	t.Run("restores_delivered_order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			testOrderID(t),
			"Amaka Obi",
			"+2348012345678",
			"12 Allen Avenue, Ikeja",
			"2x Jollof rice",
			nil,
			order.Delivered,
			"Chidi",
			"Emeka",
			createdAt,
			&deliveredAt,
			nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, "Emeka", o.DeliveryPerson())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			testOrderID(t),
			"Amaka Obi",
			"+2348012345678",
			"12 Allen Avenue, Ikeja",
			"2x Jollof rice",
			nil,
			order.Unknown,
			"Chidi",
			"",
			createdAt,
			nil,
			nil,
		)
		require.Error(t, err)
	})
}
