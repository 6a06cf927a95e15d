package order

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feeRate = decimal.NewFromFloat(0.05)

func testAddress() AddressSnapshot {
	return AddressSnapshot{
		RecipientName: "Aisha",
		Phone:         "+966500000000",
		City:          "Riyadh",
		Street:        "King Fahd Rd",
	}
}

func newItem(t *testing.T, quantity int, unitPrice, shipping int64) *OrderItem {
	t.Helper()
	item, err := NewOrderItem(uuid.New(), uuid.New(), "Yemeni Mocha", "موكا يمني",
		quantity, decimal.NewFromInt(unitPrice), decimal.NewFromInt(shipping), feeRate)
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	t.Run("cash on delivery starts confirmed", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCOD, testAddress(), "")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusConfirmed, o.Status)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	})

	t.Run("card payment waits for capture", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCard, testAddress(), "")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPendingPayment, o.Status)
	})

	t.Run("order number carries the prefix", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCOD, testAddress(), "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(o.OrderNumber, "BDO-"))
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "CHEQUE", testAddress(), "")
		assert.Error(t, err)
	})

	t.Run("rejects incomplete address", func(t *testing.T) {
		addr := testAddress()
		addr.City = ""
		_, err := NewOrder(uuid.New(), PaymentMethodCOD, addr, "")
		assert.Error(t, err)
	})
}

func TestOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		n := NewOrderNumber()
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestNewOrderItem(t *testing.T) {
	t.Run("computes subtotal and payout", func(t *testing.T) {
		item := newItem(t, 6, 90, 15)
		assert.Equal(t, "540.00", item.Subtotal.StringFixed(2))
		// payout = 540 * 0.95
		assert.Equal(t, "513.00", item.SupplierPayout.StringFixed(2))
		assert.Equal(t, ItemStatusPending, item.ItemStatus)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), uuid.New(), "x", "", 0,
			decimal.NewFromInt(10), decimal.Zero, feeRate)
		assert.Error(t, err)
	})

	t.Run("rejects negative shipping", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), uuid.New(), "x", "", 1,
			decimal.NewFromInt(10), decimal.NewFromInt(-1), feeRate)
		assert.Error(t, err)
	})
}

func TestOrderFinalize(t *testing.T) {
	t.Run("totals are consistent", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCOD, testAddress(), "")
		require.NoError(t, err)
		o.AddItem(newItem(t, 6, 90, 15))
		o.AddItem(newItem(t, 2, 120, 0))

		require.NoError(t, o.Finalize(feeRate))
		assert.Equal(t, "780.00", o.Subtotal.StringFixed(2))
		assert.Equal(t, "15.00", o.ShippingTotal.StringFixed(2))
		assert.Equal(t, "39.00", o.PlatformFee.StringFixed(2))
		assert.Equal(t, "795.00", o.TotalAmount.StringFixed(2))
		assert.True(t, o.TotalAmount.Equal(o.Subtotal.Add(o.ShippingTotal)))
	})

	t.Run("fee rounds to two places", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCOD, testAddress(), "")
		require.NoError(t, err)
		item, err := NewOrderItem(uuid.New(), uuid.New(), "x", "", 3,
			decimal.NewFromFloat(33.33), decimal.Zero, feeRate)
		require.NoError(t, err)
		o.AddItem(item)

		require.NoError(t, o.Finalize(feeRate))
		// 99.99 * 0.05 = 4.9995 -> 5.00
		assert.Equal(t, "5.00", o.PlatformFee.StringFixed(2))
	})

	t.Run("empty order cannot be finalized", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCOD, testAddress(), "")
		require.NoError(t, err)
		assert.Error(t, o.Finalize(feeRate))
	})

	t.Run("items are linked to the order", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), PaymentMethodCOD, testAddress(), "")
		require.NoError(t, err)
		o.AddItem(newItem(t, 1, 50, 0))
		assert.Equal(t, o.ID, o.Items[0].OrderID)
	})
}

func TestItemStatusTransitions(t *testing.T) {
	t.Run("advances one step at a time", func(t *testing.T) {
		item := newItem(t, 1, 50, 0)
		require.NoError(t, item.AdvanceStatus(ItemStatusProcessing, ""))
		require.NoError(t, item.AdvanceStatus(ItemStatusShipped, "SMSA-12345"))
		require.NotNil(t, item.TrackingNumber)
		assert.Equal(t, "SMSA-12345", *item.TrackingNumber)
		require.NoError(t, item.AdvanceStatus(ItemStatusDelivered, ""))
	})

	t.Run("cannot skip steps", func(t *testing.T) {
		item := newItem(t, 1, 50, 0)
		assert.Error(t, item.AdvanceStatus(ItemStatusShipped, ""))
		assert.Error(t, item.AdvanceStatus(ItemStatusDelivered, ""))
	})

	t.Run("cannot move backwards", func(t *testing.T) {
		item := newItem(t, 1, 50, 0)
		require.NoError(t, item.AdvanceStatus(ItemStatusProcessing, ""))
		assert.Error(t, item.AdvanceStatus(ItemStatusPending, ""))
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		item := newItem(t, 1, 50, 0)
		require.NoError(t, item.AdvanceStatus(ItemStatusProcessing, ""))
		require.NoError(t, item.AdvanceStatus(ItemStatusShipped, ""))
		require.NoError(t, item.AdvanceStatus(ItemStatusDelivered, ""))
		assert.Error(t, item.AdvanceStatus(ItemStatusProcessing, ""))
	})
}

func TestOrderStatusMachine(t *testing.T) {
	assert.True(t, OrderStatusPendingPayment.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusPendingPayment.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusProcessing))
	assert.False(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusDelivered))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusConfirmed))
	assert.False(t, OrderStatusRefunded.CanTransitionTo(OrderStatusConfirmed))
}
