package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_RecalculateWithPercentageCoupon(t *testing.T) {
	order := &Order{
		LineItems: []LineItem{
			{ID: "li-1", Quantity: 2, UnitPrice: 1500},
			{ID: "li-2", Quantity: 1, UnitPrice: 1000},
		},
		ShippingTotal: 500,
	}
	coupon := &Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 25}

	order.Recalculate(coupon)

	assert.Equal(t, int64(4000), order.ItemsTotal)
	assert.Equal(t, int64(1000), order.CouponTotal)
	assert.Equal(t, int64(3500), order.GrandTotal)
	assert.Equal(t, int64(3000), order.LineItems[0].Total)
}

func TestOrder_RecalculateFixedCouponClampedToItemsTotal(t *testing.T) {
	order := &Order{
		LineItems: []LineItem{{ID: "li-1", Quantity: 1, UnitPrice: 300}},
	}
	coupon := &Coupon{DiscountType: DiscountTypeFixed, DiscountValue: 1000}

	order.Recalculate(coupon)

	assert.Equal(t, int64(300), order.CouponTotal)
	assert.Equal(t, int64(0), order.GrandTotal)
}

func TestOrder_RecalculateClearsStaleCouponTotal(t *testing.T) {
	order := &Order{
		LineItems:   []LineItem{{ID: "li-1", Quantity: 1, UnitPrice: 500}},
		CouponTotal: 100,
	}

	order.Recalculate(nil)

	assert.Equal(t, int64(0), order.CouponTotal)
	assert.Equal(t, int64(500), order.GrandTotal)
}

func TestOrder_LineItemForProductMatchesFirstVariant(t *testing.T) {
	order := &Order{
		LineItems: []LineItem{
			{ID: "li-1", ProductID: "prod-1", VariantID: "red"},
			{ID: "li-2", ProductID: "prod-1", VariantID: "blue"},
		},
	}

	item, ok := order.LineItemForProduct("prod-1")
	require.True(t, ok)
	assert.Equal(t, "li-1", item.ID)

	_, ok = order.LineItemForProduct("prod-2")
	assert.False(t, ok)
}

func TestOrder_RemoveLineItem(t *testing.T) {
	order := &Order{
		LineItems: []LineItem{
			{ID: "li-1"},
			{ID: "li-2"},
		},
	}

	assert.True(t, order.RemoveLineItem("li-1"))
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "li-2", order.LineItems[0].ID)
	assert.False(t, order.RemoveLineItem("li-1"))
}

func TestOrder_MergeRespectsWhitelist(t *testing.T) {
	order := &Order{}

	order.Merge(map[string]any{
		"gift_note": "hi",
		"gateway":   "dummy",
	}, []string{"gift_note"})

	assert.Equal(t, "hi", order.Data["gift_note"])
	assert.NotContains(t, order.Data, "gateway")
}

func TestCoupon_Redeemable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Coupon{}).Redeemable(now))
	assert.False(t, (&Coupon{ExpiresAt: &past}).Redeemable(now))
	assert.True(t, (&Coupon{ExpiresAt: &future}).Redeemable(now))
	assert.False(t, (&Coupon{MaxRedemptions: 2, RedeemedCount: 2}).Redeemable(now))
	assert.True(t, (&Coupon{MaxRedemptions: 2, RedeemedCount: 1}).Redeemable(now))
}

func TestCustomer_RecordOrderIsIdempotent(t *testing.T) {
	customer := &Customer{}

	customer.RecordOrder("order-1")
	customer.RecordOrder("order-1")
	customer.RecordOrder("order-2")

	assert.Equal(t, []string{"order-1", "order-2"}, customer.Orders)
}

func TestCustomer_MergeRoutesKnownAndUnknownFields(t *testing.T) {
	customer := &Customer{}

	customer.Merge(map[string]any{
		"name":      "Joe Bloggs",
		"email":     "joe@example.com",
		"vat_id":    "GB123",
		"untrusted": "x",
	}, []string{"name", "email", "vat_id"})

	assert.Equal(t, "Joe Bloggs", customer.Name)
	assert.Equal(t, "joe@example.com", customer.Email)
	assert.Equal(t, "GB123", customer.Data["vat_id"])
	assert.NotContains(t, customer.Data, "untrusted")
}
