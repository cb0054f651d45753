package domain

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  int64        `json:"discount_value"`
	MaxRedemptions int          `json:"max_redemptions"` // 0 means unlimited
	RedeemedCount  int          `json:"redeemed_count"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Redeemable reports whether the coupon can still be applied: not expired
// and under its redemption limit.
func (c *Coupon) Redeemable(now time.Time) bool {
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	if c.MaxRedemptions > 0 && c.RedeemedCount >= c.MaxRedemptions {
		return false
	}
	return true
}

// DiscountFor computes the discount against an items total. Fixed discounts
// never exceed the total itself.
func (c *Coupon) DiscountFor(itemsTotal int64) int64 {
	var discount int64
	switch c.DiscountType {
	case DiscountTypePercentage:
		discount = itemsTotal * c.DiscountValue / 100
	case DiscountTypeFixed:
		discount = c.DiscountValue
	}
	if discount > itemsTotal {
		discount = itemsTotal
	}
	return discount
}
