package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Order struct {
	ID             string         `bson:"_id,omitempty" json:"id"`
	LineItems      []LineItem     `bson:"line_items" json:"line_items"`
	CustomerID     string         `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	CouponID       string         `bson:"coupon_id,omitempty" json:"coupon_id,omitempty"`
	CouponRedeemed bool           `bson:"coupon_redeemed" json:"coupon_redeemed"`
	PaymentStatus  PaymentStatus  `bson:"payment_status" json:"payment_status"`
	PaymentID      string         `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	ItemsTotal     int64          `bson:"items_total" json:"items_total"`
	ShippingTotal  int64          `bson:"shipping_total" json:"shipping_total"`
	CouponTotal    int64          `bson:"coupon_total" json:"coupon_total"`
	GrandTotal     int64          `bson:"grand_total" json:"grand_total"`
	Data           map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}

type LineItem struct {
	ID        string `bson:"id" json:"id"`
	ProductID string `bson:"product_id" json:"product_id"`
	VariantID string `bson:"variant_id,omitempty" json:"variant_id,omitempty"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	UnitPrice int64  `bson:"unit_price" json:"unit_price"`
	Total     int64  `bson:"total" json:"total"`
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

func (o *Order) MarkAsPaid() {
	o.PaymentStatus = PaymentStatusPaid
}

// Recalculate recomputes every derived total from the line items, the
// attached coupon and the shipping total. Must run immediately before any
// payment decision so a stale cached total is never trusted.
func (o *Order) Recalculate(coupon *Coupon) {
	var items int64
	for i := range o.LineItems {
		o.LineItems[i].Total = o.LineItems[i].UnitPrice * int64(o.LineItems[i].Quantity)
		items += o.LineItems[i].Total
	}
	o.ItemsTotal = items

	o.CouponTotal = 0
	if coupon != nil {
		o.CouponTotal = coupon.DiscountFor(items)
	}

	o.GrandTotal = o.ItemsTotal + o.ShippingTotal - o.CouponTotal
}

// LineItemForProduct returns the first line item referencing the given
// product. Several line items may reference different variants of the same
// product, so callers match by product identity only.
func (o *Order) LineItemForProduct(productID string) (LineItem, bool) {
	for _, item := range o.LineItems {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

func (o *Order) RemoveLineItem(id string) bool {
	for i, item := range o.LineItems {
		if item.ID == id {
			o.LineItems = append(o.LineItems[:i], o.LineItems[i+1:]...)
			return true
		}
	}
	return false
}

// Merge copies the whitelisted keys from data into the order's free-form bag.
func (o *Order) Merge(data map[string]any, whitelist []string) {
	if o.Data == nil {
		o.Data = make(map[string]any)
	}
	for _, key := range whitelist {
		if value, ok := data[key]; ok {
			o.Data[key] = value
		}
	}
}
