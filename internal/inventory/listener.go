package inventory

import (
	"context"
	"log"

	"github.com/jacksleight/simple-commerce/internal/events"
)

// DeductOnCheckout returns a post-checkout listener that takes each line
// item's quantity out of the ledger once the order has completed.
func DeductOnCheckout(ledger *Ledger) events.PostCheckoutHandler {
	return func(_ context.Context, event events.PostCheckout) error {
		for _, item := range event.Order.LineItems {
			if err := ledger.Deduct(item.ProductID, item.Quantity); err != nil {
				// Stock was already verified during checkout; a deduction
				// below zero means a concurrent sale won the race.
				log.Printf("stock deduction clamped for product %v: %v", item.ProductID, err)
			}
		}
		return nil
	}
}
