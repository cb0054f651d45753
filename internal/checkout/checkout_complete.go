package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/jacksleight/simple-commerce/internal/cart"
	"github.com/jacksleight/simple-commerce/internal/events"
	"github.com/jacksleight/simple-commerce/internal/repository"
)

// completeStage runs the post-checkout side effects, strictly after a
// successful (or zero-total) payment stage. The post-checkout event fires
// last, after every state mutation.
type completeStage struct {
	customers             repository.CustomerRepository
	coupons               repository.CouponRepository
	orders                repository.OrderRepository
	carts                 cart.Provider
	dispatcher            *events.Dispatcher
	externalCustomerModel bool
}

func (s *completeStage) Name() string { return "complete" }

func (s *completeStage) Process(ctx context.Context, chk *Context) error {
	// Without an external customer record model there is no relational join
	// to lean on, so order history lives on the customer record itself.
	if !s.externalCustomerModel && chk.Order.CustomerID != "" {
		customer, err := s.customers.Get(ctx, chk.Order.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to load customer for order history: %w", err)
		}
		customer.RecordOrder(chk.Order.ID)
		if err := s.customers.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer order history: %w", err)
		}
	}

	// Idempotent safety net: a zero-total checkout without a gateway may
	// reach this point still unmarked.
	if !chk.Request.Has("gateway") && !chk.Order.IsPaid() && chk.Order.GrandTotal == 0 {
		chk.Order.MarkAsPaid()
		if err := s.orders.Save(ctx, chk.Order); err != nil {
			return fmt.Errorf("failed to save paid order: %w", err)
		}
	}

	if chk.Order.CouponID != "" && !chk.Order.CouponRedeemed {
		if err := s.coupons.Redeem(ctx, chk.Order.CouponID); err != nil {
			// The checkout itself has succeeded; an exhausted counter at
			// this point is logged, not surfaced.
			log.Printf("coupon redemption failed for order %v: %v", chk.Order.ID, err)
		} else {
			chk.Order.CouponRedeemed = true
			if err := s.orders.Save(ctx, chk.Order); err != nil {
				return fmt.Errorf("failed to record coupon redemption: %w", err)
			}
		}
	}

	if err := s.carts.Forget(ctx, chk.SessionID); err != nil {
		log.Printf("failed to forget cart for session %v: %v", chk.SessionID, err)
	}

	s.dispatcher.DispatchPostCheckout(ctx, events.PostCheckout{
		Order:   chk.Order,
		Request: chk.Request.All(),
	})

	return nil
}
