package checkout

import (
	"context"
	"fmt"

	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/gateway"
	"github.com/jacksleight/simple-commerce/internal/repository"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

// paymentStage recomputes the grand total and dispatches the purchase to the
// selected gateway. A zero or negative total is marked paid with no gateway
// interaction at all.
type paymentStage struct {
	coupons  repository.CouponRepository
	orders   repository.OrderRepository
	gateways *gateway.Registry
}

func (s *paymentStage) Name() string { return "payment" }

func (s *paymentStage) Process(ctx context.Context, chk *Context) error {
	coupon, err := s.attachedCoupon(ctx, chk)
	if err != nil {
		return err
	}

	chk.Order.Recalculate(coupon)

	if chk.Order.GrandTotal <= 0 {
		chk.Order.MarkAsPaid()
		if err := s.orders.Save(ctx, chk.Order); err != nil {
			return fmt.Errorf("failed to save paid order: %w", err)
		}
		return nil
	}

	name, ok := chk.Request.String("gateway")
	if !ok {
		return ErrGatewayNotProvided
	}

	g, err := s.gateways.Resolve(name)
	if err != nil {
		return validate.Errors{"gateway": {"the selected gateway does not exist"}}
	}

	result, err := g.Purchase(ctx, chk.Request.All(), chk.Order)
	if err != nil {
		return fmt.Errorf("gateway purchase failed: %w", err)
	}

	chk.Consume("gateway")
	for key := range g.PurchaseRules() {
		chk.Consume(key)
	}

	if !result.Success {
		return validate.Errors{"gateway": {result.Message}}
	}

	chk.Order.PaymentID = result.PaymentID
	chk.Order.MarkAsPaid()
	if err := s.orders.Save(ctx, chk.Order); err != nil {
		return fmt.Errorf("failed to save paid order: %w", err)
	}

	fresh, err := s.orders.Get(ctx, chk.Order.ID)
	if err != nil {
		return fmt.Errorf("failed to refresh order: %w", err)
	}
	chk.Order = fresh

	return nil
}

func (s *paymentStage) attachedCoupon(ctx context.Context, chk *Context) (*domain.Coupon, error) {
	if chk.Order.CouponID == "" {
		return nil, nil
	}
	coupon, err := s.coupons.Get(ctx, chk.Order.CouponID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attached coupon: %w", err)
	}
	return coupon, nil
}
