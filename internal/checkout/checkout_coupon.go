package checkout

import (
	"context"
	"fmt"

	"github.com/jacksleight/simple-commerce/internal/repository"
)

// couponStage attaches the requested coupon to the order. The code was
// already validated, so a lookup failure here is a genuine fault. Redemption
// is deferred to post-checkout: a coupon must never be consumed by a
// checkout that ultimately fails.
type couponStage struct {
	coupons repository.CouponRepository
	orders  repository.OrderRepository
}

func (s *couponStage) Name() string { return "coupon" }

func (s *couponStage) Process(ctx context.Context, chk *Context) error {
	code, ok := chk.Request.String("coupon")
	if !ok {
		return nil
	}

	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to resolve coupon: %w", err)
	}

	chk.Order.CouponID = coupon.ID
	if err := s.orders.Save(ctx, chk.Order); err != nil {
		return fmt.Errorf("failed to attach coupon: %w", err)
	}

	chk.Consume("coupon")
	return nil
}
