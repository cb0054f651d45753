package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/jacksleight/simple-commerce/internal/gateway"
	"github.com/jacksleight/simple-commerce/internal/repository"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

// validationStage merges every rule source that applies to this request:
// the named form request's rules, the selected gateway's purchase rules,
// the coupon validity rule and the email rule. Failures surface as
// field-level errors, not pipeline aborts.
type validationStage struct {
	gateways *gateway.Registry
	coupons  repository.CouponRepository
	forms    map[string]FormRequest
}

func (s *validationStage) Name() string { return "validation" }

func (s *validationStage) Process(ctx context.Context, chk *Context) error {
	rules := map[string][]validate.Rule{
		"coupon": {s.couponRule(ctx)},
		"email":  {validate.Email},
	}
	messages := map[string]string{}

	if name, ok := chk.Request.String("_request"); ok {
		form, exists := s.forms[name]
		if !exists {
			return validate.Errors{"_request": {"unknown form request"}}
		}
		for field, fieldRules := range form.Rules {
			rules[field] = append(rules[field], fieldRules...)
		}
		for field, message := range form.Messages {
			messages[field] = message
		}
	}

	if name, ok := chk.Request.String("gateway"); ok {
		g, err := s.gateways.Resolve(name)
		if err != nil {
			return validate.Errors{"gateway": {"the selected gateway does not exist"}}
		}
		for field, fieldRules := range g.PurchaseRules() {
			rules[field] = append(rules[field], fieldRules...)
		}
		for field, message := range g.PurchaseMessages() {
			messages[field] = message
		}
	}

	if errs := validate.Run(chk.Request.All(), rules, messages); errs != nil {
		return errs
	}
	return nil
}

func (s *validationStage) couponRule(ctx context.Context) validate.Rule {
	return func(value any) error {
		code, ok := value.(string)
		if !ok || code == "" {
			return nil
		}

		coupon, err := s.coupons.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrCouponNotFound) {
				return errors.New("the coupon is not valid")
			}
			return err
		}
		if !coupon.Redeemable(time.Now()) {
			return errors.New("the coupon is not valid")
		}
		return nil
	}
}
