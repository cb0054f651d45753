package repository

import (
	"context"
	"errors"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCouponExhausted  = errors.New("coupon has no redemptions left")
)

// OrderRepository persists the cart/order aggregate. Every mutating checkout
// stage saves before the next stage reads, so Get always observes the latest
// state inside one checkout run.
type OrderRepository interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
}

// CustomerRepository is the customer directory. FindByEmail signalling
// ErrCustomerNotFound is a normal control path, not a failure.
type CustomerRepository interface {
	Get(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Save(ctx context.Context, customer *domain.Customer) error
}

// CouponRepository is the coupon directory. Redeem consumes one use and
// fails with ErrCouponExhausted when the limit is already reached.
type CouponRepository interface {
	Get(ctx context.Context, id string) (*domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
	Save(ctx context.Context, coupon *domain.Coupon) error
	Redeem(ctx context.Context, id string) error
}

type ProductRepository interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) error
}
