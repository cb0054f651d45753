package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jacksleight/simple-commerce/internal/cart"
	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/events"
	"github.com/jacksleight/simple-commerce/internal/gateway"
	"github.com/jacksleight/simple-commerce/internal/inventory"
	"github.com/jacksleight/simple-commerce/internal/metrics"
	"github.com/jacksleight/simple-commerce/internal/repository"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

// Result is a successful checkout: the finalized order and the message the
// shopper sees.
type Result struct {
	Message string
	Order   *domain.Order
}

// Service orchestrates the checkout pipeline. Given the shopper's session
// and the raw request it produces either a finalized order or one of the
// typed failures; nothing escapes the boundary unhandled.
type Service struct {
	orders     repository.OrderRepository
	carts      cart.Provider
	dispatcher *events.Dispatcher
	metrics    *metrics.CheckoutMetrics

	stages []Stage
}

func NewService(
	cfg Config,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	coupons repository.CouponRepository,
	products repository.ProductRepository,
	carts cart.Provider,
	gateways *gateway.Registry,
	ledger *inventory.Ledger,
	dispatcher *events.Dispatcher,
	m *metrics.CheckoutMetrics,
) *Service {
	// The stage order is fixed; it is not reorderable by configuration.
	stages := []Stage{
		&validationStage{gateways: gateways, coupons: coupons, forms: cfg.FormRequests},
		&customerStage{customers: customers, orders: orders, whitelist: cfg.CustomerFields},
		&couponStage{coupons: coupons, orders: orders},
		&stockStage{products: products, ledger: ledger},
		&remainingDataStage{orders: orders, whitelist: cfg.OrderFields},
		&paymentStage{coupons: coupons, orders: orders, gateways: gateways},
		&completeStage{
			customers:             customers,
			coupons:               coupons,
			orders:                orders,
			carts:                 carts,
			dispatcher:            dispatcher,
			externalCustomerModel: cfg.ExternalCustomerModel,
		},
	}

	return &Service{
		orders:     orders,
		carts:      carts,
		dispatcher: dispatcher,
		metrics:    m,
		stages:     stages,
	}
}

func (s *Service) Checkout(ctx context.Context, sessionID string, request Request) (*Result, error) {
	start := time.Now()

	orderID, err := s.carts.CurrentOrderID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart order: %w", err)
	}

	chk := newContext(sessionID, order, request)

	if err := s.dispatcher.DispatchPreCheckout(ctx, events.PreCheckout{Order: order, Request: request.All()}); err != nil {
		s.observe("prevented", start)
		return nil, err
	}

	for _, stage := range s.stages {
		if err := stage.Process(ctx, chk); err != nil {
			return nil, s.handleFailure(ctx, chk, stage, err, start)
		}
	}

	s.observe("completed", start)
	return &Result{
		Message: "Checkout Complete!",
		Order:   chk.Order,
	}, nil
}

// handleFailure translates a stage failure: stock shortages repair the cart
// and stay recoverable, everything else passes through untouched.
func (s *Service) handleFailure(ctx context.Context, chk *Context, stage Stage, err error, start time.Time) error {
	var noStock *OutOfStockError
	if errors.As(err, &noStock) {
		if item, ok := chk.Order.LineItemForProduct(noStock.ProductID); ok {
			chk.Order.RemoveLineItem(item.ID)
			if saveErr := s.orders.Save(ctx, chk.Order); saveErr != nil {
				log.Printf("failed to save repaired cart %v: %v", chk.Order.ID, saveErr)
			}
		}
		s.observe("out_of_stock", start)
		return noStock
	}

	var prevented *PreventedError
	var fieldErrs validate.Errors
	switch {
	case errors.As(err, &prevented):
		s.observe("prevented", start)
	case errors.As(err, &fieldErrs):
		s.observe("invalid", start)
	case errors.Is(err, ErrGatewayNotProvided):
		s.observe("no_gateway", start)
	default:
		s.observe("error", start)
		log.Printf("checkout stage %v failed for order %v: %v", stage.Name(), chk.Order.ID, err)
	}
	return err
}

func (s *Service) observe(outcome string, start time.Time) {
	s.metrics.Observe(outcome, time.Since(start).Milliseconds())
}
