package gateway

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

// WithBreaker wraps a gateway's purchase call in a circuit breaker so a
// failing payment provider stops being hammered after repeated errors.
// Validation rules and messages pass through untouched.
func WithBreaker(g Gateway) Gateway {
	cb := gobreaker.NewCircuitBreaker[PurchaseResult](gobreaker.Settings{
		Name:    g.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &breakerGateway{Gateway: g, cb: cb}
}

type breakerGateway struct {
	Gateway
	cb *gobreaker.CircuitBreaker[PurchaseResult]
}

func (b *breakerGateway) Purchase(ctx context.Context, request map[string]any, order *domain.Order) (PurchaseResult, error) {
	return b.cb.Execute(func() (PurchaseResult, error) {
		return b.Gateway.Purchase(ctx, request, order)
	})
}
