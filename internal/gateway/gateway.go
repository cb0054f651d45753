// Package gateway holds the pluggable payment strategies. A gateway exposes
// the request fields it needs, the messages for their failures, and a
// purchase operation.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

var ErrGatewayNotFound = errors.New("gateway not found")

type PurchaseResult struct {
	Success   bool
	PaymentID string
	Message   string
}

type Gateway interface {
	Name() string

	// PurchaseRules declares the request fields this gateway needs before a
	// purchase can be attempted. The checkout validates these up front and
	// marks every declared key as consumed.
	PurchaseRules() map[string][]validate.Rule

	// PurchaseMessages overrides validation messages per field.
	PurchaseMessages() map[string]string

	Purchase(ctx context.Context, request map[string]any, order *domain.Order) (PurchaseResult, error)
}

type Registry struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
}

func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{gateways: make(map[string]Gateway)}
	for _, g := range gateways {
		r.Register(g)
	}
	return r
}

func (r *Registry) Register(g Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[g.Name()] = g
}

func (r *Registry) Resolve(name string) (Gateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gateways[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGatewayNotFound, name)
	}
	return g, nil
}
