// Package events carries checkout lifecycle notifications to registered
// listeners. Pre-checkout listeners may veto the checkout by returning an
// error; post-checkout listeners are fire-and-forget.
package events

import (
	"context"
	"log"
	"sync"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

type PreCheckout struct {
	Order   *domain.Order
	Request map[string]any
}

type PostCheckout struct {
	Order   *domain.Order
	Request map[string]any
}

type PreCheckoutHandler func(ctx context.Context, event PreCheckout) error

type PostCheckoutHandler func(ctx context.Context, event PostCheckout) error

type Dispatcher struct {
	mu   sync.RWMutex
	pre  []PreCheckoutHandler
	post []PostCheckoutHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) OnPreCheckout(handler PreCheckoutHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pre = append(d.pre, handler)
}

func (d *Dispatcher) OnPostCheckout(handler PostCheckoutHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.post = append(d.post, handler)
}

// DispatchPreCheckout runs listeners in registration order and stops on the
// first error, which aborts the checkout.
func (d *Dispatcher) DispatchPreCheckout(ctx context.Context, event PreCheckout) error {
	d.mu.RLock()
	handlers := make([]PreCheckoutHandler, len(d.pre))
	copy(handlers, d.pre)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// DispatchPostCheckout notifies every listener. A failing listener is logged
// and skipped; the checkout has already completed at this point.
func (d *Dispatcher) DispatchPostCheckout(ctx context.Context, event PostCheckout) {
	d.mu.RLock()
	handlers := make([]PostCheckoutHandler, len(d.post))
	copy(handlers, d.post)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.Printf("post-checkout listener failed for order %v: %v", event.Order.ID, err)
		}
	}
}
