// Package inventory holds the stock ledger consulted during checkout.
// Quantities are kept per product id; products without an entry are
// untracked and always sellable.
package inventory

import (
	"errors"
	"sync"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type Ledger struct {
	mu     sync.RWMutex
	stocks map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{stocks: make(map[string]int)}
}

// Level returns the current quantity for a product and whether the product
// is tracked at all.
func (l *Ledger) Level(productID string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	qty, tracked := l.stocks[productID]
	return qty, tracked
}

// SetStock sets the quantity for a product, marking it tracked.
func (l *Ledger) SetStock(productID string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stocks[productID] = quantity
}

// Deduct removes quantity from a tracked product's stock. Untracked products
// are left alone. Stock never goes below zero.
func (l *Ledger) Deduct(productID string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, tracked := l.stocks[productID]
	if !tracked {
		return nil
	}
	if current < quantity {
		l.stocks[productID] = 0
		return ErrInsufficientStock
	}

	l.stocks[productID] = current - quantity
	return nil
}
