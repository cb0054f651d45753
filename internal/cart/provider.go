// Package cart tracks which order each shopper session is currently
// building. Forgetting the session's cart after checkout means the next
// visit starts a fresh one.
package cart

import (
	"context"
	"errors"
)

var ErrNoCart = errors.New("no active cart for session")

type Provider interface {
	// CurrentOrderID returns the order id attached to the session, or
	// ErrNoCart when the session has no active cart.
	CurrentOrderID(ctx context.Context, sessionID string) (string, error)
	Attach(ctx context.Context, sessionID, orderID string) error
	Forget(ctx context.Context, sessionID string) error
}
