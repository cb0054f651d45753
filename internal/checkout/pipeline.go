package checkout

import (
	"context"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

// Stage is one step of the checkout pipeline. A stage may mutate the order
// and persist it, or abort the run by returning one of the typed failures.
type Stage interface {
	Name() string
	Process(ctx context.Context, chk *Context) error
}

// Context is the state threaded through the pipeline: the evolving order,
// the raw request and the set of request keys already interpreted by a
// stage. The consumed set starts with the transport-only keys and only ever
// grows.
type Context struct {
	SessionID string
	Order     *domain.Order
	Request   Request

	consumed map[string]struct{}
}

// transportKeys never carry order data; they are consumed before the first
// stage runs.
var transportKeys = []string{"_token", "_params", "_redirect", "_request"}

func newContext(sessionID string, order *domain.Order, request Request) *Context {
	chk := &Context{
		SessionID: sessionID,
		Order:     order,
		Request:   request,
		consumed:  make(map[string]struct{}),
	}
	chk.Consume(transportKeys...)
	return chk
}

func (c *Context) Consume(keys ...string) {
	for _, key := range keys {
		c.consumed[key] = struct{}{}
	}
}

func (c *Context) IsConsumed(key string) bool {
	_, ok := c.consumed[key]
	return ok
}

// Remaining returns the request fields no stage has claimed, the candidates
// for the free-form merge onto the order.
func (c *Context) Remaining() map[string]any {
	remaining := make(map[string]any)
	for key, value := range c.Request {
		if !c.IsConsumed(key) {
			remaining[key] = value
		}
	}
	return remaining
}
