package checkout

import "errors"

// ErrGatewayNotProvided aborts a checkout whose due total cannot be
// collected because the request never named a gateway. Distinct from field
// validation: with no gateway there are no gateway rules to validate.
var ErrGatewayNotProvided = errors.New("no gateway provided")

// OutOfStockError is the recoverable failure kind. It carries the offending
// product, not the line item: the orchestrator re-locates the line item by
// product identity before repairing the cart.
type OutOfStockError struct {
	ProductID string
}

func (e *OutOfStockError) Error() string {
	return "Checkout failed. A product in your cart has no stock left. The product has been removed from your cart."
}

// PreventedError is the blocking failure kind: a business rule vetoed the
// checkout. The cart is left untouched and the message surfaces verbatim.
type PreventedError struct {
	Message string
}

func (e *PreventedError) Error() string {
	return e.Message
}
