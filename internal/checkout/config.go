package checkout

import "github.com/jacksleight/simple-commerce/internal/validate"

// FormRequest holds the validation rules a named form contributes when the
// request submits `_request`.
type FormRequest struct {
	Rules    map[string][]validate.Rule
	Messages map[string]string
}

// Config is injected at orchestrator construction.
type Config struct {
	// CustomerFields and OrderFields are the whitelists for bulk merges
	// onto each resource kind.
	CustomerFields []string
	OrderFields    []string

	// ExternalCustomerModel is true when customers are backed by an
	// external record model with its own order relation. When false, order
	// history is kept in-band on the customer record.
	ExternalCustomerModel bool

	// FormRequests maps `_request` names to their extra validation.
	FormRequests map[string]FormRequest
}
