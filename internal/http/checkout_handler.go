package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jacksleight/simple-commerce/internal/cart"
	"github.com/jacksleight/simple-commerce/internal/checkout"
	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

type CheckoutHandler struct {
	service *checkout.Service
	timeout time.Duration
}

func NewCheckoutHandler(service *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type CheckoutResponseDTO struct {
	Message           string        `json:"message"`
	Cart              *domain.Order `json:"cart"`
	IsCheckoutRequest bool          `json:"is_checkout_request"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing shopper session")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.service.Checkout(ctx, sessionID, checkout.Request(payload))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		Message:           result.Message,
		Cart:              result.Order,
		IsCheckoutRequest: true,
	})
}

// handleCheckoutError maps the orchestrator's typed failures onto the
// response contract: 422 for field errors, 409 for business-rule
// rejections, 400 for a missing gateway or cart.
func handleCheckoutError(w http.ResponseWriter, err error) {
	var fieldErrs validate.Errors
	if errors.As(err, &fieldErrs) {
		respondFieldErrors(w, fieldErrs)
		return
	}

	var noStock *checkout.OutOfStockError
	if errors.As(err, &noStock) {
		respondError(w, http.StatusConflict, noStock.Error())
		return
	}

	var prevented *checkout.PreventedError
	if errors.As(err, &prevented) {
		respondError(w, http.StatusConflict, prevented.Message)
		return
	}

	if errors.Is(err, checkout.ErrGatewayNotProvided) {
		respondError(w, http.StatusBadRequest, "No gateway provided.")
		return
	}

	if errors.Is(err, cart.ErrNoCart) {
		respondError(w, http.StatusBadRequest, "There is no cart to checkout.")
		return
	}

	respondError(w, http.StatusInternalServerError, "checkout failed")
}
