package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

// declinedTestCard always fails the purchase, for exercising the decline path.
const declinedTestCard = "4000000000000002"

// DummyGateway accepts any card details except the declined test card.
type DummyGateway struct{}

func NewDummyGateway() *DummyGateway {
	return &DummyGateway{}
}

func (g *DummyGateway) Name() string {
	return "dummy"
}

func (g *DummyGateway) PurchaseRules() map[string][]validate.Rule {
	return map[string][]validate.Rule{
		"card_number":  {validate.Required},
		"expiry_month": {validate.Required},
		"expiry_year":  {validate.Required},
		"cvc":          {validate.Required},
	}
}

func (g *DummyGateway) PurchaseMessages() map[string]string {
	return map[string]string{
		"card_number":  "A card number is required",
		"expiry_month": "An expiry month is required",
		"expiry_year":  "An expiry year is required",
		"cvc":          "A CVC number is required",
	}
}

func (g *DummyGateway) Purchase(_ context.Context, request map[string]any, _ *domain.Order) (PurchaseResult, error) {
	if card, _ := request["card_number"].(string); card == declinedTestCard {
		return PurchaseResult{
			Success: false,
			Message: "Your card was declined.",
		}, nil
	}

	return PurchaseResult{
		Success:   true,
		PaymentID: uuid.New().String(),
	}, nil
}
