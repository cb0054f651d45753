package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/repository"
)

// customerStage derives a candidate identity from the recognized request
// fields, finds or creates the customer by email and attaches it to the
// order. Lookup misses are a normal path and trigger creation, never an
// abort.
type customerStage struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	whitelist []string
}

func (s *customerStage) Name() string { return "customer" }

func (s *customerStage) Process(ctx context.Context, chk *Context) error {
	customerData, _ := chk.Request.Map("customer")
	if customerData == nil {
		customerData = make(map[string]any)
	}

	// The customer key may also be a plain customer id.
	if id, ok := chk.Request.String("customer"); ok {
		chk.Order.CustomerID = id
		if err := s.orders.Save(ctx, chk.Order); err != nil {
			return fmt.Errorf("failed to attach customer: %w", err)
		}
		chk.Consume("customer")
		return nil
	}

	// Identity precedence: full name, then first/last name, then email
	// alone. Only the first matching branch is taken.
	switch {
	case chk.Request.Has("name") && chk.Request.Has("email"):
		customerData["name"] = chk.Request["name"]
		customerData["email"] = chk.Request["email"]
		chk.Consume("name", "email")

	case chk.Request.Has("first_name") && chk.Request.Has("last_name") && chk.Request.Has("email"):
		customerData["first_name"] = chk.Request["first_name"]
		customerData["last_name"] = chk.Request["last_name"]
		customerData["email"] = chk.Request["email"]
		chk.Consume("first_name", "last_name", "email")

	case chk.Request.Has("email"):
		customerData["email"] = chk.Request["email"]
		chk.Consume("email")
	}

	if email, ok := customerData["email"].(string); ok && email != "" {
		customer, err := s.customers.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrCustomerNotFound) {
			customer = &domain.Customer{
				Email:     email,
				Published: true,
			}
			if name, ok := customerData["name"].(string); ok {
				customer.Name = name
			}
			if first, ok := customerData["first_name"].(string); ok {
				if last, ok := customerData["last_name"].(string); ok {
					customer.FirstName = first
					customer.LastName = last
				}
			}
			if err := s.customers.Save(ctx, customer); err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up customer: %w", err)
		}

		customer.Merge(customerData, s.whitelist)
		if err := s.customers.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		chk.Order.CustomerID = customer.ID
		if err := s.orders.Save(ctx, chk.Order); err != nil {
			return fmt.Errorf("failed to attach customer: %w", err)
		}

		// Re-read so later stages observe any save-hook side effects.
		fresh, err := s.orders.Get(ctx, chk.Order.ID)
		if err != nil {
			return fmt.Errorf("failed to refresh order: %w", err)
		}
		chk.Order = fresh
	}

	chk.Consume("customer")
	return nil
}
