package checkout

import (
	"context"
	"fmt"

	"github.com/jacksleight/simple-commerce/internal/repository"
)

// remainingDataStage merges the request fields no earlier stage claimed
// onto the order, restricted to the order field whitelist. Checkbox-style
// "on"/"off" values become booleans.
type remainingDataStage struct {
	orders    repository.OrderRepository
	whitelist []string
}

func (s *remainingDataStage) Name() string { return "remaining-data" }

func (s *remainingDataStage) Process(ctx context.Context, chk *Context) error {
	data := make(map[string]any)
	for key, value := range chk.Remaining() {
		switch value {
		case "on":
			data[key] = true
		case "off":
			data[key] = false
		default:
			data[key] = value
		}
	}

	if len(data) == 0 {
		return nil
	}

	chk.Order.Merge(data, s.whitelist)
	if err := s.orders.Save(ctx, chk.Order); err != nil {
		return fmt.Errorf("failed to save order data: %w", err)
	}

	fresh, err := s.orders.Get(ctx, chk.Order.ID)
	if err != nil {
		return fmt.Errorf("failed to refresh order: %w", err)
	}
	chk.Order = fresh

	return nil
}
