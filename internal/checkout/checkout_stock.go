package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacksleight/simple-commerce/internal/inventory"
	"github.com/jacksleight/simple-commerce/internal/repository"
)

// stockStage verifies each line item against the ledger and fails on the
// first shortage. It never mutates the order; repairing the cart is the
// orchestrator's catch-handler job.
type stockStage struct {
	products repository.ProductRepository
	ledger   *inventory.Ledger
}

func (s *stockStage) Name() string { return "stock" }

func (s *stockStage) Process(ctx context.Context, chk *Context) error {
	for _, item := range chk.Order.LineItems {
		product, err := s.products.Get(ctx, item.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			// A vanished product cannot be sold; treat it as a shortage so
			// the orchestrator removes the line item.
			return &OutOfStockError{ProductID: item.ProductID}
		}
		if err != nil {
			return fmt.Errorf("failed to look up product %s: %w", item.ProductID, err)
		}

		if !product.TrackStock {
			continue
		}

		qty, tracked := s.ledger.Level(item.ProductID)
		if !tracked || qty < item.Quantity {
			return &OutOfStockError{ProductID: item.ProductID}
		}
	}
	return nil
}
