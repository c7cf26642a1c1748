package checkout

import (
	"context"
	"fmt"

	"github.com/behzade/storefront/internal/domain"
)

// MaxQuantity bounds the units of a single product in one quote.
const MaxQuantity = 999

// Catalog reads a consistent snapshot of the current catalog.
type Catalog interface {
	Snapshot(ctx context.Context) ([]domain.Product, error)
}

// Item is a cart entry as submitted by the client: an id and a quantity, never a price.
type Item struct {
	ProductID int64
	Quantity  int
}

// Module exposes checkout operations.
type Module struct {
	catalog Catalog
}

func New(catalog Catalog) *Module {
	return &Module{catalog: catalog}
}

// Quote prices the items from one catalog snapshot and returns the order summary.
func (m *Module) Quote(ctx context.Context, items []Item, method ShippingMethod) (Summary, error) {
	units := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if it.Quantity > MaxQuantity || units[it.ProductID]+it.Quantity > MaxQuantity {
			return Summary{}, fmt.Errorf("%w: at most %d units of product %d", domain.ErrInvalidArgument, MaxQuantity, it.ProductID)
		}
		units[it.ProductID] += it.Quantity
	}
	if len(units) == 0 {
		return Quote(nil, method)
	}

	products, err := m.catalog.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		p, ok := byID[it.ProductID]
		if !ok {
			return Summary{}, fmt.Errorf("%w: unknown product %d", domain.ErrInvalidArgument, it.ProductID)
		}
		lines = append(lines, Line{Product: p, Quantity: it.Quantity})
	}
	return Quote(lines, method)
}
