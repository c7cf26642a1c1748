package domain

import "fmt"

// Product represents a catalog entry. Products are read-only snapshots handed out by a source.
type Product struct {
	ID           int64
	Name         string
	PriceInCents int64
	ImageURL     string
}

// SKU renders the product number the way the detail page shows it.
func (p Product) SKU() string {
	return fmt.Sprintf("#%06d", p.ID)
}

// ValidateCatalog checks the invariants every product source must uphold:
// positive ids, unique ids within the snapshot, and non-negative prices.
func ValidateCatalog(products []Product) error {
	seen := make(map[int64]struct{}, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return fmt.Errorf("%w: product #%d: id must be positive, got %d", ErrInvalidCatalog, i, p.ID)
		}
		if p.PriceInCents < 0 {
			return fmt.Errorf("%w: product %d: price must be non-negative, got %d", ErrInvalidCatalog, p.ID, p.PriceInCents)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %d", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
