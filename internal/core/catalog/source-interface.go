package catalog

import (
	"context"

	"github.com/behzade/storefront/internal/domain"
)

// Source is the product source port. Implementations perform one read per call
// with no retry and no caching.
type Source interface {
	Name() string
	Products(ctx context.Context) ([]domain.Product, error)
}
