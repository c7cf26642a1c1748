package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/behzade/storefront/internal/domain"
	"github.com/behzade/storefront/internal/metrics"
)

// Module exposes catalog operations.
type Module struct {
	source Source
	engine Engine
	logger *zap.Logger
}

func New(source Source, engine Engine, logger *zap.Logger) *Module {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Module{source: source, engine: engine, logger: logger}
}

// Snapshot reads the full catalog once and reports a failing source to the caller.
func (m *Module) Snapshot(ctx context.Context) ([]domain.Product, error) {
	products, err := m.source.Products(ctx)
	if err != nil {
		metrics.SourceFailures.WithLabelValues(m.source.Name()).Inc()
		return nil, fmt.Errorf("read %s source: %w", m.source.Name(), err)
	}
	return products, nil
}

// Products reads the full catalog. A failing source is logged and served as an empty catalog.
func (m *Module) Products(ctx context.Context) []domain.Product {
	products, err := m.Snapshot(ctx)
	if err != nil {
		m.logger.Warn("product source unavailable, serving empty catalog",
			zap.String("source", m.source.Name()),
			zap.Error(err),
		)
		return []domain.Product{}
	}
	return products
}

// Search runs the query engine over the catalog and pages the result.
func (m *Module) Search(ctx context.Context, in domain.SearchInput) domain.SearchResult {
	q := in.Query.Normalize()
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 0 {
		in.PerPage = 0
	}

	products := m.Products(ctx)
	items := m.engine.Query(products, q)

	metrics.CatalogQueries.WithLabelValues(q.Bucket.String(), q.Sort.String()).Inc()
	metrics.CatalogResults.Observe(float64(len(items)))

	total := len(items)
	if in.PerPage > 0 {
		items = page(items, in.Page, in.PerPage)
	}

	return domain.SearchResult{
		Items:   items,
		Total:   total,
		Page:    in.Page,
		PerPage: in.PerPage,
		Query:   q,
		Notice:  noticeFor(len(products), total, q),
	}
}

// page slices out the 1-based page n. Pages past the end are empty.
func page(items []domain.Product, n, perPage int) []domain.Product {
	pages := len(items) / perPage
	if len(items)%perPage != 0 {
		pages++
	}
	if n > pages {
		return items[len(items):]
	}
	start := (n - 1) * perPage
	end := len(items)
	if perPage < end-start {
		end = start + perPage
	}
	return items[start:end]
}

func noticeFor(catalogSize, matches int, q domain.Query) domain.Notice {
	switch {
	case catalogSize == 0:
		return domain.NoticeCatalogEmpty
	case matches > 0:
		return domain.NoticeNone
	case q.Term != "":
		return domain.NoticeNoResults
	default:
		return domain.NoticeNoMatches
	}
}

// Get returns a single product for the detail page.
func (m *Module) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", domain.ErrInvalidArgument)
	}
	for _, p := range m.Products(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %d not found", domain.ErrNotFound, id)
}
