// Package catalog implements catalog browsing: the query engine and the use-cases built on it.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/behzade/storefront/internal/domain"
)

// Engine filters and orders product lists. It holds no state besides the collation
// locale, so a single Engine may serve concurrent queries.
type Engine struct {
	locale language.Tag
}

// NewEngine returns an engine collating names for the given locale.
// The zero Engine uses the root collation.
func NewEngine(locale language.Tag) Engine {
	return Engine{locale: locale}
}

// Locale reports the collation locale.
func (e Engine) Locale() language.Tag {
	return e.locale
}

// Query applies the text filter, then the price filter, then the sort.
// The input slice is never modified and the result never aliases it.
func (e Engine) Query(products []domain.Product, q domain.Query) []domain.Product {
	q = q.Normalize()

	match := func(domain.Product) bool { return true }
	if q.Term != "" {
		fold := cases.Fold()
		needle := fold.String(q.Term)
		match = func(p domain.Product) bool {
			return strings.Contains(fold.String(p.Name), needle)
		}
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !match(p) || !q.Bucket.Contains(p.PriceInCents) {
			continue
		}
		out = append(out, p)
	}

	e.sort(out, q.Sort)
	return out
}

func (e Engine) sort(items []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceLowToHigh:
		slices.SortStableFunc(items, func(a, b domain.Product) int {
			return cmp.Compare(a.PriceInCents, b.PriceInCents)
		})
	case domain.SortPriceHighToLow:
		slices.SortStableFunc(items, func(a, b domain.Product) int {
			return cmp.Compare(b.PriceInCents, a.PriceInCents)
		})
	case domain.SortNameAscending:
		// A Collator is not safe for concurrent use.
		col := collate.New(e.locale)
		slices.SortStableFunc(items, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	default:
		// relevance: source order
	}
}

// Query runs q against products with the root collation.
func Query(products []domain.Product, q domain.Query) []domain.Product {
	return Engine{}.Query(products, q)
}
