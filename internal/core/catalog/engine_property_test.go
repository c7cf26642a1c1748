package catalog

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/behzade/storefront/internal/domain"
)

func genProducts() gopter.Gen {
	product := gopter.CombineGens(
		gen.AlphaString(),
		gen.Int64Range(0, 600000),
	).Map(func(values []interface{}) domain.Product {
		return domain.Product{
			Name:         values[0].(string),
			PriceInCents: values[1].(int64),
		}
	})
	return gen.SliceOf(product).Map(func(products []domain.Product) []domain.Product {
		for i := range products {
			products[i].ID = int64(i + 1)
		}
		return products
	})
}

func sameProducts(a, b []domain.Product) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newProperties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestQueryProperties(t *testing.T) {
	properties := newProperties(t)

	properties.Property("empty descriptor is the identity", prop.ForAll(
		func(products []domain.Product) bool {
			return sameProducts(products, Query(products, domain.Query{}))
		},
		genProducts(),
	))

	properties.Property("text filter keeps exactly the containing names", prop.ForAll(
		func(products []domain.Product, term string) bool {
			got := Query(products, domain.Query{Term: term})
			needle := strings.ToLower(strings.TrimSpace(term))

			var want []domain.Product
			for _, p := range products {
				if strings.Contains(strings.ToLower(p.Name), needle) {
					want = append(want, p)
				}
			}
			return sameProducts(want, got)
		},
		genProducts(),
		gen.AlphaString().Map(func(s string) string {
			if len(s) > 2 {
				return s[:2]
			}
			return s
		}),
	))

	properties.Property("every bucket result lies inside its bounds", prop.ForAll(
		func(products []domain.Product, b int) bool {
			bucket := domain.PriceBucket(b)
			for _, p := range Query(products, domain.Query{Bucket: bucket}) {
				if !bucket.Contains(p.PriceInCents) {
					return false
				}
			}
			return true
		},
		genProducts(),
		gen.IntRange(int(domain.BucketAll), int(domain.BucketOver3000)),
	))

	properties.Property("buckets partition the catalog", prop.ForAll(
		func(products []domain.Product) bool {
			n := 0
			for _, b := range domain.PriceBuckets() {
				if b == domain.BucketAll {
					continue
				}
				n += len(Query(products, domain.Query{Bucket: b}))
			}
			return n == len(products)
		},
		genProducts(),
	))

	properties.Property("price sorts order by price and keep input order on ties", prop.ForAll(
		func(products []domain.Product) bool {
			low := Query(products, domain.Query{Sort: domain.SortPriceLowToHigh})
			high := Query(products, domain.Query{Sort: domain.SortPriceHighToLow})
			for i := 1; i < len(low); i++ {
				if low[i-1].PriceInCents > low[i].PriceInCents {
					return false
				}
				if low[i-1].PriceInCents == low[i].PriceInCents && low[i-1].ID > low[i].ID {
					return false
				}
				if high[i-1].PriceInCents < high[i].PriceInCents {
					return false
				}
				if high[i-1].PriceInCents == high[i].PriceInCents && high[i-1].ID > high[i].ID {
					return false
				}
			}
			return len(low) == len(products) && len(high) == len(products)
		},
		genProducts(),
	))

	properties.Property("name sort is idempotent", prop.ForAll(
		func(products []domain.Product) bool {
			once := Query(products, domain.Query{Sort: domain.SortNameAscending})
			twice := Query(once, domain.Query{Sort: domain.SortNameAscending})
			return sameProducts(once, twice)
		},
		genProducts(),
	))

	properties.Property("sorting never reintroduces filtered products", prop.ForAll(
		func(products []domain.Product, b int, k int) bool {
			q := domain.Query{Term: "a", Bucket: domain.PriceBucket(b), Sort: domain.SortKey(k)}
			unsorted := Query(products, domain.Query{Term: q.Term, Bucket: q.Bucket})
			sorted := Query(products, q)
			if len(sorted) != len(unsorted) {
				return false
			}
			allowed := make(map[int64]bool, len(unsorted))
			for _, p := range unsorted {
				allowed[p.ID] = true
			}
			for _, p := range sorted {
				if !allowed[p.ID] {
					return false
				}
			}
			return true
		},
		genProducts(),
		gen.IntRange(int(domain.BucketAll), int(domain.BucketOver3000)),
		gen.IntRange(int(domain.SortRelevance), int(domain.SortNameAscending)),
	))

	properties.TestingRun(t)
}
