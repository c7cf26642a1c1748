package catalog

import (
	"fmt"
	"testing"

	"golang.org/x/text/language"

	"github.com/behzade/storefront/internal/domain"
)

func benchCatalog(n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := range n {
		out = append(out, domain.Product{
			ID:           int64(i + 1),
			Name:         fmt.Sprintf("Product %05d Wool", (i*7919)%n),
			PriceInCents: int64((i * 104729) % 600000),
		})
	}
	return out
}

func BenchmarkEngineQuery(b *testing.B) {
	products := benchCatalog(5000)
	engine := NewEngine(language.MustParse("zh-TW"))

	cases := []domain.Query{
		{},
		{Term: "wool", Sort: domain.SortPriceLowToHigh},
		{Bucket: domain.Bucket1000To3000, Sort: domain.SortNameAscending},
	}
	for _, q := range cases {
		b.Run(fmt.Sprintf("%s/%s/%t", q.Bucket, q.Sort, q.Term != ""), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = engine.Query(products, q)
			}
		})
	}
}
