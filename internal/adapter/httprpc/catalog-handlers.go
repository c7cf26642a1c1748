package httprpcadapter

import (
	"context"
	"fmt"

	"github.com/behzade/storefront/internal/core/catalog"
	"github.com/behzade/storefront/internal/domain"
	"github.com/behzade/storefront/internal/httprpc"
)

// CatalogHandlers wires httprpc endpoints to the catalog module.
type CatalogHandlers struct {
	module *catalog.Module
}

func NewCatalogHandlers(module *catalog.Module) *CatalogHandlers {
	return &CatalogHandlers{module: module}
}

// HTTP DTOs (only used at the transport layer).
type (
	PingResponse struct {
		OK bool `json:"ok"`
	}

	ListProductsResponse struct {
		Items []Product `json:"items"`
		Total int       `json:"total"`
	}

	SearchProductsRequest struct {
		Term    string             `query:"q"`
		Price   domain.PriceBucket `query:"price"`
		Sort    domain.SortKey     `query:"sort"`
		Page    int                `query:"page"`
		PerPage int                `query:"per_page"`
	}

	SearchProductsResponse struct {
		Items   []Product   `json:"items"`
		Total   int         `json:"total"`
		Page    int         `json:"page"`
		PerPage int         `json:"per_page"`
		Query   SearchQuery `json:"query"`
		Notice  *Notice     `json:"notice,omitempty"`
	}

	SearchQuery struct {
		Term  string             `json:"q"`
		Price domain.PriceBucket `json:"price"`
		Sort  domain.SortKey     `json:"sort"`
	}

	Notice struct {
		Kind        domain.Notice `json:"kind"`
		Title       string        `json:"title"`
		Message     string        `json:"message"`
		Suggestions []string      `json:"suggestions,omitempty"`
	}

	GetProductRequest struct {
		ID int64 `query:"id"`
	}

	Product struct {
		ID           int64  `json:"id"`
		SKU          string `json:"sku"`
		Name         string `json:"name"`
		PriceInCents int64  `json:"price_in_cents"`
		PriceDisplay string `json:"price_display"`
		ImageURL     string `json:"image_url"`
	}
)

var searchSuggestions = []string{
	"Check the spelling",
	"Try simpler keywords",
	"Use broader search terms",
	"Adjust the price range",
}

// Register mounts catalog endpoints under the provided group.
func (h *CatalogHandlers) Register(api *httprpc.EndpointGroup) {
	httprpc.RegisterHandler(
		api,
		httprpc.GET(
			func(context.Context, struct{}) (PingResponse, error) {
				return PingResponse{OK: true}, nil
			},
			"/ping",
		),
	)

	httprpc.RegisterHandler(
		api,
		httprpc.GET(
			func(ctx context.Context, _ struct{}) (ListProductsResponse, error) {
				products := h.module.Products(ctx)
				return ListProductsResponse{
					Items: toProductDTOs(products),
					Total: len(products),
				}, nil
			},
			"/products",
		),
	)

	httprpc.RegisterHandler(
		api,
		httprpc.GET(
			func(ctx context.Context, req SearchProductsRequest) (SearchProductsResponse, error) {
				res := h.module.Search(ctx, domain.SearchInput{
					Query:   domain.Query{Term: req.Term, Bucket: req.Price, Sort: req.Sort},
					Page:    req.Page,
					PerPage: req.PerPage,
				})
				return SearchProductsResponse{
					Items:   toProductDTOs(res.Items),
					Total:   res.Total,
					Page:    res.Page,
					PerPage: res.PerPage,
					Query:   SearchQuery{Term: res.Query.Term, Price: res.Query.Bucket, Sort: res.Query.Sort},
					Notice:  toNoticeDTO(res.Notice, res.Query),
				}, nil
			},
			"/products/search",
		),
	)

	httprpc.RegisterHandler(
		api,
		httprpc.GET(
			func(ctx context.Context, req GetProductRequest) (Product, error) {
				p, err := h.module.Get(ctx, req.ID)
				if err != nil {
					return Product{}, mapError(err)
				}
				return toProductDTO(*p), nil
			},
			"/products/get",
		),
	)
}

func toNoticeDTO(n domain.Notice, q domain.Query) *Notice {
	switch n {
	case domain.NoticeCatalogEmpty:
		return &Notice{
			Kind:    n,
			Title:   "No products available",
			Message: "There are no products currently available.",
		}
	case domain.NoticeNoResults:
		return &Notice{
			Kind:        n,
			Title:       "No matching products",
			Message:     fmt.Sprintf("Sorry, no products match %q.", q.Term),
			Suggestions: searchSuggestions,
		}
	case domain.NoticeNoMatches:
		return &Notice{
			Kind:        n,
			Title:       "No matching products",
			Message:     "No products match the current filters.",
			Suggestions: searchSuggestions,
		}
	default:
		return nil
	}
}

func toProductDTO(p domain.Product) Product {
	return Product{
		ID:           p.ID,
		SKU:          p.SKU(),
		Name:         p.Name,
		PriceInCents: p.PriceInCents,
		PriceDisplay: domain.FormatPrice(p.PriceInCents),
		ImageURL:     p.ImageURL,
	}
}

func toProductDTOs(items []domain.Product) []Product {
	out := make([]Product, 0, len(items))
	for _, p := range items {
		out = append(out, toProductDTO(p))
	}
	return out
}
