package httprpcadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/behzade/storefront/internal/adapter/source"
	"github.com/behzade/storefront/internal/core/catalog"
	"github.com/behzade/storefront/internal/core/checkout"
	"github.com/behzade/storefront/internal/domain"
	"github.com/behzade/storefront/internal/httprpc"
)

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Products(context.Context) ([]domain.Product, error) {
	return nil, errors.New("connection refused")
}

func newTestHandler(t *testing.T, src catalog.Source) http.Handler {
	t.Helper()

	catalogModule := catalog.New(src, catalog.Engine{}, nil)
	r := httprpc.New()
	api := r.Group("/api")
	NewCatalogHandlers(catalogModule).Register(api)
	NewCheckoutHandlers(checkout.New(catalogModule)).Register(api)

	h, err := r.Handler()
	if err != nil {
		t.Fatalf("handler build error: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func productIDs(items []Product) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestPing(t *testing.T) {
	rec := do(t, newTestHandler(t, source.NewSeed()), http.MethodGet, "/api/ping", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[PingResponse](t, rec); !got.OK {
		t.Fatalf("expected ok response")
	}
}

func TestListProducts(t *testing.T) {
	rec := do(t, newTestHandler(t, source.NewSeed()), http.MethodGet, "/api/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[ListProductsResponse](t, rec)
	if got.Total != 8 || len(got.Items) != 8 {
		t.Fatalf("expected the 8 seed products, got total=%d items=%d", got.Total, len(got.Items))
	}
	want := Product{
		ID:           1,
		SKU:          "#000001",
		Name:         "Classic White Sneakers",
		PriceInCents: 298000,
		PriceDisplay: "NT$ 2,980",
		ImageURL:     got.Items[0].ImageURL,
	}
	if diff := cmp.Diff(want, got.Items[0]); diff != "" {
		t.Fatalf("first product mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchProducts(t *testing.T) {
	h := newTestHandler(t, source.NewSeed())

	tests := []struct {
		name   string
		target string
		ids    []int64
		query  SearchQuery
		notice domain.Notice
	}{
		{
			name:   "term and sort",
			target: "/api/products/search?q=%20BAG%20&sort=price-high",
			ids:    []int64{6, 4},
			query:  SearchQuery{Term: "BAG", Price: domain.BucketAll, Sort: domain.SortPriceHighToLow},
			notice: domain.NoticeNone,
		},
		{
			name:   "bucket filter",
			target: "/api/products/search?price=under-100",
			ids:    []int64{7},
			query:  SearchQuery{Price: domain.BucketUnder100},
			notice: domain.NoticeNone,
		},
		{
			name:   "unknown enums fall back",
			target: "/api/products/search?price=cheap&sort=random",
			ids:    []int64{1, 2, 3, 4, 5, 6, 7, 8},
			query:  SearchQuery{},
			notice: domain.NoticeNone,
		},
		{
			name:   "paging",
			target: "/api/products/search?sort=price_low_to_high&page=2&per_page=3",
			ids:    []int64{3, 2, 5},
			query:  SearchQuery{Sort: domain.SortPriceLowToHigh},
			notice: domain.NoticeNone,
		},
		{
			name:   "no results for term",
			target: "/api/products/search?q=umbrella",
			ids:    []int64{},
			query:  SearchQuery{Term: "umbrella"},
			notice: domain.NoticeNoResults,
		},
		{
			name:   "term excluded by bucket",
			target: "/api/products/search?q=socks&price=over_3000",
			ids:    []int64{},
			query:  SearchQuery{Term: "socks", Price: domain.BucketOver3000},
			notice: domain.NoticeNoResults,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			got := decode[SearchProductsResponse](t, rec)
			if diff := cmp.Diff(tt.ids, productIDs(got.Items)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.query, got.Query); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
			kind := domain.NoticeNone
			if got.Notice != nil {
				kind = got.Notice.Kind
			}
			if kind != tt.notice {
				t.Errorf("notice = %s, want %s", kind, tt.notice)
			}
		})
	}
}

func TestSearchProducts_EmptyStates(t *testing.T) {
	seed := newTestHandler(t, source.NewSeed())

	rec := do(t, seed, http.MethodGet, "/api/products/search?price=over_3000&q=", "")
	got := decode[SearchProductsResponse](t, rec)
	if got.Total != 1 || got.Notice != nil {
		t.Fatalf("expected one match and no notice, got total=%d notice=%+v", got.Total, got.Notice)
	}

	rec = do(t, seed, http.MethodGet, "/api/products/search?q=umbrella", "")
	got = decode[SearchProductsResponse](t, rec)
	want := &Notice{
		Kind:        domain.NoticeNoResults,
		Title:       "No matching products",
		Message:     `Sorry, no products match "umbrella".`,
		Suggestions: searchSuggestions,
	}
	if diff := cmp.Diff(want, got.Notice); diff != "" {
		t.Fatalf("notice mismatch (-want +got):\n%s", diff)
	}

	failing := newTestHandler(t, failingSource{})
	rec = do(t, failing, http.MethodGet, "/api/products/search?q=bag", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("source failure must not surface as an error, status = %d", rec.Code)
	}
	got = decode[SearchProductsResponse](t, rec)
	if got.Notice == nil || got.Notice.Kind != domain.NoticeCatalogEmpty {
		t.Fatalf("expected catalog_empty notice, got %+v", got.Notice)
	}
	if got.Items == nil {
		t.Fatalf("expected an empty items array, not null")
	}
}

type fixedSource []domain.Product

func (fixedSource) Name() string { return "fixed" }

func (s fixedSource) Products(context.Context) ([]domain.Product, error) { return s, nil }

func TestSearchProducts_NoMatchesWithoutTerm(t *testing.T) {
	h := newTestHandler(t, fixedSource{{ID: 1, Name: "Pencil", PriceInCents: 1500}})

	rec := do(t, h, http.MethodGet, "/api/products/search?price=over-3000", "")
	got := decode[SearchProductsResponse](t, rec)
	want := &Notice{
		Kind:        domain.NoticeNoMatches,
		Title:       "No matching products",
		Message:     "No products match the current filters.",
		Suggestions: searchSuggestions,
	}
	if diff := cmp.Diff(want, got.Notice); diff != "" {
		t.Fatalf("notice mismatch (-want +got):\n%s", diff)
	}
}

func TestGetProduct(t *testing.T) {
	h := newTestHandler(t, source.NewSeed())

	rec := do(t, h, http.MethodGet, "/api/products/get?id=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[Product](t, rec)
	if got.Name != "Retro Round Sunglasses" || got.SKU != "#000003" || got.PriceDisplay != "NT$ 899" {
		t.Fatalf("unexpected product %+v", got)
	}

	for target, status := range map[string]int{
		"/api/products/get?id=abc": http.StatusBadRequest,
		"/api/products/get?id=0":   http.StatusBadRequest,
		"/api/products/get":        http.StatusBadRequest,
		"/api/products/get?id=99":  http.StatusNotFound,
	} {
		rec := do(t, h, http.MethodGet, target, "")
		if rec.Code != status {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, status)
		}
		if body := decode[httprpc.ErrorBody](t, rec); body.Error == "" {
			t.Errorf("%s: expected error message", target)
		}
	}
}

func TestCheckoutQuote(t *testing.T) {
	h := newTestHandler(t, source.NewSeed())

	rec := do(t, h, http.MethodPost, "/api/checkout/quote",
		`{"items":[{"product_id":1,"quantity":2},{"product_id":3,"quantity":1},{"product_id":7,"quantity":0}],"shipping":"convenience_store"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	got := decode[QuoteResponse](t, rec)
	if len(got.Lines) != 2 || got.ItemCount != 3 {
		t.Fatalf("unexpected lines %+v", got.Lines)
	}
	if got.SubtotalInCents != 685900 || got.ShippingInCents != 6000 || got.TotalInCents != 691900 {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got.TotalDisplay != "NT$ 6,919" || got.Lines[0].TotalDisplay != "NT$ 5,960" {
		t.Fatalf("unexpected displays total=%q line=%q", got.TotalDisplay, got.Lines[0].TotalDisplay)
	}
	if got.Shipping != checkout.ConvenienceStore {
		t.Fatalf("shipping = %s", got.Shipping)
	}
}

func TestCheckoutQuote_Errors(t *testing.T) {
	h := newTestHandler(t, source.NewSeed())

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown product", `{"items":[{"product_id":99,"quantity":1}]}`, http.StatusBadRequest},
		{"malformed body", `{"items":[`, http.StatusBadRequest},
		{"too many items", `{"items":[` + strings.TrimSuffix(strings.Repeat(`{"product_id":1,"quantity":1},`, maxQuoteItems+1), ",") + `]}`, http.StatusBadRequest},
		{"quantity too large", `{"items":[{"product_id":1,"quantity":40000000000000}]}`, http.StatusBadRequest},
		{"repeated lines over the quantity limit", `{"items":[{"product_id":1,"quantity":999},{"product_id":1,"quantity":1}]}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/checkout/quote", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	rec := do(t, h, http.MethodGet, "/api/checkout/quote", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET quote: status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestCheckoutQuote_SourceFailureIsServerError(t *testing.T) {
	h := newTestHandler(t, failingSource{})

	rec := do(t, h, http.MethodPost, "/api/checkout/quote", `{"items":[{"product_id":1,"quantity":1}]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d (body=%s)", rec.Code, http.StatusInternalServerError, rec.Body.String())
	}
}

func TestSearchProducts_PageFarPastTheEnd(t *testing.T) {
	h := newTestHandler(t, source.NewSeed())

	rec := do(t, h, http.MethodGet, "/api/products/search?page=4611686018427387904&per_page=4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	got := decode[SearchProductsResponse](t, rec)
	if len(got.Items) != 0 || got.Total != 8 {
		t.Fatalf("items = %d total = %d, want 0 of 8", len(got.Items), got.Total)
	}
}
