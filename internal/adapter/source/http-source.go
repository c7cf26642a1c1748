package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/behzade/storefront/internal/domain"
)

const (
	defaultHTTPTimeout  = 10 * time.Second
	maxCatalogBodyBytes = 8 << 20
)

// HTTP fetches the catalog from a JSON endpoint with a single GET per call.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP returns an HTTP source. A nil client gets a default client with a 10s timeout.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTP{url: url, client: client}
}

func (h *HTTP) Name() string { return "http" }

func (h *HTTP) Products(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxCatalogBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	products, err := DecodeCatalog(data, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("catalog endpoint %s: %w", h.url, err)
	}
	return products, nil
}
