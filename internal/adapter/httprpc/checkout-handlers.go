package httprpcadapter

import (
	"context"
	"fmt"

	"github.com/behzade/storefront/internal/core/checkout"
	"github.com/behzade/storefront/internal/domain"
	"github.com/behzade/storefront/internal/httprpc"
)

// maxQuoteItems bounds the cart size of a single quote request.
const maxQuoteItems = 100

// CheckoutHandlers wires httprpc endpoints to the checkout module.
type CheckoutHandlers struct {
	module *checkout.Module
}

func NewCheckoutHandlers(module *checkout.Module) *CheckoutHandlers {
	return &CheckoutHandlers{module: module}
}

type (
	QuoteRequest struct {
		Items    []QuoteItem             `json:"items"`
		Shipping checkout.ShippingMethod `json:"shipping"`
	}

	QuoteItem struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}

	QuoteResponse struct {
		Lines           []QuoteLine             `json:"lines"`
		ItemCount       int                     `json:"item_count"`
		Shipping        checkout.ShippingMethod `json:"shipping"`
		SubtotalInCents int64                   `json:"subtotal_in_cents"`
		ShippingInCents int64                   `json:"shipping_in_cents"`
		TotalInCents    int64                   `json:"total_in_cents"`
		TotalDisplay    string                  `json:"total_display"`
	}

	QuoteLine struct {
		Product      Product `json:"product"`
		Quantity     int     `json:"quantity"`
		TotalInCents int64   `json:"total_in_cents"`
		TotalDisplay string  `json:"total_display"`
	}
)

// Register mounts checkout endpoints under the provided group.
func (h *CheckoutHandlers) Register(api *httprpc.EndpointGroup) {
	httprpc.RegisterHandler(
		api,
		httprpc.POST(
			func(ctx context.Context, req QuoteRequest) (QuoteResponse, error) {
				if len(req.Items) > maxQuoteItems {
					return QuoteResponse{}, mapError(fmt.Errorf("%w: at most %d items per quote", domain.ErrInvalidArgument, maxQuoteItems))
				}
				items := make([]checkout.Item, 0, len(req.Items))
				for _, it := range req.Items {
					items = append(items, checkout.Item{ProductID: it.ProductID, Quantity: it.Quantity})
				}
				s, err := h.module.Quote(ctx, items, req.Shipping)
				if err != nil {
					return QuoteResponse{}, mapError(err)
				}
				return toQuoteDTO(s), nil
			},
			"/checkout/quote",
		),
	)
}

func toQuoteDTO(s checkout.Summary) QuoteResponse {
	lines := make([]QuoteLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, QuoteLine{
			Product:      toProductDTO(l.Product),
			Quantity:     l.Quantity,
			TotalInCents: l.TotalInCents,
			TotalDisplay: domain.FormatPrice(l.TotalInCents),
		})
	}
	return QuoteResponse{
		Lines:           lines,
		ItemCount:       s.ItemCount(),
		Shipping:        s.Shipping,
		SubtotalInCents: s.SubtotalInCents,
		ShippingInCents: s.ShippingInCents,
		TotalInCents:    s.TotalInCents,
		TotalDisplay:    domain.FormatPrice(s.TotalInCents),
	}
}
