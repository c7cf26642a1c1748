// Package checkout computes cart and checkout totals. Nothing here submits or persists orders.
package checkout

import (
	"fmt"
	"math"
	"strings"

	"github.com/behzade/storefront/internal/domain"
)

// ShippingMethod is the delivery option chosen on the checkout form.
type ShippingMethod int

const (
	HomeDelivery ShippingMethod = iota
	ConvenienceStore
)

// convenienceStoreFee is NT$ 60.
const convenienceStoreFee int64 = 6000

// ParseShippingMethod accepts "home_delivery" / "convenience_store" (dashes allowed).
// Unknown values fall back to HomeDelivery.
func ParseShippingMethod(s string) ShippingMethod {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "convenience_store":
		return ConvenienceStore
	default:
		return HomeDelivery
	}
}

func (m ShippingMethod) String() string {
	if m == ConvenienceStore {
		return "convenience_store"
	}
	return "home_delivery"
}

// FeeInCents is the shipping charge. Home delivery is free.
func (m ShippingMethod) FeeInCents() int64 {
	if m == ConvenienceStore {
		return convenienceStoreFee
	}
	return 0
}

func (m ShippingMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ShippingMethod) UnmarshalText(text []byte) error {
	*m = ParseShippingMethod(string(text))
	return nil
}

// Line is one cart entry.
type Line struct {
	Product  domain.Product
	Quantity int
}

// PricedLine is a cart entry with its line total.
type PricedLine struct {
	Line
	TotalInCents int64
}

// Summary is the order summary shown beside the checkout form.
type Summary struct {
	Lines           []PricedLine
	Shipping        ShippingMethod
	SubtotalInCents int64
	ShippingInCents int64
	TotalInCents    int64
}

// ItemCount is the number of units across all lines.
func (s Summary) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// Quote prices the lines. Lines with a non-positive quantity are dropped, the way the cart
// removes an item whose quantity reaches zero; repeated products are merged in first-seen order.
// Totals that do not fit in int64 are rejected as invalid.
func Quote(lines []Line, method ShippingMethod) (Summary, error) {
	merged := make([]PricedLine, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i, ok := index[l.Product.ID]; ok {
			if merged[i].Quantity > math.MaxInt-l.Quantity {
				return Summary{}, errTotalRange
			}
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.Product.ID] = len(merged)
		merged = append(merged, PricedLine{Line: l})
	}

	s := Summary{Lines: merged, Shipping: method}
	for i := range s.Lines {
		l := &s.Lines[i]
		total, ok := mulCents(l.Product.PriceInCents, int64(l.Quantity))
		if !ok {
			return Summary{}, errTotalRange
		}
		l.TotalInCents = total
		if s.SubtotalInCents, ok = addCents(s.SubtotalInCents, total); !ok {
			return Summary{}, errTotalRange
		}
	}
	s.ShippingInCents = method.FeeInCents()
	var ok bool
	if s.TotalInCents, ok = addCents(s.SubtotalInCents, s.ShippingInCents); !ok {
		return Summary{}, errTotalRange
	}
	return s, nil
}

var errTotalRange = fmt.Errorf("%w: order total out of range", domain.ErrInvalidArgument)

// mulCents multiplies non-negative amounts, reporting false on overflow.
func mulCents(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

// addCents adds non-negative amounts, reporting false on overflow.
func addCents(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
