package source

import (
	"context"

	"github.com/behzade/storefront/internal/domain"
)

// Seed serves the built-in sample catalog.
type Seed struct {
	products []domain.Product
}

func NewSeed() *Seed {
	return &Seed{products: []domain.Product{
		{ID: 1, Name: "Classic White Sneakers", PriceInCents: 298000, ImageURL: "https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77?w=400&h=400&auto=format&fit=crop"},
		{ID: 2, Name: "Wool Blend Scarf", PriceInCents: 128000, ImageURL: "/images/products/wool-blend-scarf.jpg"},
		{ID: 3, Name: "Retro Round Sunglasses", PriceInCents: 89900, ImageURL: "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=400&h=400&auto=format&fit=crop"},
		{ID: 4, Name: "Canvas Tote Bag", PriceInCents: 45000, ImageURL: "/images/products/canvas-tote-bag.jpg"},
		{ID: 5, Name: "Ceramic Pour-Over Set", PriceInCents: 156000, ImageURL: "/images/products/ceramic-pour-over-set.jpg"},
		{ID: 6, Name: "Leather Weekender Bag", PriceInCents: 458000, ImageURL: "/images/products/leather-weekender-bag.jpg"},
		{ID: 7, Name: "Cotton Crew Socks", PriceInCents: 9900, ImageURL: "/images/products/cotton-crew-socks.jpg"},
		{ID: 8, Name: "Stainless Water Bottle", PriceInCents: 68000, ImageURL: "/images/products/stainless-water-bottle.jpg"},
	}}
}

func (s *Seed) Name() string { return "seed" }

// Products returns a copy so callers can never reorder the sample data.
func (s *Seed) Products(context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), s.products...), nil
}
