// Package domain holds the storefront's core types.
package domain

import "strings"

// PriceBucket is a coarse, half-open price range used by the search filters.
type PriceBucket int

const (
	BucketAll PriceBucket = iota
	BucketUnder100
	Bucket100To500
	Bucket500To1000
	Bucket1000To3000
	BucketOver3000
)

var bucketNames = [...]string{
	BucketAll:        "all",
	BucketUnder100:   "under_100",
	Bucket100To500:   "100_to_500",
	Bucket500To1000:  "500_to_1000",
	Bucket1000To3000: "1000_to_3000",
	BucketOver3000:   "over_3000",
}

// Bucket bounds in cents. A bucket owns [low, high); the top bucket is unbounded.
var bucketBounds = [...]struct{ low, high int64 }{
	BucketUnder100:   {0, 10000},
	Bucket100To500:   {10000, 50000},
	Bucket500To1000:  {50000, 100000},
	Bucket1000To3000: {100000, 300000},
	BucketOver3000:   {300000, -1},
}

// PriceBuckets lists every bucket in display order.
func PriceBuckets() []PriceBucket {
	return []PriceBucket{BucketAll, BucketUnder100, Bucket100To500, Bucket500To1000, Bucket1000To3000, BucketOver3000}
}

// ParsePriceBucket maps a filter value to a bucket. Both the canonical names
// ("100_to_500") and the dashed form ("100-500") are accepted; anything else is BucketAll.
func ParsePriceBucket(s string) PriceBucket {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "under_100":
		return BucketUnder100
	case "100_to_500", "100_500":
		return Bucket100To500
	case "500_to_1000", "500_1000":
		return Bucket500To1000
	case "1000_to_3000", "1000_3000":
		return Bucket1000To3000
	case "over_3000":
		return BucketOver3000
	default:
		return BucketAll
	}
}

func (b PriceBucket) valid() bool {
	return b >= BucketAll && b <= BucketOver3000
}

func (b PriceBucket) String() string {
	if !b.valid() {
		return bucketNames[BucketAll]
	}
	return bucketNames[b]
}

// Contains reports whether a price in cents falls inside the bucket.
// Out-of-range values behave like BucketAll.
func (b PriceBucket) Contains(priceInCents int64) bool {
	if b == BucketAll || !b.valid() {
		return true
	}
	bounds := bucketBounds[b]
	if priceInCents < bounds.low {
		return false
	}
	return bounds.high < 0 || priceInCents < bounds.high
}

func (b PriceBucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText never fails; unknown values decode to BucketAll.
func (b *PriceBucket) UnmarshalText(text []byte) error {
	*b = ParsePriceBucket(string(text))
	return nil
}

// SortKey selects the result ordering.
type SortKey int

const (
	// SortRelevance keeps the source order; no scoring is computed.
	SortRelevance SortKey = iota
	SortPriceLowToHigh
	SortPriceHighToLow
	SortNameAscending
)

var sortNames = [...]string{
	SortRelevance:      "relevance",
	SortPriceLowToHigh: "price_low_to_high",
	SortPriceHighToLow: "price_high_to_low",
	SortNameAscending:  "name_ascending",
}

// SortKeys lists every sort key in display order.
func SortKeys() []SortKey {
	return []SortKey{SortRelevance, SortPriceLowToHigh, SortPriceHighToLow, SortNameAscending}
}

// ParseSortKey maps a sort value to a key. The short forms used by the storefront
// ("price-low", "price-high", "name") are accepted; anything else is SortRelevance.
func ParseSortKey(s string) SortKey {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "price_low_to_high", "price_low":
		return SortPriceLowToHigh
	case "price_high_to_low", "price_high":
		return SortPriceHighToLow
	case "name_ascending", "name":
		return SortNameAscending
	default:
		return SortRelevance
	}
}

func (k SortKey) valid() bool {
	return k >= SortRelevance && k <= SortNameAscending
}

func (k SortKey) String() string {
	if !k.valid() {
		return sortNames[SortRelevance]
	}
	return sortNames[k]
}

func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText never fails; unknown values decode to SortRelevance.
func (k *SortKey) UnmarshalText(text []byte) error {
	*k = ParseSortKey(string(text))
	return nil
}

// Query is the descriptor of one search/filter request.
type Query struct {
	Term   string
	Bucket PriceBucket
	Sort   SortKey
}

// Normalize trims the term and folds out-of-range enums to their defaults.
func (q Query) Normalize() Query {
	q.Term = strings.TrimSpace(q.Term)
	if !q.Bucket.valid() {
		q.Bucket = BucketAll
	}
	if !q.Sort.valid() {
		q.Sort = SortRelevance
	}
	return q
}

// SearchInput adds pagination to a query. PerPage < 1 returns every match.
type SearchInput struct {
	Query   Query
	Page    int
	PerPage int
}

// Notice tells the list view which empty state, if any, to render.
type Notice int

const (
	NoticeNone Notice = iota
	NoticeCatalogEmpty
	NoticeNoResults
	NoticeNoMatches
)

var noticeNames = [...]string{
	NoticeNone:         "none",
	NoticeCatalogEmpty: "catalog_empty",
	NoticeNoResults:    "no_results",
	NoticeNoMatches:    "no_matches",
}

func (n Notice) String() string {
	if n < NoticeNone || n > NoticeNoMatches {
		return noticeNames[NoticeNone]
	}
	return noticeNames[n]
}

func (n Notice) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText decodes unknown names to NoticeNone.
func (n *Notice) UnmarshalText(text []byte) error {
	*n = NoticeNone
	for i, name := range noticeNames {
		if name == string(text) {
			*n = Notice(i)
		}
	}
	return nil
}

// SearchResult wraps the search output.
type SearchResult struct {
	Items   []Product
	Total   int
	Page    int
	PerPage int
	Query   Query
	Notice  Notice
}
