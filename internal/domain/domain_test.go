package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceBucket(t *testing.T) {
	tests := []struct {
		in   string
		want PriceBucket
	}{
		{"all", BucketAll},
		{"under_100", BucketUnder100},
		{"under-100", BucketUnder100},
		{"100_to_500", Bucket100To500},
		{"100-500", Bucket100To500},
		{" 500-1000 ", Bucket500To1000},
		{"1000_TO_3000", Bucket1000To3000},
		{"over-3000", BucketOver3000},
		{"", BucketAll},
		{"cheap", BucketAll},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePriceBucket(tt.in))
		})
	}
}

func TestPriceBucketBoundaries(t *testing.T) {
	tests := []struct {
		price int64
		want  PriceBucket
	}{
		{0, BucketUnder100},
		{9999, BucketUnder100},
		{10000, Bucket100To500},
		{49999, Bucket100To500},
		{50000, Bucket500To1000},
		{99999, Bucket500To1000},
		{100000, Bucket1000To3000},
		{299999, Bucket1000To3000},
		{300000, BucketOver3000},
		{99_000_000, BucketOver3000},
	}
	for _, tt := range tests {
		var owners []PriceBucket
		for _, b := range PriceBuckets() {
			if b != BucketAll && b.Contains(tt.price) {
				owners = append(owners, b)
			}
		}
		require.Len(t, owners, 1, "price %d must fall in exactly one bucket", tt.price)
		assert.Equal(t, tt.want, owners[0], "price %d", tt.price)
		assert.True(t, BucketAll.Contains(tt.price))
	}
}

func TestOutOfRangeEnumsFallBack(t *testing.T) {
	assert.True(t, PriceBucket(42).Contains(1))
	assert.Equal(t, "all", PriceBucket(-1).String())
	assert.Equal(t, "relevance", SortKey(9).String())

	q := Query{Term: "  scarf ", Bucket: PriceBucket(99), Sort: SortKey(-3)}.Normalize()
	assert.Equal(t, Query{Term: "scarf", Bucket: BucketAll, Sort: SortRelevance}, q)
}

func TestSortKeyText(t *testing.T) {
	for _, k := range SortKeys() {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got SortKey
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	var k SortKey
	require.NoError(t, k.UnmarshalText([]byte("price-high")))
	assert.Equal(t, SortPriceHighToLow, k)
	require.NoError(t, k.UnmarshalText([]byte("popularity")))
	assert.Equal(t, SortRelevance, k)
}

func TestValidateCatalog(t *testing.T) {
	ok := []Product{{ID: 1, Name: "a"}, {ID: 2, Name: "b", PriceInCents: 100}}
	require.NoError(t, ValidateCatalog(ok))
	require.NoError(t, ValidateCatalog(nil))

	tests := map[string][]Product{
		"zero id":        {{ID: 0}},
		"negative price": {{ID: 1, PriceInCents: -1}},
		"duplicate id":   {{ID: 3}, {ID: 3}},
	}
	for name, products := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateCatalog(products), ErrInvalidCatalog)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "NT$ 2,980", FormatPrice(298000))
	assert.Equal(t, "NT$ 899", FormatPrice(89900))
	assert.Equal(t, "NT$ 123.45", FormatPrice(12345))
	assert.Equal(t, "NT$ 60.5", FormatPrice(6050))
	assert.Equal(t, "NT$ 0", FormatPrice(0))
	assert.Equal(t, "NT$ 1,234,567", FormatPrice(123456700))
	assert.Equal(t, "-NT$ 12.5", FormatPrice(-1250))
	assert.Equal(t, "-NT$ 92,233,720,368,547,758.08", FormatPrice(math.MinInt64))
	assert.Equal(t, "NT$ 92,233,720,368,547,758.07", FormatPrice(math.MaxInt64))
}

func TestProductSKU(t *testing.T) {
	assert.Equal(t, "#000042", Product{ID: 42}.SKU())
}

func TestNoticeText(t *testing.T) {
	for _, n := range []Notice{NoticeNone, NoticeCatalogEmpty, NoticeNoResults, NoticeNoMatches} {
		text, err := n.MarshalText()
		require.NoError(t, err)

		var got Notice
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, n, got)
	}

	var n Notice = NoticeNoResults
	require.NoError(t, n.UnmarshalText([]byte("bogus")))
	assert.Equal(t, NoticeNone, n)
	assert.Equal(t, "none", Notice(42).String())
}
