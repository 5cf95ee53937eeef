package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHeader = []string{
	"Handle", "Title", "Body (HTML)", "Type", "Vendor", "Tags",
	"Variant SKU", "Variant Price", "Option1 Value", "Image Src",
}

func TestNewNormalizerRequiredColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		missing string
	}{
		{
			name:    "handle missing",
			header:  []string{"Title", "Variant SKU", "Variant Price"},
			missing: "Handle",
		},
		{
			name:    "price missing",
			header:  []string{"Handle", "Title", "Variant SKU"},
			missing: "Variant Price",
		},
		{
			name:   "only required columns present",
			header: []string{"Handle", "Title", "Variant SKU", "Variant Price"},
		},
		{
			name:   "full header",
			header: fullHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNormalizer(tt.header)
			if tt.missing == "" {
				require.NoError(t, err)
				require.NotNil(t, n)
				return
			}
			var colErr *MissingColumnError
			require.ErrorAs(t, err, &colErr)
			assert.Equal(t, tt.missing, colErr.Column)
			assert.True(t, colErr.Structural())
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	n, err := NewNormalizer(fullHeader)
	require.NoError(t, err)

	row := []string{
		"coffee-mug", "Coffee Mug", "<p>Nice mug</p>", "Mugs", "Brand A",
		" kitchen , gifts,, ", "SKU001", "299", "", "https://example.com/mug.jpg",
	}

	rec, err := n.NormalizeRow(1, row)
	require.NoError(t, err)

	assert.Equal(t, "coffee-mug", rec.Handle)
	assert.Equal(t, "Coffee Mug", rec.Title)
	assert.Equal(t, "<p>Nice mug</p>", rec.BodyHTML)
	assert.Equal(t, "Mugs", rec.ProductType)
	assert.Equal(t, "Brand A", rec.Vendor)
	assert.Equal(t, []string{"kitchen", "gifts"}, rec.Tags)
	assert.Equal(t, "SKU001", rec.SKU)
	assert.True(t, rec.Price.Equal(decimal.NewFromInt(299)))
	assert.Equal(t, "Default", rec.OptionValue, "empty option cell defaults")
	assert.Equal(t, "https://example.com/mug.jpg", rec.ImageSrc)
}

func TestNormalizeRowMissingRequiredCell(t *testing.T) {
	n, err := NewNormalizer(fullHeader)
	require.NoError(t, err)

	tests := []struct {
		name   string
		row    []string
		column string
	}{
		{
			name:   "empty handle",
			row:    []string{"", "Mug", "", "", "", "", "SKU1", "10", "", ""},
			column: "Handle",
		},
		{
			name:   "empty title",
			row:    []string{"mug", "  ", "", "", "", "", "SKU1", "10", "", ""},
			column: "Title",
		},
		{
			name:   "empty sku",
			row:    []string{"mug", "Mug", "", "", "", "", "", "10", "", ""},
			column: "Variant SKU",
		},
		{
			name:   "short row missing price",
			row:    []string{"mug", "Mug", "", "", "", "", "SKU1"},
			column: "Variant Price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.NormalizeRow(7, tt.row)
			var colErr *MissingColumnError
			require.ErrorAs(t, err, &colErr)
			assert.Equal(t, tt.column, colErr.Column)
			assert.Equal(t, int64(7), colErr.Row)
			assert.False(t, colErr.Structural())
		})
	}
}

func TestNormalizeRowInvalidPrice(t *testing.T) {
	n, err := NewNormalizer(fullHeader)
	require.NoError(t, err)

	for _, price := range []string{"abc", "-1", "12,50", "1.2.3"} {
		t.Run(price, func(t *testing.T) {
			row := []string{"mug", "Mug", "", "", "", "", "SKU1", price, "", ""}
			_, err := n.NormalizeRow(3, row)
			var priceErr *InvalidPriceError
			require.True(t, errors.As(err, &priceErr), "want InvalidPriceError, got %v", err)
			assert.Equal(t, price, priceErr.Value)
			assert.Equal(t, int64(3), priceErr.Row)
		})
	}
}

func TestNormalizeRowOptionalColumnsAbsent(t *testing.T) {
	n, err := NewNormalizer([]string{"Handle", "Title", "Variant SKU", "Variant Price"})
	require.NoError(t, err)

	rec, err := n.NormalizeRow(1, []string{"mug", "Mug", "SKU1", "9.99"})
	require.NoError(t, err)

	assert.Empty(t, rec.BodyHTML)
	assert.Empty(t, rec.Vendor)
	assert.Nil(t, rec.Tags)
	assert.Empty(t, rec.ImageSrc)
	assert.Equal(t, "Default", rec.OptionValue)
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"kitchen", []string{"kitchen"}},
		{"a, b ,c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTags(tt.in), "splitTags(%q)", tt.in)
	}
}
