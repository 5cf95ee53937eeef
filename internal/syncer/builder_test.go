package syncer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
	"github.com/mkravets/shopify-sheet-sync/internal/shopify"
)

func mugRecord() *catalog.RowRecord {
	return &catalog.RowRecord{
		Handle:      "coffee-mug",
		Title:       "Coffee Mug",
		BodyHTML:    "<p>Nice mug</p>",
		Vendor:      "Brand A",
		ProductType: "Mugs",
		Tags:        []string{"kitchen"},
		SKU:         "SKU001",
		Price:       decimal.RequireFromString("299"),
		OptionValue: "Default",
		ImageSrc:    "https://example.com/mug.jpg",
	}
}

func TestBuildProductCreate(t *testing.T) {
	input := BuildProductCreate(mugRecord())

	assert.Equal(t, "coffee-mug", input.Handle)
	assert.Equal(t, "Coffee Mug", input.Title)
	assert.Equal(t, "<p>Nice mug</p>", input.DescriptionHTML)
	assert.Equal(t, "Brand A", input.Vendor)
	assert.Equal(t, "Mugs", input.ProductType)
	assert.Equal(t, []string{"kitchen"}, input.Tags)

	require.Len(t, input.Variants, 1)
	assert.Equal(t, shopify.VariantInput{
		SKU:     "SKU001",
		Price:   "299",
		Options: []string{"Default"},
	}, input.Variants[0])

	require.Len(t, input.Images, 1)
	assert.Equal(t, "https://example.com/mug.jpg", input.Images[0].Src)
}

func TestBuildProductCreateWithoutImage(t *testing.T) {
	rec := mugRecord()
	rec.ImageSrc = ""

	input := BuildProductCreate(rec)
	assert.Empty(t, input.Images)
}

func TestBuildProductUpdateExcludesVariantsAndImages(t *testing.T) {
	existing := &shopify.Product{ID: "gid://shopify/Product/1", Handle: "coffee-mug"}

	input := BuildProductUpdate(mugRecord(), existing)

	assert.Equal(t, "gid://shopify/Product/1", input.ID)
	assert.Equal(t, "Coffee Mug", input.Title)
	assert.Empty(t, input.Handle)
	assert.Nil(t, input.Variants)
	assert.Nil(t, input.Images)
}

func TestBuildVariantPayloadMatchesBySKU(t *testing.T) {
	product := &shopify.Product{
		ID: "gid://shopify/Product/1",
		Variants: []shopify.Variant{
			{ID: "gid://shopify/ProductVariant/10", SKU: "A", Price: "100"},
			{ID: "gid://shopify/ProductVariant/20", SKU: "B", Price: "200"},
		},
	}
	rec := mugRecord()
	rec.SKU = "B"
	rec.Price = decimal.RequireFromString("250")

	payload, matched := BuildVariantPayload(rec, product)

	require.True(t, matched)
	assert.Equal(t, "gid://shopify/ProductVariant/20", payload.ID)
	assert.Equal(t, "B", payload.SKU)
	assert.Equal(t, "250", payload.Price)
}

func TestBuildVariantPayloadEmitsUnchangedPrice(t *testing.T) {
	product := &shopify.Product{
		Variants: []shopify.Variant{
			{ID: "gid://shopify/ProductVariant/10", SKU: "SKU001", Price: "299"},
		},
	}

	payload, matched := BuildVariantPayload(mugRecord(), product)

	require.True(t, matched)
	assert.Equal(t, "299", payload.Price)
}

func TestBuildVariantPayloadUnmatchedSKUIsCreate(t *testing.T) {
	product := &shopify.Product{
		Variants: []shopify.Variant{
			{ID: "gid://shopify/ProductVariant/10", SKU: "OTHER", Price: "100"},
		},
	}

	payload, matched := BuildVariantPayload(mugRecord(), product)

	require.False(t, matched)
	assert.Empty(t, payload.ID)
	assert.Equal(t, "SKU001", payload.SKU)
	assert.Equal(t, "299", payload.Price)
	require.Len(t, payload.OptionValues, 1)
	assert.Equal(t, shopify.OptionValueInput{OptionName: "Title", Name: "Default"}, payload.OptionValues[0])
}

func TestImageAlreadyAttached(t *testing.T) {
	product := &shopify.Product{
		Images: []shopify.Image{
			{ID: "gid://shopify/ProductImage/1", Src: "https://example.com/mug.jpg"},
		},
	}

	assert.True(t, ImageAlreadyAttached("https://example.com/mug.jpg", product))
	assert.False(t, ImageAlreadyAttached("https://example.com/other.jpg", product))
	assert.False(t, ImageAlreadyAttached("https://example.com/mug.jpg", nil))
}
