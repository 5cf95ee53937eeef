package syncer

import (
	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
	"github.com/mkravets/shopify-sheet-sync/internal/shopify"
)

// BuildProductCreate builds the creation payload for a row: descriptive
// fields plus the initial variant stub and, when the row carries an image
// URL, the initial image entry.
func BuildProductCreate(rec *catalog.RowRecord) shopify.ProductInput {
	input := shopify.ProductInput{
		Title:           rec.Title,
		Handle:          rec.Handle,
		DescriptionHTML: rec.BodyHTML,
		ProductType:     rec.ProductType,
		Vendor:          rec.Vendor,
		Tags:            rec.Tags,
		Variants: []shopify.VariantInput{
			{
				SKU:     rec.SKU,
				Price:   rec.Price.String(),
				Options: []string{rec.OptionValue},
			},
		},
	}
	if rec.ImageSrc != "" {
		input.Images = []shopify.ImageInput{{Src: rec.ImageSrc}}
	}
	return input
}

// BuildProductUpdate builds the update payload for a row against an existing
// product: the mutable descriptive fields keyed by the existing id. Variants
// and images never appear here; the API requires their dedicated mutations.
func BuildProductUpdate(rec *catalog.RowRecord, existing *shopify.Product) shopify.ProductInput {
	return shopify.ProductInput{
		ID:              existing.ID,
		Title:           rec.Title,
		DescriptionHTML: rec.BodyHTML,
		ProductType:     rec.ProductType,
		Vendor:          rec.Vendor,
		Tags:            rec.Tags,
	}
}

// BuildVariantPayload matches the row's SKU against the product's variants,
// first match wins. When matched it returns a bulk-update input for that
// variant id; otherwise a create input for a new variant. The update is
// emitted even if the price is unchanged.
func BuildVariantPayload(rec *catalog.RowRecord, product *shopify.Product) (shopify.VariantBulkInput, bool) {
	option := []shopify.OptionValueInput{{OptionName: "Title", Name: rec.OptionValue}}

	for _, v := range product.Variants {
		if v.SKU == rec.SKU {
			return shopify.VariantBulkInput{
				ID:    v.ID,
				SKU:   rec.SKU,
				Price: rec.Price.String(),
			}, true
		}
	}

	return shopify.VariantBulkInput{
		SKU:          rec.SKU,
		Price:        rec.Price.String(),
		OptionValues: option,
	}, false
}

// ImageAlreadyAttached reports whether any known image of the given products
// has the row's source URL. Nil products are skipped.
func ImageAlreadyAttached(src string, products ...*shopify.Product) bool {
	for _, p := range products {
		if p == nil {
			continue
		}
		for _, img := range p.Images {
			if img.Src == src {
				return true
			}
		}
	}
	return false
}
