package catalog

import "github.com/shopspring/decimal"

// Recognized spreadsheet column headers.
const (
	ColHandle       = "Handle"
	ColTitle        = "Title"
	ColBodyHTML     = "Body (HTML)"
	ColType         = "Type"
	ColVendor       = "Vendor"
	ColTags         = "Tags"
	ColVariantSKU   = "Variant SKU"
	ColVariantPrice = "Variant Price"
	ColOption1Value = "Option1 Value"
	ColImageSrc     = "Image Src"
)

// RequiredColumns must be present in the sheet header; a sheet missing any of
// them is rejected before any row is processed.
var RequiredColumns = []string{ColHandle, ColTitle, ColVariantSKU, ColVariantPrice}

// OptionalColumns are recognized but may be absent from the header.
var OptionalColumns = []string{ColBodyHTML, ColType, ColVendor, ColTags, ColOption1Value, ColImageSrc}

// DefaultOptionValue is used when the Option1 Value cell is empty or absent.
const DefaultOptionValue = "Default"

// RowRecord is one validated spreadsheet row. Immutable once produced.
type RowRecord struct {
	Handle      string
	Title       string
	BodyHTML    string
	Vendor      string
	ProductType string
	Tags        []string
	SKU         string
	Price       decimal.Decimal
	OptionValue string
	ImageSrc    string // empty if the row has no image
}

// OutcomeKind classifies the result of processing one row.
type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeFailed  OutcomeKind = "failed"
)

// Outcome is the per-row result reported to the batch driver.
type Outcome struct {
	Row     int64 // 1-based sheet row number, the header occupies row 1
	Handle  string
	Kind    OutcomeKind
	Reason  string // set for skipped and failed outcomes
	Warning string // degraded result, e.g. image attach failure
}
