package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalizer converts raw spreadsheet rows into validated RowRecords.
// Column indexes are resolved once against the header.
type Normalizer struct {
	indexes map[string]int // column name -> index; only present columns appear
}

// NewNormalizer resolves recognized columns against the trimmed header row.
// It fails if any required column is missing from the header; optional
// columns that are absent are treated as always-empty values.
func NewNormalizer(header []string) (*Normalizer, error) {
	indexes := make(map[string]int, len(header))
	for i, name := range header {
		indexes[strings.TrimSpace(name)] = i
	}

	for _, col := range RequiredColumns {
		if _, ok := indexes[col]; !ok {
			return nil, &MissingColumnError{Row: 0, Column: col}
		}
	}

	n := &Normalizer{indexes: make(map[string]int)}
	for _, col := range append(append([]string{}, RequiredColumns...), OptionalColumns...) {
		if idx, ok := indexes[col]; ok {
			n.indexes[col] = idx
		}
	}
	return n, nil
}

// cell returns the trimmed value of a column for a row, or "" when the column
// is absent or the row is shorter than the header.
func (n *Normalizer) cell(row []string, col string) string {
	idx, ok := n.indexes[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Handle returns the Handle cell of a raw row, empty when absent. Callers use
// it to label rows whose normalization failed.
func (n *Normalizer) Handle(row []string) string {
	return n.cell(row, ColHandle)
}

// NormalizeRow validates one data row and produces a RowRecord.
// rowNo is the 1-based sheet row number used in error reporting.
func (n *Normalizer) NormalizeRow(rowNo int64, row []string) (*RowRecord, error) {
	for _, col := range RequiredColumns {
		if n.cell(row, col) == "" {
			return nil, &MissingColumnError{Row: rowNo, Column: col}
		}
	}

	rawPrice := n.cell(row, ColVariantPrice)
	price, err := decimal.NewFromString(rawPrice)
	if err != nil || price.IsNegative() {
		return nil, &InvalidPriceError{Row: rowNo, Value: rawPrice}
	}

	option := n.cell(row, ColOption1Value)
	if option == "" {
		option = DefaultOptionValue
	}

	return &RowRecord{
		Handle:      n.cell(row, ColHandle),
		Title:       n.cell(row, ColTitle),
		BodyHTML:    n.cell(row, ColBodyHTML),
		Vendor:      n.cell(row, ColVendor),
		ProductType: n.cell(row, ColType),
		Tags:        splitTags(n.cell(row, ColTags)),
		SKU:         n.cell(row, ColVariantSKU),
		Price:       price,
		OptionValue: option,
		ImageSrc:    n.cell(row, ColImageSrc),
	}, nil
}

// splitTags splits a comma-separated tags cell, trimming whitespace and
// dropping empty entries.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
