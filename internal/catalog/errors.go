package catalog

import "fmt"

// MissingColumnError reports a required column that is absent or empty.
// Row 0 means the column is missing from the sheet header entirely, which is
// fatal to the whole run; any other row means that single row is rejected.
type MissingColumnError struct {
	Row    int64
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("required column %q missing from header", e.Column)
	}
	return fmt.Sprintf("row %d: required column %q is empty", e.Row, e.Column)
}

// Structural reports whether the error invalidates the whole sheet rather
// than a single row.
func (e *MissingColumnError) Structural() bool {
	return e.Row == 0
}

// InvalidPriceError reports a Variant Price cell that is not a non-negative
// decimal number.
type InvalidPriceError struct {
	Row   int64
	Value string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("row %d: invalid price %q: must be a non-negative number", e.Row, e.Value)
}
