// Package sheet reads tabular product data from spreadsheet files.
// Both readers expose the same interface: a trimmed header row followed by
// string-cell data rows, ending with io.EOF.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader iterates the rows of one spreadsheet.
type Reader interface {
	// Header returns the trimmed header row.
	Header() []string
	// Next returns the next data row, or io.EOF when the sheet is exhausted.
	Next() ([]string, error)
	Close() error
}

// Options controls how the file is read.
type Options struct {
	Sheet     string // Excel sheet name; first sheet when empty
	Encoding  string // CSV encoding: "utf-8" (default) or "windows-1251"
	Delimiter string // CSV delimiter; "," when empty
}

// Open opens a spreadsheet by file extension.
func Open(path string, opts Options) (Reader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return openCSV(path, opts)
	case ".xlsx":
		return openXLSX(path, opts)
	case ".xls":
		return nil, fmt.Errorf("legacy .xls is not supported, convert the file to .xlsx")
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// IsEmptyRow reports whether every cell of a row is blank.
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
