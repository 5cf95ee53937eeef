package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxReader reads one sheet of an Excel workbook.
type xlsxReader struct {
	file   *excelize.File
	header []string
	rows   [][]string
	pos    int
}

func openXLSX(path string, opts Options) (Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		f.Close()
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := rows[0]
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	return &xlsxReader{file: f, header: header, rows: rows[1:]}, nil
}

func (x *xlsxReader) Header() []string {
	return x.header
}

func (x *xlsxReader) Next() ([]string, error) {
	if x.pos >= len(x.rows) {
		return nil, io.EOF
	}
	row := x.rows[x.pos]
	x.pos++
	return row, nil
}

func (x *xlsxReader) Close() error {
	return x.file.Close()
}
