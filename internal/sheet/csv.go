package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// csvReader reads a CSV file with a header row.
type csvReader struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

func openCSV(path string, opts Options) (Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var reader io.Reader = file
	switch opts.Encoding {
	case "", "utf-8":
	case "windows-1251":
		reader = charmap.Windows1251.NewDecoder().Reader(file)
	default:
		file.Close()
		return nil, fmt.Errorf("unsupported encoding: %s", opts.Encoding)
	}

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = ","
	}

	r := csv.NewReader(reader)
	r.Comma = rune(delimiter[0])
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	// Rows may be shorter than the header; missing cells read as empty.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	return &csvReader{file: file, reader: r, header: header}, nil
}

func (c *csvReader) Header() []string {
	return c.header
}

func (c *csvReader) Next() ([]string, error) {
	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	return record, nil
}

func (c *csvReader) Close() error {
	return c.file.Close()
}
