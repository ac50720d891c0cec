package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reader yields header-keyed records from a CSV stream.
type Reader struct {
	csv    *csv.Reader
	header []string
	row    int
}

func NewReader(r io.Reader) (*Reader, error) {
	parser := csv.NewReader(r)
	parser.ReuseRecord = true
	// Short rows are reported per record as missing fields instead of aborting the file.
	parser.FieldsPerRecord = -1

	header, err := parser.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	names := make([]string, len(header))
	copy(names, header)
	if len(names) > 0 {
		// Spreadsheet exports often carry a UTF-8 BOM on the first column.
		names[0] = strings.TrimPrefix(names[0], "\ufeff")
	}

	return &Reader{csv: parser, header: names}, nil
}

func (r *Reader) Header() []string {
	return r.header
}

// Row returns the 1-based index of the last data record read.
func (r *Reader) Row() int {
	return r.row
}

// Next returns the next record or io.EOF. A malformed row still advances
// Row, so callers can report it and keep reading.
func (r *Reader) Next() (Record, error) {
	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	r.row++
	if err != nil {
		return nil, err
	}

	rec := make(Record, len(r.header))
	for i, name := range r.header {
		if i < len(row) {
			rec[name] = row[i]
		}
	}
	return rec, nil
}
