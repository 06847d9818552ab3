package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// CSVReader reads comma separated values. The first record is the header.
type CSVReader struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune
}

var _ Reader = (*CSVReader)(nil)

// Read parses the CSV stream. Records may have a different number of fields than the
// header: short records leave trailing columns absent, extra fields are ignored.
func (r *CSVReader) Read(ctx context.Context, in io.Reader) (*Table, error) {
	cr := csv.NewReader(in)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read CSV headers: empty input")
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var records [][]string
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error at line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return FromRecords(header, records), nil
}
