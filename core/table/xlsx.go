package table

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads a worksheet of an Excel workbook. The first row is the header.
type XLSXReader struct {
	// Sheet selects the worksheet by name. Defaults to the first sheet of the workbook.
	Sheet string
}

var _ Reader = (*XLSXReader)(nil)

// Read parses the workbook. Cell values are read in their displayed (formatted) form.
func (r *XLSXReader) Read(ctx context.Context, in io.Reader) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no worksheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet %q has no header row", sheet)
	}

	t := FromRecords(rows[0], rows[1:])
	t.Name = sheet
	return t, nil
}
