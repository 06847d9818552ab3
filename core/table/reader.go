package table

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Reader parses an external tabular representation into a Table.
type Reader interface {
	// Read consumes r and returns the parsed table.
	Read(ctx context.Context, r io.Reader) (*Table, error)
}

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtXLSM = ".xlsm"
	ExtJSON = ".json"
)

// ReaderFor returns a Reader for the file name based on its extension.
func ReaderFor(name string) (Reader, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ExtCSV:
		return &CSVReader{}, nil
	case ExtXLSX, ExtXLSM:
		return &XLSXReader{}, nil
	case ExtJSON:
		return &JSONReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported table format %q (want .csv, .xlsx, .xlsm or .json)", path.Ext(name))
	}
}
