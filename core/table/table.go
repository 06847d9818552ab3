package table

import (
	"fmt"
	"strconv"
)

// Row maps a column name to its scalar value. Absent and nil values are equivalent.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of named columns and an ordered set of rows.
type Table struct {
	// Name is an optional label describing where the table came from (file, object, db table).
	Name string `json:"name,omitempty"`

	// Columns holds the column names in physical order.
	Columns []string `json:"columns"`

	// Rows holds the data rows in physical order.
	Rows []Row `json:"rows"`
}

// New creates a table with the given columns and rows.
func New(columns []string, rows ...Row) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// DuplicateColumns returns column names declared more than once.
func (t *Table) DuplicateColumns() []string {
	seen := make(map[string]int, len(t.Columns))
	var dups []string
	for _, c := range t.Columns {
		seen[c]++
		if seen[c] == 2 {
			dups = append(dups, c)
		}
	}
	return dups
}

// FromRecords builds a table from a header record and string records, as produced by
// CSV and spreadsheet sources. Empty cells and cells past the end of a short record are
// left absent.
func FromRecords(header []string, records [][]string) *Table {
	columns := NormalizeHeader(header)
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}
}

// NormalizeHeader makes header names usable as column names: blank cells become
// "Unnamed: <i>" and repeated names get ".1", ".2", ... suffixes.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
