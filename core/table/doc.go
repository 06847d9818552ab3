// Package table defines the in-memory tabular model shared by every part of the
// reconciler, together with the readers that build it from external formats.
//
// # Model
//
// A Table is an ordered list of column names and an ordered list of rows. A row maps
// column names to scalar values (string, number, bool). A value that is nil, or a
// column that is missing from the row map, is "absent".
//
// # Readers
//
// Readers parse a byte stream into a Table:
//   - CSVReader: comma separated values with a mandatory header row.
//   - XLSXReader: the first (or a named) worksheet of an Excel workbook.
//   - JSONReader: either {"columns": [...], "rows": [...]} or an array of objects.
//
// CSV and XLSX headers are normalized the same way: blank header cells become
// "Unnamed: <index>" and repeated names receive ".1", ".2" suffixes so column names
// stay unique. Empty cells are read as absent values.
//
// # Usage
//
//	r, err := table.ReaderFor("bom_v2.xlsx")
//	t, err := r.Read(ctx, file)
package table
