package table

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// JSONReader reads either a {"columns": [...], "rows": [...]} document or an array of
// objects. For arrays, columns are ordered by first appearance.
type JSONReader struct{}

var _ Reader = (*JSONReader)(nil)

// Read decodes the JSON document.
func (r *JSONReader) Read(ctx context.Context, in io.Reader) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON table: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode JSON table: empty input")
	}

	if data[0] == '[' {
		return decodeObjectArray(data)
	}

	var t Table
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode JSON table: %w", err)
	}
	if len(t.Columns) == 0 {
		t.Columns = columnsOf(t.Rows)
	}
	return &t, nil
}

// UnmarshalJSON decodes a {"name", "columns", "rows"} document with numbers kept as
// json.Number, so integers beyond float64 precision stay distinct.
func (t *Table) UnmarshalJSON(data []byte) error {
	type document Table
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	*t = Table(doc)
	return nil
}

func decodeObjectArray(data []byte) (*Table, error) {
	// Decode twice: once into raw messages to recover key order, once into values.
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON table: %w", err)
	}

	var columns []string
	seen := make(map[string]bool)
	rows := make([]Row, 0, len(raw))
	for i, msg := range raw {
		keys, err := objectKeys(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON row %d: %w", i, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}

		var row Row
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode JSON row %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(msg json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// columnsOf collects row keys in first-seen order. Map iteration order is random, so keys
// new to a row are sorted before being appended.
func columnsOf(rows []Row) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		var fresh []string
		for k := range row {
			if !seen[k] {
				seen[k] = true
				fresh = append(fresh, k)
			}
		}
		sort.Strings(fresh)
		columns = append(columns, fresh...)
	}
	return columns
}
