package reconcile

import (
	"fmt"
	"strings"

	"dataset-reconciler/core/table"

	mapset "github.com/deckarep/golang-set/v2"
)

// aligned is a read-only view of an input table after column alignment.
type aligned struct {
	columns []string
	rows    []table.Row
}

// align applies the alignment mode to one side. The input table is never modified:
// positional mode builds renamed row maps, by-name mode shares the original rows.
func align(t *table.Table, side string, spec Spec) (*aligned, error) {
	if t == nil {
		return nil, &InvalidTableError{Side: side, Reason: "table is nil"}
	}

	switch spec.Alignment {
	case AlignByName:
		if dups := t.DuplicateColumns(); len(dups) > 0 {
			return nil, &InvalidTableError{Side: side, Reason: "duplicate column names: " + strings.Join(dups, ", ")}
		}
		return &aligned{columns: t.Columns, rows: t.Rows}, nil

	case AlignPositional:
		n := len(spec.Columns)
		if len(t.Columns) < n {
			return nil, &InvalidTableError{
				Side:   side,
				Reason: fmt.Sprintf("positional alignment needs at least %d columns, table has %d", n, len(t.Columns)),
			}
		}
		physical := t.Columns[:n]
		rows := make([]table.Row, len(t.Rows))
		for i, src := range t.Rows {
			row := make(table.Row, n)
			for j, col := range physical {
				if v, ok := src[col]; ok {
					row[spec.Columns[j]] = v
				}
			}
			rows[i] = row
		}
		return &aligned{columns: spec.Columns, rows: rows}, nil

	default:
		return nil, &InvalidTableError{Reason: fmt.Sprintf("unknown alignment %q", spec.Alignment)}
	}
}

// validateAlignment checks the alignment settings that do not depend on table contents.
func validateAlignment(spec Spec) error {
	switch spec.Alignment {
	case AlignUnset:
		return &InvalidTableError{Reason: fmt.Sprintf("alignment must be set to %q or %q", AlignByName, AlignPositional)}
	case AlignByName:
		if len(spec.Columns) > 0 {
			return &InvalidTableError{Reason: "canonical columns are only valid with positional alignment"}
		}
	case AlignPositional:
		if len(spec.Columns) == 0 {
			return &InvalidTableError{Reason: "positional alignment requires canonical column names"}
		}
		seen := mapset.NewThreadUnsafeSetWithSize[string](len(spec.Columns))
		for _, c := range spec.Columns {
			if strings.TrimSpace(c) == "" {
				return &InvalidTableError{Reason: "canonical column names must not be blank"}
			}
			if !seen.Add(c) {
				return &InvalidTableError{Reason: "duplicate canonical column: " + c}
			}
		}
	default:
		return &InvalidTableError{Reason: fmt.Sprintf("unknown alignment %q", spec.Alignment)}
	}
	return nil
}

// validateKeys checks the key list against both aligned column sets.
func validateKeys(keys []string, oldCols, newCols []string) error {
	if len(keys) == 0 {
		return &InvalidKeyError{Reason: "no key columns given"}
	}

	seen := mapset.NewThreadUnsafeSetWithSize[string](len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return &InvalidKeyError{Reason: "key column name is blank"}
		}
		if !seen.Add(k) {
			return &InvalidKeyError{Reason: "key column repeated: " + k}
		}
	}

	oldSet := mapset.NewThreadUnsafeSet(oldCols...)
	newSet := mapset.NewThreadUnsafeSet(newCols...)
	var missingOld, missingNew []string
	for _, k := range keys {
		if !oldSet.Contains(k) {
			missingOld = append(missingOld, k)
		}
		if !newSet.Contains(k) {
			missingNew = append(missingNew, k)
		}
	}
	if len(missingOld)+len(missingNew) > 0 {
		return &InvalidKeyError{
			Reason:     "key columns not found after alignment",
			MissingOld: missingOld,
			MissingNew: missingNew,
		}
	}
	return nil
}

// compareColumns returns the non-key columns present in either table, old order first,
// then new-only columns in new order, without ignored columns.
func compareColumns(oldCols, newCols, keys, ignore []string) []string {
	skip := mapset.NewThreadUnsafeSet(keys...)
	skip.Append(ignore...)

	seen := mapset.NewThreadUnsafeSetWithSize[string](len(oldCols) + len(newCols))
	var out []string
	for _, cols := range [][]string{oldCols, newCols} {
		for _, c := range cols {
			if skip.Contains(c) || !seen.Add(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}
