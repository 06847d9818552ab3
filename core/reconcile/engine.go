package reconcile

import (
	"slices"
	"strings"

	"dataset-reconciler/core/table"
	"dataset-reconciler/core/utils"
)

// indexEntry is the first row seen for a key plus the number of rows sharing it.
type indexEntry struct {
	key   CompositeKey
	row   table.Row
	count int
}

// index maps composite key ids to their first-wins entries.
type index struct {
	entries    map[string]*indexEntry
	duplicates int
}

// Reconcile compares oldT and newT by the composite key in spec and classifies every
// distinct key as added, removed, changed or unchanged.
// It returns *InvalidKeyError or *InvalidTableError for unusable input and never
// modifies either table.
func Reconcile(oldT, newT *table.Table, spec Spec) (*DiffResult, error) {
	if err := validateAlignment(spec); err != nil {
		return nil, err
	}

	oldA, err := align(oldT, SideOld, spec)
	if err != nil {
		return nil, err
	}
	newA, err := align(newT, SideNew, spec)
	if err != nil {
		return nil, err
	}

	if err := validateKeys(spec.Keys, oldA.columns, newA.columns); err != nil {
		return nil, err
	}

	canon := canonicalizer(spec.TrimSpace)
	oldIdx := buildIndex(oldA.rows, spec.Keys, canon)
	newIdx := buildIndex(newA.rows, spec.Keys, canon)
	cmpCols := compareColumns(oldA.columns, newA.columns, spec.Keys, spec.Ignore)

	result := &DiffResult{
		Keys:           slices.Clone(spec.Keys),
		Alignment:      spec.Alignment,
		OldColumns:     slices.Clone(oldA.columns),
		NewColumns:     slices.Clone(newA.columns),
		CompareColumns: cmpCols,
		Records:        make([]Record, 0, len(oldIdx.entries)+len(newIdx.entries)),
		Summary: Summary{
			OldRows:       len(oldA.rows),
			NewRows:       len(newA.rows),
			OldDuplicates: oldIdx.duplicates,
			NewDuplicates: newIdx.duplicates,
			ColumnChanges: make(map[string]int),
		},
	}

	for id, o := range oldIdx.entries {
		rec := Record{Key: o.key, Old: o.row.Clone(), OldRows: o.count}
		if n, ok := newIdx.entries[id]; ok {
			rec.New = n.row.Clone()
			rec.NewRows = n.count
			rec.Changes = diffRows(o.row, n.row, cmpCols, canon)
			if len(rec.Changes) > 0 {
				rec.Status = StatusChanged
			} else {
				rec.Status = StatusUnchanged
			}
		} else {
			rec.Status = StatusRemoved
		}
		result.Records = append(result.Records, rec)
	}
	for id, n := range newIdx.entries {
		if _, ok := oldIdx.entries[id]; ok {
			continue
		}
		result.Records = append(result.Records, Record{
			Key:     n.key,
			Status:  StatusAdded,
			New:     n.row.Clone(),
			NewRows: n.count,
		})
	}

	slices.SortFunc(result.Records, func(a, b Record) int {
		return a.Key.Compare(b.Key)
	})

	s := &result.Summary
	for _, rec := range result.Records {
		switch rec.Status {
		case StatusAdded:
			s.Added++
		case StatusRemoved:
			s.Removed++
		case StatusChanged:
			s.Changed++
			for _, c := range rec.Changes {
				s.ColumnChanges[c.Column]++
			}
		case StatusUnchanged:
			s.Unchanged++
		}
	}
	s.TotalKeys = len(result.Records)

	return result, nil
}

// canonicalizer returns the canonical string function for the comparison rule.
func canonicalizer(trim bool) func(any) string {
	if trim {
		return func(v any) string { return strings.TrimSpace(utils.ToString(v)) }
	}
	return utils.ToString
}

// KeyOf builds the composite key of a row for the given key columns.
func KeyOf(row table.Row, keys []string) CompositeKey {
	return keyOf(row, keys, utils.ToString)
}

func keyOf(row table.Row, keys []string, canon func(any) string) CompositeKey {
	key := make(CompositeKey, len(keys))
	for i, k := range keys {
		key[i] = canon(row[k])
	}
	return key
}

// buildIndex indexes rows by composite key. The first row for a key wins; later rows
// only raise the entry count.
func buildIndex(rows []table.Row, keys []string, canon func(any) string) *index {
	idx := &index{entries: make(map[string]*indexEntry, len(rows))}
	for _, row := range rows {
		key := keyOf(row, keys, canon)
		id := key.id()
		if e, ok := idx.entries[id]; ok {
			e.count++
			idx.duplicates++
			continue
		}
		idx.entries[id] = &indexEntry{key: key, row: row, count: 1}
	}
	return idx
}

// diffRows compares the given columns of two rows under the canonical-equality rule.
func diffRows(oldRow, newRow table.Row, columns []string, canon func(any) string) []FieldChange {
	var changes []FieldChange
	for _, col := range columns {
		ov, nv := oldRow[col], newRow[col]
		if canon(ov) == canon(nv) {
			continue
		}
		changes = append(changes, FieldChange{Column: col, Old: ov, New: nv})
	}
	return changes
}
