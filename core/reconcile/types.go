package reconcile

import (
	"fmt"
	"strings"

	"dataset-reconciler/core/table"
)

// Alignment selects how the columns of the two tables are matched.
type Alignment string

const (
	// AlignUnset is the zero value. Reconcile rejects it, callers must pick a mode.
	AlignUnset Alignment = ""
	// AlignByName uses each table's column names directly.
	AlignByName Alignment = "by_name"
	// AlignPositional renames the first len(Spec.Columns) physical columns of each table
	// to the canonical names in Spec.Columns.
	AlignPositional Alignment = "positional"
)

// ParseAlignment converts a user supplied mode name into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch Alignment(strings.ToLower(strings.TrimSpace(s))) {
	case AlignByName, "name", "byname":
		return AlignByName, nil
	case AlignPositional, "position":
		return AlignPositional, nil
	default:
		return "", fmt.Errorf("unknown alignment %q (want %q or %q)", s, AlignByName, AlignPositional)
	}
}

// Status is the classification of a composite key.
type Status string

const (
	// StatusAdded marks a key present only in the new table.
	StatusAdded Status = "added"
	// StatusRemoved marks a key present only in the old table.
	StatusRemoved Status = "removed"
	// StatusChanged marks a key present in both tables with at least one differing field.
	StatusChanged Status = "changed"
	// StatusUnchanged marks a key present in both tables with all fields equal.
	StatusUnchanged Status = "unchanged"
)

// Statuses lists every classification in report order.
var Statuses = []Status{StatusUnchanged, StatusRemoved, StatusAdded, StatusChanged}

// Spec defines a reconciliation: which columns form the key and how columns align.
type Spec struct {
	// Keys is the ordered, non-empty list of key column names.
	Keys []string `json:"keys" yaml:"keys"`

	// Alignment selects name-based or positional column matching. It must be set.
	Alignment Alignment `json:"alignment" yaml:"alignment"`

	// Columns holds the canonical column names used by AlignPositional.
	// It must be empty for AlignByName.
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`

	// Ignore lists non-key columns excluded from field comparison.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// TrimSpace trims surrounding whitespace from canonical values before keying and comparing.
	TrimSpace bool `json:"trim_space,omitempty" yaml:"trim_space,omitempty"`
}

// FieldChange describes one differing non-key column of a changed record.
type FieldChange struct {
	// Column is the column name (canonical name in positional mode).
	Column string `json:"column"`

	// Old is the raw old value, nil when absent.
	Old any `json:"old"`

	// New is the raw new value, nil when absent.
	New any `json:"new"`
}

// Record is the reconciliation outcome for one composite key.
type Record struct {
	// Key is the composite key tuple.
	Key CompositeKey `json:"key"`

	// Status is the classification.
	Status Status `json:"status"`

	// Old is a snapshot of the matched old row, nil for added records.
	Old table.Row `json:"old"`

	// New is a snapshot of the matched new row, nil for removed records.
	New table.Row `json:"new"`

	// Changes lists the differing non-key columns. Only set for changed records.
	Changes []FieldChange `json:"changes,omitempty"`

	// OldRows is the number of old rows sharing this key (0 when absent).
	OldRows int `json:"old_rows"`

	// NewRows is the number of new rows sharing this key (0 when absent).
	NewRows int `json:"new_rows"`
}

// ChangedColumns returns the names of the differing columns.
func (r Record) ChangedColumns() []string {
	if len(r.Changes) == 0 {
		return nil
	}
	cols := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		cols[i] = c.Column
	}
	return cols
}

// Summary provides aggregate statistics for a reconciliation.
type Summary struct {
	// Added counts keys only in the new table.
	Added int `json:"added"`

	// Removed counts keys only in the old table.
	Removed int `json:"removed"`

	// Changed counts keys in both tables with differing fields.
	Changed int `json:"changed"`

	// Unchanged counts keys in both tables with equal fields.
	Unchanged int `json:"unchanged"`

	// TotalKeys is the number of distinct keys across both tables.
	TotalKeys int `json:"total_keys"`

	// OldRows is the raw row count of the old table, duplicates included.
	OldRows int `json:"old_rows"`

	// NewRows is the raw row count of the new table, duplicates included.
	NewRows int `json:"new_rows"`

	// OldDuplicates counts old rows ignored because an earlier row had the same key.
	OldDuplicates int `json:"old_duplicates"`

	// NewDuplicates counts new rows ignored because an earlier row had the same key.
	NewDuplicates int `json:"new_duplicates"`

	// ColumnChanges counts changed records per differing column.
	ColumnChanges map[string]int `json:"column_changes"`
}

// Count returns the count for a classification.
func (s Summary) Count(status Status) int {
	switch status {
	case StatusAdded:
		return s.Added
	case StatusRemoved:
		return s.Removed
	case StatusChanged:
		return s.Changed
	case StatusUnchanged:
		return s.Unchanged
	default:
		return 0
	}
}

// DiffResult is the immutable output of Reconcile.
type DiffResult struct {
	// Keys echoes the key columns used.
	Keys []string `json:"keys"`

	// Alignment echoes the alignment mode used.
	Alignment Alignment `json:"alignment"`

	// OldColumns and NewColumns are the aligned column lists of each input.
	OldColumns []string `json:"old_columns"`
	NewColumns []string `json:"new_columns"`

	// CompareColumns are the non-key columns that were compared, in comparison order.
	CompareColumns []string `json:"compare_columns"`

	// Records holds one record per distinct key, ordered by key.
	Records []Record `json:"records"`

	// Summary holds the aggregate counts.
	Summary Summary `json:"summary"`
}

// ByStatus returns the records with the given classification, in key order.
func (r *DiffResult) ByStatus(status Status) []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out
}

// HasDifferences reports whether any key was added, removed or changed.
func (r *DiffResult) HasDifferences() bool {
	s := r.Summary
	return s.Added+s.Removed+s.Changed > 0
}

// AllColumns returns the union of old and new aligned columns, old order first.
func (r *DiffResult) AllColumns() []string {
	seen := make(map[string]bool, len(r.OldColumns)+len(r.NewColumns))
	var out []string
	for _, cols := range [][]string{r.OldColumns, r.NewColumns} {
		for _, c := range cols {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
