// Package reconcile compares two versions of a tabular dataset by a composite key.
//
// Given an old and a new table and an ordered list of key columns, Reconcile classifies
// every distinct key into exactly one of:
//   - added: the key exists only in the new table
//   - removed: the key exists only in the old table
//   - changed: the key exists in both and at least one non-key field differs
//   - unchanged: the key exists in both and all non-key fields are equal
//
// For changed keys the differing columns are recorded with their old and new values.
// A Summary carries per-classification counts and the raw row counts of both inputs.
//
// # Column Alignment
//
// Callers always choose how the two tables' columns line up:
//
//  1. AlignByName: the column names of each table are used as they are.
//  2. AlignPositional: the caller supplies canonical column names; the first N physical
//     columns of each table are renamed to them, further columns are dropped. A table
//     with fewer than N columns is rejected.
//
// # Comparison Rule
//
// Values are compared by their canonical string form (utils.ToString). Absent and nil
// values become "", so a null on one side equals an empty string on the other.
//
// # Composite Keys
//
// A composite key is the ordered tuple of canonical key values. It is indexed through a
// length-prefixed encoding, so field content containing any separator can never make two
// different tuples collide. CompositeKey.String joins the parts with "｜" for display only.
//
// # Duplicate Keys
//
// When a key repeats within one table the first row wins: it is the row matched and
// compared. Later rows with the same key are ignored for matching but counted in
// Record.OldRows / Record.NewRows, in Summary.OldDuplicates / Summary.NewDuplicates and in
// the raw row totals.
//
// # Determinism
//
// Records are ordered by key, comparing key parts element by element, so identical
// inputs always produce identical results. The engine never mutates its inputs; row
// snapshots in the result are copies.
//
// # Usage
//
//	res, err := reconcile.Reconcile(oldTable, newTable, reconcile.Spec{
//	    Keys:      []string{"id"},
//	    Alignment: reconcile.AlignByName,
//	})
//	if err != nil {
//	    var keyErr *reconcile.InvalidKeyError
//	    if errors.As(err, &keyErr) { ... }
//	}
//	fmt.Println(res.Summary.Changed)
package reconcile
