package reconcile

import (
	"fmt"
	"strings"
)

// Table sides, used in error reports.
const (
	SideOld = "old"
	SideNew = "new"
)

// InvalidKeyError reports an unusable key specification. It is a caller error and is
// never retried or replaced by a default key.
type InvalidKeyError struct {
	// Reason describes the problem.
	Reason string

	// MissingOld lists key columns absent from the aligned old table.
	MissingOld []string

	// MissingNew lists key columns absent from the aligned new table.
	MissingNew []string
}

func (e *InvalidKeyError) Error() string {
	msg := "invalid key: " + e.Reason
	if len(e.MissingOld) > 0 {
		msg += fmt.Sprintf("; missing in old table: %s", strings.Join(e.MissingOld, ", "))
	}
	if len(e.MissingNew) > 0 {
		msg += fmt.Sprintf("; missing in new table: %s", strings.Join(e.MissingNew, ", "))
	}
	return msg
}

// Suggestion returns an actionable hint for the user.
func (e *InvalidKeyError) Suggestion() string {
	if len(e.MissingOld)+len(e.MissingNew) > 0 {
		return "choose key columns that exist in both tables, or use positional alignment with canonical column names"
	}
	return "select at least one distinct, non-blank key column"
}

// InvalidTableError reports a malformed or incompatible table shape.
type InvalidTableError struct {
	// Side is SideOld, SideNew, or empty when the problem is not tied to one table.
	Side string

	// Reason describes the problem.
	Reason string
}

func (e *InvalidTableError) Error() string {
	if e.Side == "" {
		return "invalid table: " + e.Reason
	}
	return fmt.Sprintf("invalid %s table: %s", e.Side, e.Reason)
}

// Suggestion returns an actionable hint for the user.
func (e *InvalidTableError) Suggestion() string {
	return "check the table header and the alignment settings"
}
