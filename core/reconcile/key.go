package reconcile

import (
	"slices"
	"strconv"
	"strings"
)

// DisplaySeparator joins key parts in CompositeKey.String.
const DisplaySeparator = "｜"

// CompositeKey is the ordered tuple of canonical key values of a row.
type CompositeKey []string

// String joins the parts for display. It is not used for matching.
func (k CompositeKey) String() string {
	return strings.Join(k, DisplaySeparator)
}

// Compare orders keys element by element; a shorter prefix sorts first.
func (k CompositeKey) Compare(other CompositeKey) int {
	return slices.Compare(k, other)
}

// id encodes the tuple as "<len>:<part>" segments. The encoding is injective, so it
// is safe as a map key whatever the parts contain.
func (k CompositeKey) id() string {
	var b strings.Builder
	for _, p := range k {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}
