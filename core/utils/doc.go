// Package utils provides the value conversions shared by the reconciler.
//
// ToString defines the canonical string form used whenever two cell values are
// compared or joined into a composite key. Absent values (nil, NaN) become the empty
// string, which makes null and "" equivalent under comparison. Numbers are rendered in
// their shortest round-trip form so 10, 10.0 and json.Number("10") all compare equal.
package utils
