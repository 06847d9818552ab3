// Package profile loads named comparison profiles from YAML.
//
// A profile fixes the alignment mode and, for positional alignment, the canonical column
// names. It may also carry default key columns, ignored columns and whitespace trimming.
// Keys given on the command line or in a request replace the profile keys.
//
// Profiles come from the binary (bom-fixed, mapping the first five columns of a bill of
// materials export onto a fixed header) and from the configured profiles directory.
//
// Example file:
//
//	name: inventory
//	alignment: by_name
//	keys: [warehouse, sku]
//	ignore: [updated_at]
//	trim_space: true
package profile
