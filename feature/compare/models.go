package compare

import (
	"dataset-reconciler/core/table"
)

// Options selects how two tables are compared. A named profile supplies the alignment
// and canonical columns; keys given here replace the profile keys.
type Options struct {
	Keys      []string `json:"keys,omitempty"`
	Alignment string   `json:"alignment,omitempty"`
	Columns   []string `json:"columns,omitempty"`
	Ignore    []string `json:"ignore,omitempty"`
	TrimSpace bool     `json:"trim_space,omitempty"`
	Profile   string   `json:"profile,omitempty"`
}

// TablesRequest compares two inline tables.
type TablesRequest struct {
	Options
	Old *table.Table `json:"old"`
	New *table.Table `json:"new"`
}

// SourcesRequest compares two dataset references (s3://bucket/object or db:table).
type SourcesRequest struct {
	Options
	Old string `json:"old"`
	New string `json:"new"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error kinds.
const (
	KindInvalidKey   = "invalid_key"
	KindInvalidTable = "invalid_table"
	KindBadRequest   = "bad_request"
	KindSource       = "source"
	KindInternal     = "internal"
)
