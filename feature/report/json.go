package report

import (
	"encoding/json"
	"io"

	"dataset-reconciler/core/reconcile"
)

// JSONWriter writes the metadata and the full result as indented JSON.
type JSONWriter struct{}

// Document is the JSON report layout.
type Document struct {
	Meta   Meta                  `json:"meta"`
	Result *reconcile.DiffResult `json:"result"`
}

func (JSONWriter) Write(w io.Writer, res *reconcile.DiffResult, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Meta: meta, Result: res})
}

func (JSONWriter) ContentType() string { return "application/json" }

func (JSONWriter) Extension() string { return ".json" }
