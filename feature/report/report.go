package report

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"dataset-reconciler/core/reconcile"

	"github.com/google/uuid"
)

// Meta describes the comparison a report belongs to.
type Meta struct {
	ID        string    `json:"id"`
	OldSource string    `json:"old_source"`
	NewSource string    `json:"new_source"`
	Profile   string    `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMeta creates report metadata with a fresh id.
func NewMeta(oldSource, newSource, profile string) Meta {
	return Meta{
		ID:        uuid.NewString(),
		OldSource: oldSource,
		NewSource: newSource,
		Profile:   profile,
		CreatedAt: time.Now().UTC(),
	}
}

// Writer renders a comparison result.
type Writer interface {
	Write(w io.Writer, res *reconcile.DiffResult, meta Meta) error
	ContentType() string
	Extension() string
}

// Formats.
const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatText = "text"
)

// ForFormat returns the writer for a format name.
func ForFormat(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX:
		return &XLSXWriter{}, nil
	case FormatJSON, "":
		return &JSONWriter{}, nil
	case FormatText, "txt":
		return &TextWriter{Limit: -1}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// WriterFor picks the writer from an output file name.
func WriterFor(name string) (Writer, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "" {
		return nil, fmt.Errorf("report file %q has no extension", name)
	}
	return ForFormat(ext)
}

// Filename returns a download name for the report.
func Filename(w Writer, meta Meta) string {
	return fmt.Sprintf("comparison-%s%s", meta.CreatedAt.Format("20060102-150405"), w.Extension())
}

// StatusLabel returns the human label of a classification.
func StatusLabel(s reconcile.Status) string {
	switch s {
	case reconcile.StatusUnchanged:
		return "Unchanged"
	case reconcile.StatusRemoved:
		return "Only in old"
	case reconcile.StatusAdded:
		return "Only in new"
	case reconcile.StatusChanged:
		return "Changed"
	default:
		return string(s)
	}
}

// StatusDescription explains a classification in the summary.
func StatusDescription(s reconcile.Status) string {
	switch s {
	case reconcile.StatusUnchanged:
		return "Key in both tables, all fields equal"
	case reconcile.StatusRemoved:
		return "Key only in the old table"
	case reconcile.StatusAdded:
		return "Key only in the new table"
	case reconcile.StatusChanged:
		return "Key in both tables, at least one field differs"
	default:
		return ""
	}
}
