package source

import (
	"fmt"
	"strings"

	"dataset-reconciler/core/database"
	"dataset-reconciler/core/storage"
)

// Kind identifies where a dataset lives.
type Kind string

const (
	// KindFile is a local file path.
	KindFile Kind = "file"
	// KindObject is an object in S3 compatible storage ("s3://bucket/object").
	KindObject Kind = "object"
	// KindDatabase is a SQL table ("db:table").
	KindDatabase Kind = "database"
)

// DatabasePrefix marks database table references.
const DatabasePrefix = "db:"

// Ref is a parsed dataset reference.
type Ref struct {
	Kind Kind
	Raw  string

	// Path is set for KindFile.
	Path string
	// Bucket and Object are set for KindObject.
	Bucket string
	Object string
	// Table is set for KindDatabase.
	Table string
}

// String returns the reference as given.
func (r Ref) String() string {
	return r.Raw
}

// Parse classifies a dataset reference.
func Parse(raw string) (Ref, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return Ref{}, fmt.Errorf("empty dataset reference")
	}

	switch {
	case storage.IsURI(ref):
		bucket, object, err := storage.ParseURI(ref)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Kind: KindObject, Raw: ref, Bucket: bucket, Object: object}, nil

	case strings.HasPrefix(ref, DatabasePrefix):
		name := strings.TrimPrefix(ref, DatabasePrefix)
		if !database.ValidTableName(name) {
			return Ref{}, fmt.Errorf("invalid table name in %q", ref)
		}
		return Ref{Kind: KindDatabase, Raw: ref, Table: name}, nil

	default:
		return Ref{Kind: KindFile, Raw: ref, Path: ref}, nil
	}
}
