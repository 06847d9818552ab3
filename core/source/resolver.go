package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dataset-reconciler/core/database"
	"dataset-reconciler/core/storage"
	"dataset-reconciler/core/table"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Resolver loads tables from file, object storage and database references.
// Loaded tables may be shared between callers through the cache and must not be modified.
type Resolver struct {
	client     storage.Client
	db         *gorm.DB
	maxRows    int
	allowLocal bool
	logger     *zap.Logger
	cache      *tableCache
}

// NewResolver creates a resolver. client and db may be nil when that backend is not configured.
func NewResolver(cfg Config, client storage.Client, db *gorm.DB, maxRows int, logger *zap.Logger) *Resolver {
	return &Resolver{
		client:     client,
		db:         db,
		maxRows:    maxRows,
		allowLocal: cfg.AllowLocal,
		logger:     logger,
		cache:      newTableCache(cfg),
	}
}

// Close stops the cache janitor.
func (r *Resolver) Close() {
	r.cache.stop()
}

// Load resolves one reference into a table. Failures are returned as *Error.
func (r *Resolver) Load(ctx context.Context, raw string) (*table.Table, error) {
	ref, err := Parse(raw)
	if err != nil {
		return nil, &Error{Ref: raw, Err: err}
	}

	start := time.Now()
	var (
		t   *table.Table
		hit bool
	)
	switch ref.Kind {
	case KindFile:
		t, hit, err = r.loadFile(ctx, ref)
	case KindObject:
		t, hit, err = r.loadObject(ctx, ref)
	case KindDatabase:
		t, hit, err = r.loadDatabase(ctx, ref)
	default:
		err = fmt.Errorf("unknown reference kind %q", ref.Kind)
	}
	if err != nil {
		return nil, &Error{Ref: raw, Err: err}
	}

	r.logger.Debug("Dataset loaded",
		zap.String("ref", raw),
		zap.String("kind", string(ref.Kind)),
		zap.Int("rows", t.Len()),
		zap.Bool("cached", hit),
		zap.Duration("took", time.Since(start)),
	)
	return t, nil
}

// LoadPair loads the old and new references concurrently.
func (r *Resolver) LoadPair(ctx context.Context, oldRef, newRef string) (*table.Table, *table.Table, error) {
	var oldT, newT *table.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		oldT, err = r.Load(gctx, oldRef)
		return err
	})
	g.Go(func() error {
		var err error
		newT, err = r.Load(gctx, newRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return oldT, newT, nil
}

// ReadUpload parses an uploaded file, choosing the reader by the file name.
// Uploads are never cached.
func (r *Resolver) ReadUpload(ctx context.Context, name string, in io.Reader) (*table.Table, error) {
	rd, err := table.ReaderFor(name)
	if err != nil {
		return nil, err
	}
	t, err := rd.Read(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	t.Name = name
	return t, nil
}

func (r *Resolver) loadFile(ctx context.Context, ref Ref) (*table.Table, bool, error) {
	if !r.allowLocal {
		return nil, false, ErrLocalDisabled
	}
	info, err := os.Stat(ref.Path)
	if err != nil {
		return nil, false, err
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("%s is a directory", ref.Path)
	}

	key := cacheKey(string(KindFile), ref.Path, strconv.FormatInt(info.Size(), 10), info.ModTime().UTC().Format(time.RFC3339Nano))
	return r.cache.getOrLoad(ctx, key, func(ctx context.Context) (*table.Table, error) {
		rd, err := table.ReaderFor(ref.Path)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(ref.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		t, err := rd.Read(ctx, f)
		if err != nil {
			return nil, err
		}
		t.Name = filepath.Base(ref.Path)
		return t, nil
	})
}

func (r *Resolver) loadObject(ctx context.Context, ref Ref) (*table.Table, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("object storage: %w", ErrUnavailable)
	}
	info, err := r.client.StatObject(ctx, ref.Bucket, ref.Object, minio.StatObjectOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat object: %w", err)
	}

	key := cacheKey(string(KindObject), ref.Bucket, ref.Object, info.ETag)
	return r.cache.getOrLoad(ctx, key, func(ctx context.Context) (*table.Table, error) {
		rd, err := table.ReaderFor(ref.Object)
		if err != nil {
			return nil, err
		}
		obj, err := r.client.GetObject(ctx, ref.Bucket, ref.Object, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object: %w", err)
		}
		defer obj.Close()

		t, err := rd.Read(ctx, obj)
		if err != nil {
			return nil, err
		}
		t.Name = ref.Raw
		return t, nil
	})
}

func (r *Resolver) loadDatabase(ctx context.Context, ref Ref) (*table.Table, bool, error) {
	if r.db == nil {
		return nil, false, fmt.Errorf("database: %w", ErrUnavailable)
	}
	// Tables carry no version to key the cache on, so every load reads current rows.
	t, err := database.LoadTable(ctx, r.db, ref.Table, r.maxRows)
	return t, false, err
}

// ObjectEntry describes a dataset object available in storage.
type ObjectEntry struct {
	Ref          string    `json:"ref"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
}

// List returns the objects under prefix that have a supported table format.
func (r *Resolver) List(ctx context.Context, bucket, prefix string) ([]ObjectEntry, error) {
	if r.client == nil {
		return nil, fmt.Errorf("object storage: %w", ErrUnavailable)
	}

	var entries []ObjectEntry
	for obj := range r.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		if _, err := table.ReaderFor(obj.Key); err != nil {
			continue
		}
		entries = append(entries, ObjectEntry{
			Ref:          storage.Scheme + bucket + "/" + obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
		})
	}
	return entries, nil
}

// Publish uploads data to an s3:// reference, creating the bucket if needed.
func (r *Resolver) Publish(ctx context.Context, raw string, data []byte, contentType string) error {
	if r.client == nil {
		return fmt.Errorf("object storage: %w", ErrUnavailable)
	}
	bucket, object, err := storage.ParseURI(raw)
	if err != nil {
		return err
	}
	if err := storage.EnsureBucket(ctx, r.client, bucket, ""); err != nil {
		return err
	}
	_, err = r.client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", raw, err)
	}
	return nil
}
