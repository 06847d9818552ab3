package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"dataset-reconciler/core/database"
	"dataset-reconciler/core/storage/mocks"
	"dataset-reconciler/core/table"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func csvBody(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func newTestResolver(t *testing.T, cfg Config, client *mocks.Client) *Resolver {
	var r *Resolver
	if client != nil {
		r = NewResolver(cfg, client, nil, 0, zap.NewNop())
	} else {
		r = NewResolver(cfg, nil, nil, 0, zap.NewNop())
	}
	t.Cleanup(r.Close)
	return r
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Ref
		wantErr bool
	}{
		{raw: "data/old.csv", want: Ref{Kind: KindFile, Raw: "data/old.csv", Path: "data/old.csv"}},
		{raw: " s3://datasets/bom/new.xlsx ", want: Ref{Kind: KindObject, Raw: "s3://datasets/bom/new.xlsx", Bucket: "datasets", Object: "bom/new.xlsx"}},
		{raw: "db:bom_lines", want: Ref{Kind: KindDatabase, Raw: "db:bom_lines", Table: "bom_lines"}},
		{raw: "db:erp.bom_lines", want: Ref{Kind: KindDatabase, Raw: "db:erp.bom_lines", Table: "erp.bom_lines"}},
		{raw: "db:bom lines", wantErr: true},
		{raw: "s3://datasets", wantErr: true},
		{raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,qty\n1,10\n2,5\n"), 0o644))

	t.Run("Allowed", func(t *testing.T) {
		r := newTestResolver(t, Config{AllowLocal: true, CacheTTLSeconds: 60}, nil)

		tbl, err := r.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "old.csv", tbl.Name)
		assert.Equal(t, []string{"id", "qty"}, tbl.Columns)
		assert.Equal(t, 2, tbl.Len())

		again, err := r.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Same(t, tbl, again)
	})

	t.Run("Disabled", func(t *testing.T) {
		r := newTestResolver(t, Config{}, nil)

		_, err := r.Load(context.Background(), path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLocalDisabled)

		var srcErr *Error
		require.True(t, errors.As(err, &srcErr))
		assert.Equal(t, path, srcErr.Ref)
	})

	t.Run("Missing", func(t *testing.T) {
		r := newTestResolver(t, Config{AllowLocal: true}, nil)
		_, err := r.Load(context.Background(), filepath.Join(dir, "missing.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Unsupported", func(t *testing.T) {
		other := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))

		r := newTestResolver(t, Config{AllowLocal: true}, nil)
		_, err := r.Load(context.Background(), other)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported table format")
	})
}

func TestLoad_ObjectCachedByETag(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	client.On("StatObject", mock.Anything, "datasets", "bom.csv", mock.Anything).
		Return(minio.ObjectInfo{ETag: "v1"}, nil).Twice()
	client.On("StatObject", mock.Anything, "datasets", "bom.csv", mock.Anything).
		Return(minio.ObjectInfo{ETag: "v2"}, nil).Once()
	client.On("GetObject", mock.Anything, "datasets", "bom.csv", mock.Anything).
		Return(csvBody("id,qty\n1,10\n"), nil).Once()
	client.On("GetObject", mock.Anything, "datasets", "bom.csv", mock.Anything).
		Return(csvBody("id,qty\n1,12\n2,3\n"), nil).Once()

	r := newTestResolver(t, Config{CacheTTLSeconds: 60}, client)

	first, err := r.Load(ctx, "s3://datasets/bom.csv")
	require.NoError(t, err)
	assert.Equal(t, "s3://datasets/bom.csv", first.Name)
	assert.Equal(t, 1, first.Len())

	second, err := r.Load(ctx, "s3://datasets/bom.csv")
	require.NoError(t, err)
	assert.Same(t, first, second)

	third, err := r.Load(ctx, "s3://datasets/bom.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, third.Len())
	assert.Equal(t, 2, r.cache.len())

	client.AssertNumberOfCalls(t, "GetObject", 2)
	client.AssertExpectations(t)
}

func TestLoad_ObjectWithoutCache(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "datasets", "bom.json", mock.Anything).
		Return(minio.ObjectInfo{ETag: "v1"}, nil)
	client.On("GetObject", mock.Anything, "datasets", "bom.json", mock.Anything).
		Return(csvBody(`[{"id":1}]`), nil).Once()
	client.On("GetObject", mock.Anything, "datasets", "bom.json", mock.Anything).
		Return(csvBody(`[{"id":1}]`), nil).Once()

	r := newTestResolver(t, Config{}, client)
	for i := 0; i < 2; i++ {
		_, err := r.Load(context.Background(), "s3://datasets/bom.json")
		require.NoError(t, err)
	}
	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestLoad_ObjectErrors(t *testing.T) {
	t.Run("StatFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "datasets", "gone.csv", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("The specified key does not exist."))

		r := newTestResolver(t, Config{CacheTTLSeconds: 60}, client)
		_, err := r.Load(context.Background(), "s3://datasets/gone.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load s3://datasets/gone.csv: failed to stat object")
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoStorage", func(t *testing.T) {
		r := newTestResolver(t, Config{}, nil)
		_, err := r.Load(context.Background(), "s3://datasets/bom.csv")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("NoDatabase", func(t *testing.T) {
		r := newTestResolver(t, Config{}, nil)
		_, err := r.Load(context.Background(), "db:bom_lines")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestLoad_Database(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE bom_lines (part TEXT, qty INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO bom_lines VALUES ('bolt', 4), ('nut', 8), ('washer', 2)").Error)

	r := NewResolver(Config{CacheTTLSeconds: 60}, nil, db, 2, zap.NewNop())
	t.Cleanup(r.Close)

	tbl, err := r.Load(context.Background(), "db:bom_lines")
	require.NoError(t, err)
	assert.Equal(t, []string{"part", "qty"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
}

func TestLoad_DatabaseSeesUpdates(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE items (sku TEXT PRIMARY KEY, qty TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO items VALUES ('A-1', '10')").Error)

	r := NewResolver(Config{CacheTTLSeconds: 300}, nil, db, 0, zap.NewNop())
	t.Cleanup(r.Close)

	before, err := r.Load(context.Background(), "db:items")
	require.NoError(t, err)
	assert.Equal(t, "10", before.Rows[0]["qty"])

	require.NoError(t, db.Exec("UPDATE items SET qty = '99'").Error)

	after, err := r.Load(context.Background(), "db:items")
	require.NoError(t, err)
	assert.Equal(t, "99", after.Rows[0]["qty"])
	assert.Equal(t, 0, r.cache.len())
}

func TestLoadPair(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "datasets", "old.csv", mock.Anything).Return(minio.ObjectInfo{ETag: "a"}, nil)
	client.On("StatObject", mock.Anything, "datasets", "new.csv", mock.Anything).Return(minio.ObjectInfo{ETag: "b"}, nil)
	client.On("GetObject", mock.Anything, "datasets", "old.csv", mock.Anything).Return(csvBody("id\n1\n"), nil)
	client.On("GetObject", mock.Anything, "datasets", "new.csv", mock.Anything).Return(csvBody("id\n1\n2\n"), nil)

	r := newTestResolver(t, Config{CacheTTLSeconds: 60}, client)

	oldT, newT, err := r.LoadPair(context.Background(), "s3://datasets/old.csv", "s3://datasets/new.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, oldT.Len())
	assert.Equal(t, 2, newT.Len())

	_, _, err = r.LoadPair(context.Background(), "s3://datasets/old.csv", "db:bom")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCache_Singleflight(t *testing.T) {
	c := newTableCache(Config{CacheTTLSeconds: 60})
	defer c.stop()

	var (
		mu    sync.Mutex
		loads int
	)
	release := make(chan struct{})
	load := func(context.Context) (*table.Table, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		<-release
		return table.New([]string{"id"}), nil
	}

	var wg sync.WaitGroup
	results := make([]*table.Table, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, _, err := c.getOrLoad(context.Background(), cacheKey("k"), load)
			assert.NoError(t, err)
			results[i] = tbl
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, loads)
	for _, tbl := range results {
		assert.Same(t, results[0], tbl)
	}

	_, hit, err := c.getOrLoad(context.Background(), cacheKey("k"), load)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	c := newTableCache(Config{CacheTTLSeconds: 60})
	defer c.stop()

	var once sync.Once
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (*table.Table, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return table.New([]string{"id"}), nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.getOrLoad(firstCtx, cacheKey("k"), load)
		firstErr <- err
	}()
	<-started

	type result struct {
		tbl *table.Table
		err error
	}
	second := make(chan result, 1)
	go func() {
		tbl, _, err := c.getOrLoad(context.Background(), cacheKey("k"), load)
		second <- result{tbl, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, []string{"id"}, res.tbl.Columns)
}

func TestCache_ErrorsNotCached(t *testing.T) {
	c := newTableCache(Config{CacheTTLSeconds: 60})
	defer c.stop()

	_, _, err := c.getOrLoad(context.Background(), cacheKey("k"), func(context.Context) (*table.Table, error) { return nil, assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)

	tbl, hit, err := c.getOrLoad(context.Background(), cacheKey("k"), func(context.Context) (*table.Table, error) { return table.New(nil), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, tbl)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("a", "b"), cacheKey("a", "b"))
	assert.NotEqual(t, cacheKey("ab", ""), cacheKey("a", "b"))
	assert.Nil(t, newTableCache(Config{}))
}

func TestList(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "bom/2024-05.xlsx", Size: 10, ETag: "e1"}
	ch <- minio.ObjectInfo{Key: "bom/readme.md", Size: 3}
	ch <- minio.ObjectInfo{Key: "bom/2024-06.csv", Size: 12, ETag: "e2"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "datasets", minio.ListObjectsOptions{Prefix: "bom/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	r := newTestResolver(t, Config{}, client)
	entries, err := r.List(context.Background(), "datasets", "bom/")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "s3://datasets/bom/2024-05.xlsx", entries[0].Ref)
	assert.Equal(t, "s3://datasets/bom/2024-06.csv", entries[1].Ref)
	assert.Equal(t, "e2", entries[1].ETag)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", ctx, "reports").Return(false, nil)
	client.On("MakeBucket", ctx, "reports", minio.MakeBucketOptions{}).Return(nil)
	client.On("PutObject", ctx, "reports", "bom/diff.xlsx", mock.Anything, int64(4), minio.PutObjectOptions{ContentType: "application/test"}).
		Return(minio.UploadInfo{}, nil)

	r := newTestResolver(t, Config{}, client)
	require.NoError(t, r.Publish(ctx, "s3://reports/bom/diff.xlsx", []byte("data"), "application/test"))
	client.AssertExpectations(t)

	assert.Error(t, r.Publish(ctx, "reports/diff.xlsx", nil, ""))
}

func TestReadUpload(t *testing.T) {
	r := newTestResolver(t, Config{}, nil)

	tbl, err := r.ReadUpload(context.Background(), "old.csv", strings.NewReader("id\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, "old.csv", tbl.Name)

	_, err = r.ReadUpload(context.Background(), "old.pdf", strings.NewReader(""))
	assert.Error(t, err)
}
