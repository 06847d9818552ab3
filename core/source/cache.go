package source

import (
	"context"
	"strconv"
	"time"

	"dataset-reconciler/core/table"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// tableCache holds loaded tables keyed by a digest of the source identity and version.
// A nil *tableCache loads every time.
type tableCache struct {
	items *ttlcache.Cache[uint64, *table.Table]
	sf    singleflight.Group
}

func newTableCache(cfg Config) *tableCache {
	if cfg.CacheTTLSeconds <= 0 {
		return nil
	}
	opts := []ttlcache.Option[uint64, *table.Table]{
		ttlcache.WithTTL[uint64, *table.Table](time.Duration(cfg.CacheTTLSeconds) * time.Second),
	}
	if cfg.CacheCapacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[uint64, *table.Table](cfg.CacheCapacity))
	}
	c := &tableCache{items: ttlcache.New(opts...)}
	go c.items.Start()
	return c
}

// cacheKey digests the identity parts. Parts are NUL separated so their boundaries count.
func cacheKey(parts ...string) uint64 {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// getOrLoad returns the cached table for key or loads it once, even under concurrent
// callers. Failed loads are not cached. The bool reports a cache hit.
// The shared load does not inherit cancellation from ctx, so one caller giving up does
// not fail the others; a caller whose ctx ends stops waiting with ctx.Err().
func (c *tableCache) getOrLoad(ctx context.Context, key uint64, load func(context.Context) (*table.Table, error)) (*table.Table, bool, error) {
	if c == nil {
		t, err := load(ctx)
		return t, false, err
	}

	if item := c.items.Get(key); item != nil {
		return item.Value(), true, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(strconv.FormatUint(key, 16), func() (any, error) {
		if item := c.items.Get(key); item != nil {
			return item.Value(), nil
		}
		t, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.items.Set(key, t, ttlcache.DefaultTTL)
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(*table.Table), false, nil
	}
}

func (c *tableCache) len() int {
	if c == nil {
		return 0
	}
	return c.items.Len()
}

func (c *tableCache) stop() {
	if c != nil {
		c.items.Stop()
	}
}
