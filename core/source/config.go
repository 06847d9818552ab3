package source

// Config holds configuration for dataset source resolution.
type Config struct {
	// CacheTTLSeconds is how long a loaded table stays cached. 0 disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// CacheCapacity caps the number of cached tables.
	CacheCapacity uint64 `mapstructure:"cache_capacity" default:"32"`
	// AllowLocal permits plain file paths. The CLI always allows them.
	AllowLocal bool `mapstructure:"allow_local" default:"false"`
}
