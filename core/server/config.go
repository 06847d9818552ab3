package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, including uploaded tables.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
	// ReadTimeoutSeconds bounds reading a whole request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"60"`
}

const (
	defaultBodyLimitMB        = 64
	defaultReadTimeoutSeconds = 60
)

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return defaultBodyLimitMB << 20
	}
	return c.BodyLimitMB << 20
}

// ReadTimeout returns the request read timeout in seconds.
func (c Config) ReadTimeout() int {
	if c.ReadTimeoutSeconds <= 0 {
		return defaultReadTimeoutSeconds
	}
	return c.ReadTimeoutSeconds
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
