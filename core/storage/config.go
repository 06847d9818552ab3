package storage

// Config holds configuration for the object storage holding datasets and reports.
type Config struct {
	// Endpoint is the host (optionally with scheme) of the S3 compatible service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket for dataset listings and uploaded reports.
	Bucket string `mapstructure:"bucket" default:"datasets"`
	// Region is the bucket location (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and time to first byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
