package profile

// Config holds configuration for comparison profiles.
type Config struct {
	// Dir is scanned for *.yaml / *.yml profiles in addition to the built-in ones.
	Dir string `mapstructure:"dir" default:"profiles"`
	// DefaultAlignment applies when neither a profile nor the request names one.
	DefaultAlignment string `mapstructure:"default_alignment" default:"by_name"`
}
