package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"dataset-reconciler/core/database"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/profile"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/server"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, one section per concern.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage holding datasets and reports.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database serving db: references.
	Database database.Config `mapstructure:"database"`
	// Source holds configuration for dataset loading and caching.
	Source source.Config `mapstructure:"source"`
	// Profiles holds configuration for comparison profiles.
	Profiles profile.Config `mapstructure:"profiles"`
}

// LoadConfig loads configuration from environment variables and the .env file in dir.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is fine, production sets the environment directly.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if _, err := reconcile.ParseAlignment(c.Profiles.DefaultAlignment); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("profiles.default_alignment: %w", err))
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		errs = multierror.Append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}
	if c.Database.MaxRows < 0 {
		errs = multierror.Append(errs, fmt.Errorf("database.max_rows: must not be negative"))
	}
	if c.Source.CacheTTLSeconds < 0 {
		errs = multierror.Append(errs, fmt.Errorf("source.cache_ttl_seconds: must not be negative"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = multierror.Append(errs, fmt.Errorf("log.format: expected json or console, got %q", c.Log.Format))
	}

	return errs.ErrorOrNil()
}

// DefaultAlignment returns the parsed profiles.default_alignment.
func (c *Config) DefaultAlignment() reconcile.Alignment {
	a, err := reconcile.ParseAlignment(c.Profiles.DefaultAlignment)
	if err != nil {
		return reconcile.AlignByName
	}
	return a
}

// bindValues walks the struct and registers every mapstructure key in viper with its
// 'default' tag, so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set, even when empty, to register the key.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
