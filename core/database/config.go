package database

// Config holds configuration for the SQL database serving db: dataset references.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"datasets"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connect, read and write operations.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRows caps the rows loaded from one table; 0 means no cap.
	MaxRows int `mapstructure:"max_rows" default:"0"`
}
