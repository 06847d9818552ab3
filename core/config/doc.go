// Package config loads the application configuration.
//
// Settings come from the environment, optionally seeded from a .env file. Every field
// declares its key with a mapstructure tag and its default with a default tag; nested
// keys map to upper case variables joined by underscores (server.api_key is
// SERVER_API_KEY).
//
// # Sections
//
//   - Server: port, API key, body limit, read timeout
//   - Storage: S3/MinIO endpoint, credentials, default bucket
//   - Log: level and format
//   - Database: driver (mysql, sqlite), connection, row cap
//   - Source: table cache TTL and capacity, local file access
//   - Profiles: profile directory and default alignment
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
