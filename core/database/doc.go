// Package database connects to the SQL database that backs "db:" dataset references and
// loads whole tables into the in-memory table shape compared by the reconcile engine.
//
// # Connect
//
// Connect opens a GORM connection for the configured driver (mysql or sqlite), applies
// pool limits and verifies it with a bounded ping.
//
// # Loading Tables
//
// GetTableColumns inspects a table definition (SHOW COLUMNS on MySQL, PRAGMA table_info
// on SQLite). LoadTable uses it to select every column in definition order and converts
// each row into a table.Row; NULL values are left absent.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	t, err := database.LoadTable(ctx, db, "bom_lines", 0)
package database
