package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"dataset-reconciler/core/table"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)

// ValidTableName reports whether name is a plain (optionally schema qualified) identifier.
func ValidTableName(name string) bool {
	return identPattern.MatchString(name)
}

// GetTableColumns retrieves the column definitions for a table in definition order.
// Column names keep their declared case; types are lowercased.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if !ValidTableName(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	var columns []ColumnInfo
	if db.Dialector.Name() == DriverSQLite {
		type sqliteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			info := ColumnInfo{Field: col.Name, Type: strings.ToLower(col.Type), Default: col.DfltValue}
			if col.Pk > 0 {
				info.Key = "PRI"
			}
			if col.Notnull == 0 {
				info.Null = "YES"
			} else {
				info.Null = "NO"
			}
			columns = append(columns, info)
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM %s", quoteIdent(tableName))).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// LoadTable reads every row of a table. Columns follow the table definition, NULLs are
// left absent and byte values become strings. Rows are ordered by the primary key when
// the table has one. A positive limit caps the row count.
func LoadTable(ctx context.Context, db *gorm.DB, tableName string, limit int) (*table.Table, error) {
	infos, err := GetTableColumns(db.WithContext(ctx), tableName)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", tableName)
	}

	columns := make([]string, len(infos))
	quoted := make([]string, len(infos))
	var primary []string
	for i, info := range infos {
		columns[i] = info.Field
		quoted[i] = quoteIdent(info.Field)
		if info.Key == "PRI" {
			primary = append(primary, quoted[i])
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(tableName))
	if len(primary) > 0 {
		query += " ORDER BY " + strings.Join(primary, ", ")
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", tableName, err)
	}
	defer rows.Close()

	t := &table.Table{Name: tableName, Columns: columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(t.Rows)+1, tableName, err)
		}
		row := make(table.Row, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case nil:
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}

	return t, nil
}

// quoteIdent backtick-quotes each dot separated part. Both MySQL and SQLite accept it.
func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}
