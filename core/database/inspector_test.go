package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE bom_lines (id INTEGER PRIMARY KEY, Part TEXT NOT NULL, qty INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO bom_lines (id, Part, qty) VALUES (1, 'bolt', 4), (2, 'nut', NULL)").Error)
	return db
}

func TestGetTableColumns(t *testing.T) {
	db := setupSQLite(t)

	columns, err := GetTableColumns(db, "bom_lines")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "integer", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.Equal(t, "Part", columns[1].Field)
	assert.Equal(t, "text", columns[1].Type)
	assert.Equal(t, "NO", columns[1].Null)
	assert.Equal(t, "YES", columns[2].Null)

	// PRAGMA table_info returns no rows for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)

	_, err = GetTableColumns(db, "bom_lines; DROP TABLE bom_lines")
	assert.EqualError(t, err, `invalid table name "bom_lines; DROP TABLE bom_lines"`)
}

func TestLoadTable_SQLite(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()

	tbl, err := LoadTable(ctx, db, "bom_lines", 0)
	require.NoError(t, err)

	assert.Equal(t, "bom_lines", tbl.Name)
	assert.Equal(t, []string{"id", "Part", "qty"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, int64(1), tbl.Rows[0]["id"])
	assert.Equal(t, "bolt", tbl.Rows[0]["Part"])
	assert.Equal(t, int64(4), tbl.Rows[0]["qty"])
	_, hasQty := tbl.Rows[1]["qty"]
	assert.False(t, hasQty)

	limited, err := LoadTable(ctx, db, "bom_lines", 1)
	require.NoError(t, err)
	assert.Len(t, limited.Rows, 1)

	_, err = LoadTable(ctx, db, "missing", 0)
	assert.EqualError(t, err, "table missing not found or has no columns")
}

func TestLoadTable_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `inventory`")).
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("sku", "VARCHAR(32)", "NO", "PRI", nil, "").
			AddRow("qty", "INT(11)", "YES", "", nil, ""))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `sku`, `qty` FROM `inventory` ORDER BY `sku` LIMIT 10")).
		WillReturnRows(sqlmock.NewRows([]string{"sku", "qty"}).
			AddRow([]byte("A-1"), int64(3)).
			AddRow([]byte("A-2"), nil))

	tbl, err := LoadTable(context.Background(), db, "inventory", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "qty"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "A-1", tbl.Rows[0]["sku"])
	assert.Equal(t, int64(3), tbl.Rows[0]["qty"])
	assert.NotContains(t, tbl.Rows[1], "qty")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTable_NoPrimaryKey(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `staging`")).
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("sku", "VARCHAR(32)", "YES", "", nil, ""))
	mock.ExpectQuery("^" + regexp.QuoteMeta("SELECT `sku` FROM `staging`") + "$").
		WillReturnRows(sqlmock.NewRows([]string{"sku"}).AddRow([]byte("A-1")))

	tbl, err := LoadTable(context.Background(), db, "staging", 0)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTable_OrderedByPrimaryKey(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE parts (code TEXT PRIMARY KEY, qty INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO parts VALUES ('c', 3), ('a', 1), ('b', 2)").Error)

	tbl, err := LoadTable(context.Background(), db, "parts", 2)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "a", tbl.Rows[0]["code"])
	assert.Equal(t, "b", tbl.Rows[1]["code"])
}

func TestLoadTable_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `inventory`")).
		WillReturnError(assert.AnError)

	_, err := LoadTable(context.Background(), db, "inventory", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`items`", quoteIdent("items"))
	assert.Equal(t, "`shop`.`items`", quoteIdent("shop.items"))
	assert.True(t, ValidTableName("shop.items"))
	assert.False(t, ValidTableName("1items"))
	assert.False(t, ValidTableName("items`"))
}
