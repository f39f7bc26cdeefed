package clickhouse_test

import (
	"testing"

	"github.com/pseudomuto/sqlcheck/pkg/catalog"
	. "github.com/pseudomuto/sqlcheck/pkg/clickhouse"
	"github.com/pseudomuto/sqlcheck/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestMapType(t *testing.T) {
	reg := types.Prelude()
	require.NoError(t, reg.Alias("DateTime", "integer"))

	tests := []struct {
		name     string
		expected *types.Type
	}{
		{name: "Int8", expected: types.Integer},
		{name: "UInt64", expected: types.Integer},
		{name: "Int256", expected: types.Integer},
		{name: "Bool", expected: types.Boolean},
		{name: "Nullable(Int32)", expected: types.Integer},
		{name: "LowCardinality(Nullable(UInt16))", expected: types.Integer},
		{name: "DateTime", expected: types.Integer},
		{name: "String"},
		{name: "Int12"},
		{name: "Array(Int32)"},
		{name: "Nullable(String)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := MapType(tt.name, reg)
			require.Equal(t, tt.expected != nil, ok)
			require.Equal(t, tt.expected, typ)
		})
	}
}

func TestBuildTables(t *testing.T) {
	columns := []Column{
		{Database: "analytics", Table: "events", Name: "user_id", Type: "UInt64"},
		{Database: "analytics", Table: "events", Name: "kind", Type: "LowCardinality(String)"},
		{Database: "analytics", Table: "events", Name: "processed", Type: "Bool"},
		{Database: "analytics", Table: "users", Name: "id", Type: "UInt64"},
		{Database: "default", Table: "users", Name: "id", Type: "UInt64"},
		{Database: "default", Table: "users", Name: "active", Type: "Bool"},
	}

	skipped, tables := BuildTables(columns, types.Prelude())
	require.Equal(t, []string{
		"analytics.events.kind",
		"default.users.id",
		"default.users.active",
	}, skipped)

	require.Len(t, tables, 2)
	require.Equal(t, "events", tables[0].Name)
	require.Equal(t, 2, tables[0].Len())
	require.Equal(t, "users", tables[1].Name)
	require.Equal(t, 1, tables[1].Len())

	col, ok := tables[0].Column("processed")
	require.True(t, ok)
	require.Equal(t, types.Boolean, col.Type)
}

func TestAddTables(t *testing.T) {
	users := catalog.NewTable("Users")
	require.NoError(t, users.AddColumn(catalog.NewColumn("email", types.Integer)))

	cat := catalog.New()
	cat.AddTable(users)

	columns := []Column{
		{Database: "analytics", Table: "events", Name: "user_id", Type: "UInt64"},
		{Database: "analytics", Table: "events", Name: "payload", Type: "String"},
		{Database: "analytics", Table: "users", Name: "id", Type: "UInt64"},
		{Database: "default", Table: "users", Name: "active", Type: "Bool"},
	}

	skipped := AddTables(cat, columns, types.Prelude())
	require.Equal(t, []string{
		"analytics.users.id",
		"default.users.active",
		"analytics.events.payload",
	}, skipped)

	require.Equal(t, 2, cat.Len())

	tbl, ok := cat.Table("users")
	require.True(t, ok)
	require.Same(t, users, tbl)

	tbl, ok = cat.Table("events")
	require.True(t, ok)
	require.Equal(t, 1, tbl.Len())
}

func TestColumnString(t *testing.T) {
	require.Equal(t, "db.t.c", Column{Database: "db", Table: "t", Name: "c"}.String())
}
