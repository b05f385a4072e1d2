package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesInLoadOrder(t *testing.T) {
	ordered := TablesInLoadOrder()
	require.Len(t, ordered, len(Tables()))

	assert.Equal(t, "territories", ordered[0].Name)

	position := map[string]int{}
	for i, tmpl := range ordered {
		position[tmpl.Name] = i
	}
	for _, tmpl := range ordered {
		for _, fk := range tmpl.ForeignKeys {
			assert.Less(t, position[fk.RefTable], position[tmpl.Name],
				"%s must load after %s", tmpl.Name, fk.RefTable)
		}
	}
}

func TestDDL(t *testing.T) {
	tmpl, ok := TableByName("shipments")
	require.True(t, ok)

	for _, dialect := range []Dialect{DialectSQLite, DialectPostgres} {
		stmts := DDL(tmpl, dialect)
		require.NotEmpty(t, stmts)

		create := stmts[0]
		assert.Contains(t, create, "CREATE TABLE IF NOT EXISTS shipments")
		assert.Contains(t, create, "shipment_id BIGINT PRIMARY KEY")
		assert.Contains(t, create, "FOREIGN KEY (operator_id) REFERENCES operators(operator_id)")

		// One statement per index after the CREATE TABLE.
		assert.Len(t, stmts, 1+len(tmpl.Indexes))
		for _, s := range stmts[1:] {
			assert.True(t, strings.HasPrefix(s, "CREATE ") && strings.Contains(s, "INDEX"))
		}
	}
}

func TestNullableColumnsSkipNotNull(t *testing.T) {
	tmpl, ok := TableByName("sf_opportunities")
	require.True(t, ok)
	create := DDL(tmpl, DialectSQLite)[0]

	assert.Contains(t, create, "CREATE TABLE IF NOT EXISTS sf_opportunities")
	assert.Contains(t, create, "account_id TEXT NOT NULL")
	assert.Contains(t, create, "close_date DATE,")
	assert.NotContains(t, create, "close_date DATE NOT NULL")
}

func TestColumnNamesOrder(t *testing.T) {
	tmpl, ok := TableByName("territories")
	require.True(t, ok)
	assert.Equal(t, []string{"territory_id", "territory_name", "region", "state", "timezone"}, ColumnNames(tmpl))
}

func TestTableByNameUnknown(t *testing.T) {
	_, ok := TableByName("nope")
	assert.False(t, ok)
}

func TestConvertValue(t *testing.T) {
	intCol := ColumnDef{Name: "quantity", Type: "INTEGER"}
	v, err := convertValue(intCol, "42", DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	numCol := ColumnDef{Name: "net_revenue", Type: "NUMERIC(12,2)"}
	v, err = convertValue(numCol, "1234.56", DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	dateCol := ColumnDef{Name: "week_ending", Type: "DATE"}
	v, err = convertValue(dateCol, "2020-04-11", DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, "2020-04-11", v, "sqlite keeps dates as text")

	nullCol := ColumnDef{Name: "close_date", Type: "DATE", Nullable: true}
	v, err = convertValue(nullCol, "", DialectSQLite)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = convertValue(intCol, "", DialectSQLite)
	assert.Error(t, err, "empty non-nullable integer must fail")

	_, err = convertValue(dateCol, "04/11/2020", DialectSQLite)
	assert.Error(t, err)
}
