// Package store persists the generated dataset: CSV files, a SQLite
// analytics database and PostgreSQL bulk loads. Table definitions are
// declarative so DDL, CSV column order and row extraction all share one
// source of truth.
package store

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavor for DDL and placeholders.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// TableTemplate defines a table's schema for DDL generation and loading.
type TableTemplate struct {
	Name        string
	Columns     []ColumnDef
	Indexes     []IndexDef
	ForeignKeys []FKDef
}

// ColumnDef defines a single column. Types are the portable subset that
// renders identically on SQLite and PostgreSQL.
type ColumnDef struct {
	Name       string
	Type       string // TEXT, INTEGER, BIGINT, NUMERIC(12,2), DATE
	Nullable   bool
	PrimaryKey bool
}

// IndexDef defines an index.
type IndexDef struct {
	Name    string
	Columns []string
	Unique  bool
}

// FKDef defines a foreign key reference.
type FKDef struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Tables returns the nine dataset tables in declaration order. Use
// TablesInLoadOrder for FK-safe creation and loading.
func Tables() []TableTemplate {
	return []TableTemplate{
		{
			Name: "territories",
			Columns: []ColumnDef{
				{Name: "territory_id", Type: "TEXT", PrimaryKey: true},
				{Name: "territory_name", Type: "TEXT"},
				{Name: "region", Type: "TEXT"},
				{Name: "state", Type: "TEXT"},
				{Name: "timezone", Type: "TEXT"},
			},
		},
		{
			Name: "distributors",
			Columns: []ColumnDef{
				{Name: "distributor_id", Type: "TEXT", PrimaryKey: true},
				{Name: "distributor_name", Type: "TEXT"},
				{Name: "distributor_type", Type: "TEXT"},
				{Name: "headquarters_state", Type: "TEXT"},
				{Name: "territory_id", Type: "TEXT"},
				{Name: "founded_year", Type: "INTEGER"},
				{Name: "active", Type: "INTEGER"},
			},
			ForeignKeys: []FKDef{
				{Column: "territory_id", RefTable: "territories", RefColumn: "territory_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_distributors_territory", Columns: []string{"territory_id"}},
			},
		},
		{
			Name: "products",
			Columns: []ColumnDef{
				{Name: "product_id", Type: "TEXT", PrimaryKey: true},
				{Name: "product_name", Type: "TEXT"},
				{Name: "category", Type: "TEXT"},
				{Name: "subcategory", Type: "TEXT"},
				{Name: "brand", Type: "TEXT"},
				{Name: "unit_of_sale", Type: "TEXT"},
				{Name: "list_price", Type: "NUMERIC(12,2)"},
				{Name: "cost_per_unit", Type: "NUMERIC(12,2)"},
				{Name: "launch_date", Type: "DATE"},
				{Name: "active", Type: "INTEGER"},
			},
			Indexes: []IndexDef{
				{Name: "idx_products_category", Columns: []string{"category"}},
			},
		},
		{
			Name: "sales_reps",
			Columns: []ColumnDef{
				{Name: "rep_id", Type: "TEXT", PrimaryKey: true},
				{Name: "rep_name", Type: "TEXT"},
				{Name: "email", Type: "TEXT"},
				{Name: "rep_tier", Type: "TEXT"},
				{Name: "region", Type: "TEXT"},
				{Name: "territory_id", Type: "TEXT"},
				{Name: "manager_id", Type: "TEXT", Nullable: true},
				{Name: "hire_date", Type: "DATE"},
				{Name: "quota_annual", Type: "NUMERIC(12,2)"},
				{Name: "active", Type: "INTEGER"},
			},
			ForeignKeys: []FKDef{
				{Column: "territory_id", RefTable: "territories", RefColumn: "territory_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_sales_reps_territory", Columns: []string{"territory_id"}},
				{Name: "idx_sales_reps_manager", Columns: []string{"manager_id"}},
			},
		},
		{
			Name: "operators",
			Columns: []ColumnDef{
				{Name: "operator_id", Type: "TEXT", PrimaryKey: true},
				{Name: "operator_name", Type: "TEXT"},
				{Name: "operator_type", Type: "TEXT"},
				{Name: "cuisine_type", Type: "TEXT", Nullable: true},
				{Name: "city", Type: "TEXT"},
				{Name: "state", Type: "TEXT"},
				{Name: "territory_id", Type: "TEXT"},
				{Name: "revenue_tier", Type: "TEXT"},
				{Name: "primary_distributor_id", Type: "TEXT"},
				{Name: "opened_date", Type: "DATE"},
				{Name: "active", Type: "INTEGER"},
			},
			ForeignKeys: []FKDef{
				{Column: "territory_id", RefTable: "territories", RefColumn: "territory_id"},
				{Column: "primary_distributor_id", RefTable: "distributors", RefColumn: "distributor_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_operators_territory", Columns: []string{"territory_id"}},
				{Name: "idx_operators_tier", Columns: []string{"revenue_tier"}},
			},
		},
		{
			Name: "sf_accounts",
			Columns: []ColumnDef{
				{Name: "account_id", Type: "TEXT", PrimaryKey: true},
				{Name: "operator_id", Type: "TEXT"},
				{Name: "account_name", Type: "TEXT"},
				{Name: "account_type", Type: "TEXT"},
				{Name: "owner_rep_id", Type: "TEXT"},
				{Name: "territory_id", Type: "TEXT"},
				{Name: "created_date", Type: "DATE"},
				{Name: "last_activity_date", Type: "DATE"},
				{Name: "account_status", Type: "TEXT"},
			},
			ForeignKeys: []FKDef{
				{Column: "operator_id", RefTable: "operators", RefColumn: "operator_id"},
				{Column: "owner_rep_id", RefTable: "sales_reps", RefColumn: "rep_id"},
				{Column: "territory_id", RefTable: "territories", RefColumn: "territory_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_sf_accounts_operator", Columns: []string{"operator_id"}, Unique: true},
				{Name: "idx_sf_accounts_owner", Columns: []string{"owner_rep_id"}},
			},
		},
		{
			Name: "sf_opportunities",
			Columns: []ColumnDef{
				{Name: "opportunity_id", Type: "TEXT", PrimaryKey: true},
				{Name: "account_id", Type: "TEXT"},
				{Name: "owner_rep_id", Type: "TEXT"},
				{Name: "opportunity_name", Type: "TEXT"},
				{Name: "stage", Type: "TEXT"},
				{Name: "amount", Type: "NUMERIC(12,2)"},
				{Name: "probability", Type: "INTEGER"},
				{Name: "created_date", Type: "DATE"},
				{Name: "close_date", Type: "DATE", Nullable: true},
				{Name: "lead_source", Type: "TEXT"},
				{Name: "loss_reason", Type: "TEXT", Nullable: true},
				{Name: "competitor", Type: "TEXT", Nullable: true},
				{Name: "next_steps", Type: "TEXT", Nullable: true},
				{Name: "product_focus", Type: "TEXT"},
			},
			ForeignKeys: []FKDef{
				{Column: "account_id", RefTable: "sf_accounts", RefColumn: "account_id"},
				{Column: "owner_rep_id", RefTable: "sales_reps", RefColumn: "rep_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_sf_opportunities_account", Columns: []string{"account_id"}},
				{Name: "idx_sf_opportunities_stage", Columns: []string{"stage"}},
			},
		},
		{
			Name: "sf_activities",
			Columns: []ColumnDef{
				{Name: "activity_id", Type: "TEXT", PrimaryKey: true},
				{Name: "account_id", Type: "TEXT"},
				{Name: "opportunity_id", Type: "TEXT", Nullable: true},
				{Name: "rep_id", Type: "TEXT"},
				{Name: "activity_type", Type: "TEXT"},
				{Name: "activity_date", Type: "DATE"},
				{Name: "duration_minutes", Type: "INTEGER"},
				{Name: "subject", Type: "TEXT"},
				{Name: "outcome", Type: "TEXT"},
			},
			ForeignKeys: []FKDef{
				{Column: "account_id", RefTable: "sf_accounts", RefColumn: "account_id"},
				{Column: "opportunity_id", RefTable: "sf_opportunities", RefColumn: "opportunity_id"},
				{Column: "rep_id", RefTable: "sales_reps", RefColumn: "rep_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_sf_activities_opportunity", Columns: []string{"opportunity_id"}},
			},
		},
		{
			Name: "shipments",
			Columns: []ColumnDef{
				{Name: "shipment_id", Type: "BIGINT", PrimaryKey: true},
				{Name: "shipment_date", Type: "DATE"},
				{Name: "week_ending", Type: "DATE"},
				{Name: "distributor_id", Type: "TEXT"},
				{Name: "operator_id", Type: "TEXT"},
				{Name: "product_id", Type: "TEXT"},
				{Name: "quantity", Type: "INTEGER"},
				{Name: "gross_revenue", Type: "NUMERIC(12,2)"},
				{Name: "discounts", Type: "NUMERIC(12,2)"},
				{Name: "returns", Type: "NUMERIC(12,2)"},
				{Name: "net_revenue", Type: "NUMERIC(12,2)"},
				{Name: "cost_of_goods", Type: "NUMERIC(12,2)"},
			},
			ForeignKeys: []FKDef{
				{Column: "distributor_id", RefTable: "distributors", RefColumn: "distributor_id"},
				{Column: "operator_id", RefTable: "operators", RefColumn: "operator_id"},
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
			},
			Indexes: []IndexDef{
				{Name: "idx_shipments_week", Columns: []string{"week_ending"}},
				{Name: "idx_shipments_distributor", Columns: []string{"distributor_id"}},
				{Name: "idx_shipments_operator", Columns: []string{"operator_id"}},
			},
		},
	}
}

// TablesInLoadOrder returns the tables sorted so every referenced table
// comes before its dependents (Kahn's algorithm).
func TablesInLoadOrder() []TableTemplate {
	return topologicalSort(Tables())
}

func topologicalSort(tables []TableTemplate) []TableTemplate {
	nameSet := make(map[string]bool, len(tables))
	byName := make(map[string]TableTemplate, len(tables))
	for _, t := range tables {
		nameSet[t.Name] = true
		byName[t.Name] = t
	}

	inDegree := make(map[string]int, len(tables))
	dependents := make(map[string][]string)
	for _, t := range tables {
		if _, ok := inDegree[t.Name]; !ok {
			inDegree[t.Name] = 0
		}
		for _, fk := range t.ForeignKeys {
			if nameSet[fk.RefTable] && fk.RefTable != t.Name {
				inDegree[t.Name]++
				dependents[fk.RefTable] = append(dependents[fk.RefTable], t.Name)
			}
		}
	}

	// Seed the queue in declaration order so the result is stable.
	var queue []string
	for _, t := range tables {
		if inDegree[t.Name] == 0 {
			queue = append(queue, t.Name)
		}
	}

	var sorted []TableTemplate
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		sorted = append(sorted, byName[name])
		for _, child := range dependents[name] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	// Cycle fallback: append whatever remains.
	if len(sorted) < len(tables) {
		present := make(map[string]bool, len(sorted))
		for _, t := range sorted {
			present[t.Name] = true
		}
		for _, t := range tables {
			if !present[t.Name] {
				sorted = append(sorted, t)
			}
		}
	}
	return sorted
}

// DDL renders the CREATE TABLE and CREATE INDEX statements for a template
// in the given dialect.
func DDL(tmpl TableTemplate, dialect Dialect) []string {
	var stmts []string

	var cols []string
	for _, c := range tmpl.Columns {
		col := fmt.Sprintf("  %s %s", c.Name, c.Type)
		if c.PrimaryKey {
			col += " PRIMARY KEY"
		} else if !c.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	for _, fk := range tmpl.ForeignKeys {
		cols = append(cols, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Column, fk.RefTable, fk.RefColumn))
	}
	stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		tmpl.Name, strings.Join(cols, ",\n")))

	for _, idx := range tmpl.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique, idx.Name, tmpl.Name, strings.Join(idx.Columns, ", ")))
	}
	return stmts
}

// ColumnNames returns the template's column names in declaration order,
// which is also the CSV column order.
func ColumnNames(tmpl TableTemplate) []string {
	names := make([]string, len(tmpl.Columns))
	for i, c := range tmpl.Columns {
		names[i] = c.Name
	}
	return names
}

// TableByName looks up a template by table name.
func TableByName(name string) (TableTemplate, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return TableTemplate{}, false
}
