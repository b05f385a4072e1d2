package validate

import (
	"database/sql"
	"fmt"
)

// fkChecks are the orphan queries, one per foreign-key edge.
var fkChecks = []struct {
	name  string
	query string
}{
	{"distributors_to_territories",
		"SELECT COUNT(*) FROM distributors d WHERE d.territory_id NOT IN (SELECT territory_id FROM territories)"},
	{"sales_reps_to_territories",
		"SELECT COUNT(*) FROM sales_reps r WHERE r.territory_id NOT IN (SELECT territory_id FROM territories)"},
	{"sales_reps_to_manager",
		"SELECT COUNT(*) FROM sales_reps r WHERE r.manager_id IS NOT NULL AND r.manager_id NOT IN (SELECT rep_id FROM sales_reps)"},
	{"operators_to_territories",
		"SELECT COUNT(*) FROM operators o WHERE o.territory_id NOT IN (SELECT territory_id FROM territories)"},
	{"operators_to_distributors",
		"SELECT COUNT(*) FROM operators o WHERE o.primary_distributor_id NOT IN (SELECT distributor_id FROM distributors)"},
	{"accounts_to_operators",
		"SELECT COUNT(*) FROM sf_accounts a WHERE a.operator_id NOT IN (SELECT operator_id FROM operators)"},
	{"opportunities_to_accounts",
		"SELECT COUNT(*) FROM sf_opportunities o WHERE o.account_id NOT IN (SELECT account_id FROM sf_accounts)"},
	{"activities_to_accounts",
		"SELECT COUNT(*) FROM sf_activities a WHERE a.account_id NOT IN (SELECT account_id FROM sf_accounts)"},
	{"activities_to_opportunities",
		"SELECT COUNT(*) FROM sf_activities a WHERE a.opportunity_id IS NOT NULL AND a.opportunity_id NOT IN (SELECT opportunity_id FROM sf_opportunities)"},
	{"shipments_to_distributors",
		"SELECT COUNT(*) FROM shipments s WHERE s.distributor_id NOT IN (SELECT distributor_id FROM distributors)"},
	{"shipments_to_operators",
		"SELECT COUNT(*) FROM shipments s WHERE s.operator_id NOT IN (SELECT operator_id FROM operators)"},
	{"shipments_to_products",
		"SELECT COUNT(*) FROM shipments s WHERE s.product_id NOT IN (SELECT product_id FROM products)"},
}

var nullChecks = []struct {
	table  string
	column string
}{
	{"distributors", "distributor_name"},
	{"operators", "operator_name"},
	{"products", "product_name"},
	{"sales_reps", "rep_name"},
	{"sf_opportunities", "stage"},
	{"shipments", "net_revenue"},
}

// RunSQL validates a loaded store. The checks mirror the in-memory pass:
// row counts, nulls in required columns, FK orphans and the win-rate band.
func RunSQL(db *sql.DB) (*Report, error) {
	r := &Report{}

	for _, table := range []string{
		"territories", "distributors", "products", "sales_reps", "operators",
		"sf_accounts", "sf_opportunities", "sf_activities", "shipments",
	} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		violations := 0
		if count == 0 {
			violations = 1
		}
		r.add("nonempty_"+table, SeverityHard, violations, fmt.Sprintf("%d rows", count))
	}

	for _, nc := range nullChecks {
		var nulls int
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NULL", nc.table, nc.column)
		if err := db.QueryRow(q).Scan(&nulls); err != nil {
			return nil, fmt.Errorf("null check %s.%s: %w", nc.table, nc.column, err)
		}
		r.add("notnull_"+nc.table+"_"+nc.column, SeverityHard, nulls, "")
	}

	for _, fc := range fkChecks {
		var orphans int
		if err := db.QueryRow(fc.query).Scan(&orphans); err != nil {
			return nil, fmt.Errorf("fk check %s: %w", fc.name, err)
		}
		r.add("fk_"+fc.name, SeverityHard, orphans, "")
	}

	// net <= gross at the row level
	var badFinancials int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM shipments WHERE net_revenue < 0 OR net_revenue > gross_revenue OR cost_of_goods < 0",
	).Scan(&badFinancials); err != nil {
		return nil, fmt.Errorf("financials check: %w", err)
	}
	r.add("shipment_financials", SeverityHard, badFinancials, "")

	var winRate sql.NullFloat64
	var closed int
	if err := db.QueryRow(`
		SELECT
			100.0 * SUM(CASE WHEN stage = 'Closed Won' THEN 1 ELSE 0 END) / COUNT(*),
			COUNT(*)
		FROM sf_opportunities
		WHERE stage IN ('Closed Won', 'Closed Lost')`).Scan(&winRate, &closed); err != nil {
		return nil, fmt.Errorf("win rate check: %w", err)
	}
	violations := 0
	detail := "no closed opportunities"
	if closed > 0 && winRate.Valid {
		if winRate.Float64 < 30 || winRate.Float64 > 70 {
			violations = 1
		}
		detail = fmt.Sprintf("aggregate win rate %.1f%% (expected 30-70%%)", winRate.Float64)
	}
	r.add("win_rate_band", SeveritySoft, violations, detail)

	return r, nil
}
