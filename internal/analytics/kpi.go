// Package analytics computes dashboard KPI snapshots from a loaded store
// and exports them as JSON documents. Queries are plain GROUP BY SQL and
// run identically on SQLite and PostgreSQL apart from date formatting.
package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MohithS04/Food-service-sales/internal/logging"
	"github.com/MohithS04/Food-service-sales/internal/store"
)

// Exporter writes KPI snapshot files for one run.
type Exporter struct {
	DB      *sql.DB
	Dialect store.Dialect
	OutDir  string
	RunID   uuid.UUID
}

// snapshot is the JSON envelope around every exported document.
type snapshot struct {
	RunID       string      `json:"run_id"`
	GeneratedAt string      `json:"generated_at"`
	Data        interface{} `json:"data"`
}

// yearExpr returns the SQL expression extracting the year of a date column.
func (e *Exporter) yearExpr(col string) string {
	if e.Dialect == store.DialectPostgres {
		return fmt.Sprintf("to_char(%s, 'YYYY')", col)
	}
	return fmt.Sprintf("strftime('%%Y', %s)", col)
}

func (e *Exporter) monthExpr(col string) string {
	if e.Dialect == store.DialectPostgres {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", col)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", col)
}

// ExportAll computes and writes every KPI snapshot.
func (e *Exporter) ExportAll() error {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return fmt.Errorf("create kpi dir: %w", err)
	}

	exports := []struct {
		name string
		fn   func() (interface{}, error)
	}{
		{"executive_summary", e.executiveSummary},
		{"yoy_growth", func() (interface{}, error) { return e.queryRecords(e.yoyGrowthSQL()) }},
		{"distributor_scorecards", func() (interface{}, error) { return e.queryRecords(distributorScorecardSQL) }},
		{"rep_rankings", func() (interface{}, error) { return e.queryRecords(repRankingsSQL) }},
		{"territory_summary", func() (interface{}, error) { return e.queryRecords(territorySummarySQL) }},
		{"pipeline_health", func() (interface{}, error) { return e.queryRecords(pipelineHealthSQL) }},
		{"monthly_trends", func() (interface{}, error) { return e.queryRecords(e.monthlyTrendsSQL()) }},
		{"activity_correlation", func() (interface{}, error) { return e.queryRecords(activityCorrelationSQL) }},
	}

	for _, exp := range exports {
		data, err := exp.fn()
		if err != nil {
			return fmt.Errorf("compute %s: %w", exp.name, err)
		}
		if err := e.writeSnapshot(exp.name, data); err != nil {
			return fmt.Errorf("write %s: %w", exp.name, err)
		}
		logging.Info().Str("kpi", exp.name).Msg("snapshot exported")
	}
	return nil
}

func (e *Exporter) writeSnapshot(name string, data interface{}) error {
	doc := snapshot{
		RunID:       e.RunID.String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Data:        data,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.OutDir, name+".json"), raw, 0o644)
}

// queryRecords runs a query and returns its rows as ordered column maps.
func (e *Exporter) queryRecords(query string) ([]map[string]interface{}, error) {
	rows, err := e.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]interface{}
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				record[c] = string(b)
			} else {
				record[c] = vals[i]
			}
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (e *Exporter) executiveSummary() (interface{}, error) {
	shipping, err := e.queryRecords(`
		SELECT
			ROUND(SUM(net_revenue), 2) as total_net_sales,
			ROUND(SUM(gross_revenue), 2) as total_gross_sales,
			ROUND(SUM(net_revenue) - SUM(cost_of_goods), 2) as gross_margin,
			ROUND(100.0 * (SUM(net_revenue) - SUM(cost_of_goods)) / SUM(net_revenue), 1) as margin_pct,
			SUM(quantity) as total_units,
			COUNT(DISTINCT operator_id) as total_operators,
			COUNT(DISTINCT distributor_id) as total_distributors,
			COUNT(*) as total_shipments
		FROM shipments`)
	if err != nil {
		return nil, err
	}
	crm, err := e.queryRecords(`
		SELECT
			COUNT(*) as total_opportunities,
			SUM(CASE WHEN stage = 'Closed Won' THEN 1 ELSE 0 END) as won_deals,
			SUM(CASE WHEN stage = 'Closed Lost' THEN 1 ELSE 0 END) as lost_deals,
			ROUND(100.0 * SUM(CASE WHEN stage = 'Closed Won' THEN 1 ELSE 0 END) /
				NULLIF(SUM(CASE WHEN stage IN ('Closed Won', 'Closed Lost') THEN 1 ELSE 0 END), 0), 1) as win_rate,
			SUM(CASE WHEN stage = 'Closed Won' THEN amount ELSE 0 END) as revenue_won,
			ROUND(AVG(CASE WHEN stage = 'Closed Won' THEN amount END), 2) as avg_deal_size,
			SUM(CASE WHEN stage NOT IN ('Closed Won', 'Closed Lost') THEN amount ELSE 0 END) as pipeline_value
		FROM sf_opportunities`)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]interface{})
	if len(shipping) > 0 {
		for k, v := range shipping[0] {
			summary[k] = v
		}
	}
	if len(crm) > 0 {
		for k, v := range crm[0] {
			summary[k] = v
		}
	}
	return summary, nil
}

func (e *Exporter) yoyGrowthSQL() string {
	return fmt.Sprintf(`
		WITH yearly AS (
			SELECT
				%s as year,
				d.distributor_name,
				d.distributor_type,
				SUM(s.net_revenue) as net_sales
			FROM shipments s
			JOIN distributors d ON s.distributor_id = d.distributor_id
			GROUP BY %s, d.distributor_name, d.distributor_type
		)
		SELECT
			curr.year,
			curr.distributor_name,
			curr.distributor_type,
			curr.net_sales,
			prev.net_sales as prior_year,
			ROUND((curr.net_sales - COALESCE(prev.net_sales, 0)) / NULLIF(prev.net_sales, 0) * 100, 1) as yoy_growth
		FROM yearly curr
		LEFT JOIN yearly prev ON curr.distributor_name = prev.distributor_name
			AND CAST(curr.year AS INT) = CAST(prev.year AS INT) + 1
		ORDER BY curr.year DESC, curr.net_sales DESC`,
		e.yearExpr("s.week_ending"), e.yearExpr("s.week_ending"))
}

const distributorScorecardSQL = `
	SELECT
		d.distributor_id,
		d.distributor_name,
		d.distributor_type,
		t.region,
		COUNT(DISTINCT s.operator_id) as active_operators,
		COUNT(DISTINCT s.product_id) as products_sold,
		SUM(s.quantity) as total_units,
		ROUND(SUM(s.net_revenue), 2) as net_sales,
		ROUND(SUM(s.gross_revenue), 2) as gross_sales,
		ROUND(100.0 * SUM(s.returns) / NULLIF(SUM(s.gross_revenue), 0), 2) as return_rate,
		ROUND(SUM(s.net_revenue) - SUM(s.cost_of_goods), 2) as gross_margin
	FROM distributors d
	LEFT JOIN territories t ON d.territory_id = t.territory_id
	LEFT JOIN shipments s ON d.distributor_id = s.distributor_id
	GROUP BY d.distributor_id, d.distributor_name, d.distributor_type, t.region
	ORDER BY net_sales DESC`

// Deal and activity aggregates are computed per rep before joining, so
// neither multiplies the other's sums.
const repRankingsSQL = `
	SELECT
		sr.rep_id,
		sr.rep_name,
		sr.rep_tier,
		t.territory_name,
		t.region,
		sr.quota_annual,
		COALESCE(o.opportunities, 0) as opportunities,
		COALESCE(o.won, 0) as won,
		COALESCE(o.lost, 0) as lost,
		o.win_rate,
		COALESCE(o.revenue, 0) as revenue,
		o.avg_deal,
		ROUND(100.0 * COALESCE(o.revenue, 0) / NULLIF(sr.quota_annual, 0), 1) as quota_attainment,
		COALESCE(a.activities, 0) as activities,
		ROUND(1.0 * COALESCE(a.activities, 0) / NULLIF(o.opportunities, 0), 1) as activities_per_opp
	FROM sales_reps sr
	LEFT JOIN territories t ON sr.territory_id = t.territory_id
	LEFT JOIN (
		SELECT
			owner_rep_id,
			COUNT(*) as opportunities,
			SUM(CASE WHEN stage = 'Closed Won' THEN 1 ELSE 0 END) as won,
			SUM(CASE WHEN stage = 'Closed Lost' THEN 1 ELSE 0 END) as lost,
			ROUND(100.0 * SUM(CASE WHEN stage = 'Closed Won' THEN 1 ELSE 0 END) /
				NULLIF(SUM(CASE WHEN stage IN ('Closed Won', 'Closed Lost') THEN 1 ELSE 0 END), 0), 1) as win_rate,
			SUM(CASE WHEN stage = 'Closed Won' THEN amount ELSE 0 END) as revenue,
			ROUND(AVG(CASE WHEN stage = 'Closed Won' THEN amount END), 2) as avg_deal
		FROM sf_opportunities
		GROUP BY owner_rep_id
	) o ON sr.rep_id = o.owner_rep_id
	LEFT JOIN (
		SELECT rep_id, COUNT(*) as activities
		FROM sf_activities
		GROUP BY rep_id
	) a ON sr.rep_id = a.rep_id
	WHERE sr.rep_tier != 'Director'
	ORDER BY revenue DESC`

// Shipment revenue and CRM aggregates roll up per territory in their own
// subqueries before the joins.
const territorySummarySQL = `
	SELECT
		t.territory_id,
		t.territory_name,
		t.region,
		t.state,
		COALESCE(op.operators, 0) as operators,
		COALESCE(r.reps, 0) as reps,
		ship.net_sales,
		COALESCE(crm.opportunities, 0) as opportunities,
		COALESCE(crm.revenue_won, 0) as revenue_won
	FROM territories t
	LEFT JOIN (
		SELECT territory_id, COUNT(*) as operators
		FROM operators
		GROUP BY territory_id
	) op ON t.territory_id = op.territory_id
	LEFT JOIN (
		SELECT territory_id, COUNT(*) as reps
		FROM sales_reps
		GROUP BY territory_id
	) r ON t.territory_id = r.territory_id
	LEFT JOIN (
		SELECT o.territory_id, ROUND(SUM(s.net_revenue), 2) as net_sales
		FROM shipments s
		JOIN operators o ON s.operator_id = o.operator_id
		GROUP BY o.territory_id
	) ship ON t.territory_id = ship.territory_id
	LEFT JOIN (
		SELECT
			a.territory_id,
			COUNT(*) as opportunities,
			SUM(CASE WHEN opp.stage = 'Closed Won' THEN opp.amount ELSE 0 END) as revenue_won
		FROM sf_opportunities opp
		JOIN sf_accounts a ON opp.account_id = a.account_id
		GROUP BY a.territory_id
	) crm ON t.territory_id = crm.territory_id
	ORDER BY ship.net_sales DESC`

const pipelineHealthSQL = `
	SELECT
		stage,
		COUNT(*) as count,
		SUM(amount) as value,
		AVG(probability) as avg_probability,
		SUM(amount * probability / 100.0) as weighted_value
	FROM sf_opportunities
	WHERE stage NOT IN ('Closed Won', 'Closed Lost')
	GROUP BY stage
	ORDER BY avg_probability`

func (e *Exporter) monthlyTrendsSQL() string {
	return fmt.Sprintf(`
		SELECT
			%s as month,
			SUM(net_revenue) as net_sales,
			SUM(quantity) as units,
			COUNT(DISTINCT operator_id) as active_operators,
			ROUND(SUM(net_revenue) - SUM(cost_of_goods), 2) as gross_margin
		FROM shipments
		GROUP BY %s
		ORDER BY month`,
		e.monthExpr("week_ending"), e.monthExpr("week_ending"))
}

// The inner join on the activity rollup keeps only reps with at least one
// activity; won revenue is summed per rep before joining.
const activityCorrelationSQL = `
	SELECT
		sr.rep_id,
		sr.rep_name,
		a.total_activities,
		a.calls,
		a.meetings,
		a.demos,
		a.site_visits,
		COALESCE(o.revenue, 0) as revenue
	FROM sales_reps sr
	JOIN (
		SELECT
			rep_id,
			COUNT(*) as total_activities,
			SUM(CASE WHEN activity_type = 'Call' THEN 1 ELSE 0 END) as calls,
			SUM(CASE WHEN activity_type = 'Meeting' THEN 1 ELSE 0 END) as meetings,
			SUM(CASE WHEN activity_type = 'Demo' THEN 1 ELSE 0 END) as demos,
			SUM(CASE WHEN activity_type = 'Site Visit' THEN 1 ELSE 0 END) as site_visits
		FROM sf_activities
		GROUP BY rep_id
	) a ON sr.rep_id = a.rep_id
	LEFT JOIN (
		SELECT owner_rep_id, SUM(amount) as revenue
		FROM sf_opportunities
		WHERE stage = 'Closed Won'
		GROUP BY owner_rep_id
	) o ON sr.rep_id = o.owner_rep_id
	WHERE sr.rep_tier != 'Director'`
