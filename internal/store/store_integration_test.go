package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohithS04/Food-service-sales/internal/analytics"
	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/generator"
	"github.com/MohithS04/Food-service-sales/internal/model"
	"github.com/MohithS04/Food-service-sales/internal/store"
	"github.com/MohithS04/Food-service-sales/internal/validate"
)

func generateDataset(t *testing.T) *model.Dataset {
	t.Helper()
	cfg := config.Default()
	cfg.StartDate = "2019-01-01"
	cfg.EndDate = "2020-12-31"
	cfg.Counts.Operators = 50
	cfg.Counts.SalesReps = 20
	cfg.Shipments.MinWeeklyOrderRate = 0.2
	cfg.Shipments.MaxWeeklyOrderRate = 0.3
	cfg.Shipments.MinProductsPerOrder = 2
	cfg.Shipments.MaxProductsPerOrder = 3
	cfg.Shipments.Workers = 2
	require.NoError(t, cfg.Validate())

	ds, _, err := generator.Run(context.Background(), cfg)
	require.NoError(t, err)
	return ds
}

func TestCSVRoundTrip(t *testing.T) {
	ds := generateDataset(t)
	dir := t.TempDir()
	require.NoError(t, store.WriteCSVDir(dir, ds))

	for _, tmpl := range store.Tables() {
		want, err := store.ExtractRows(tmpl.Name, ds)
		require.NoError(t, err)

		got, err := store.ReadCSV(dir, tmpl.Name)
		require.NoError(t, err, "read %s", tmpl.Name)
		require.Len(t, got, len(want), "row count mismatch in %s", tmpl.Name)
		if len(want) > 0 {
			assert.Equal(t, want[0], got[0])
			assert.Equal(t, want[len(want)-1], got[len(got)-1])
		}
	}
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "territories.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("territory_id,name,region,state,timezone\n"), 0o644))

	_, err := store.ReadCSV(dir, "territories")
	assert.Error(t, err)
}

func TestSQLiteLoadValidateExport(t *testing.T) {
	ds := generateDataset(t)
	dir := t.TempDir()
	require.NoError(t, store.WriteCSVDir(dir, ds))

	db, err := store.OpenSQLite(filepath.Join(dir, "analytics.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, store.LoadSQLite(db, dir))

	var shipments int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM shipments").Scan(&shipments))
	assert.Equal(t, len(ds.Shipments), shipments)

	var operators int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM operators").Scan(&operators))
	assert.Equal(t, len(ds.Operators), operators)

	// Dates must load as text that strftime understands.
	var year string
	require.NoError(t, db.QueryRow(
		"SELECT strftime('%Y', week_ending) FROM shipments LIMIT 1").Scan(&year))
	assert.Contains(t, []string{"2019", "2020"}, year)

	report, err := validate.RunSQL(db)
	require.NoError(t, err)
	for _, c := range report.Failures() {
		t.Logf("failed: %s violations=%d %s", c.Name, c.Violations, c.Detail)
	}
	assert.True(t, report.Passed())

	// Reloading is idempotent, not additive.
	require.NoError(t, store.LoadSQLite(db, dir))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM shipments").Scan(&shipments))
	assert.Equal(t, len(ds.Shipments), shipments)

	kpiDir := filepath.Join(dir, "kpi")
	exp := &analytics.Exporter{
		DB:      db,
		Dialect: store.DialectSQLite,
		OutDir:  kpiDir,
		RunID:   uuid.New(),
	}
	require.NoError(t, exp.ExportAll())

	names := []string{
		"executive_summary", "yoy_growth", "distributor_scorecards",
		"rep_rankings", "territory_summary", "pipeline_health",
		"monthly_trends", "activity_correlation",
	}
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(kpiDir, name+".json"))
		require.NoError(t, err, "missing snapshot %s", name)

		var doc struct {
			RunID       string          `json:"run_id"`
			GeneratedAt string          `json:"generated_at"`
			Data        json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, exp.RunID.String(), doc.RunID)
		assert.NotEmpty(t, doc.Data)
	}

	var summary struct {
		Data map[string]interface{} `json:"data"`
	}
	raw, err := os.ReadFile(filepath.Join(kpiDir, "executive_summary.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Contains(t, summary.Data, "total_net_sales")
	assert.Contains(t, summary.Data, "win_rate")
	assert.Contains(t, summary.Data, "total_shipments")
}
