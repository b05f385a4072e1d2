package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/generator"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

func smallDataset(t *testing.T) (*config.Config, *model.Dataset) {
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
	return cfg, ds
}

func TestGeneratedDatasetPasses(t *testing.T) {
	cfg, ds := smallDataset(t)
	report := Dataset(cfg, ds)
	for _, c := range report.Failures() {
		t.Logf("failed: %s severity=%s violations=%d %s", c.Name, c.Severity, c.Violations, c.Detail)
	}
	assert.True(t, report.Passed())
}

func TestCorruptedForeignKeyFailsHard(t *testing.T) {
	cfg, ds := smallDataset(t)
	require.NotEmpty(t, ds.Shipments)
	ds.Shipments[0].ProductID = "PROD-99999"

	report := Dataset(cfg, ds)
	assert.False(t, report.Passed())

	found := false
	for _, c := range report.Failures() {
		if c.Name == "shipment_fk" {
			found = true
			assert.Equal(t, SeverityHard, c.Severity)
			assert.Equal(t, 1, c.Violations)
		}
	}
	assert.True(t, found, "expected shipment_fk failure")
}

func TestShipmentDateOutsideHorizonFails(t *testing.T) {
	cfg, ds := smallDataset(t)
	require.NotEmpty(t, ds.Shipments)
	ds.Shipments[0].ShipmentDate = cfg.HorizonStart().AddDate(0, 0, -3)

	report := Dataset(cfg, ds)
	assert.False(t, report.Passed())

	found := false
	for _, c := range report.Failures() {
		if c.Name == "shipment_dates" {
			found = true
			assert.Equal(t, SeverityHard, c.Severity)
		}
	}
	assert.True(t, found, "expected shipment_dates failure")
}

func TestNegativeNetFailsHard(t *testing.T) {
	cfg, ds := smallDataset(t)
	ds.Shipments[0].NetRevenue = ds.Shipments[0].GrossRevenue.Neg().Sub(ds.Shipments[0].GrossRevenue)

	report := Dataset(cfg, ds)
	assert.False(t, report.Passed())
}

func TestClosedLostWithoutReasonFails(t *testing.T) {
	cfg, ds := smallDataset(t)
	corrupted := false
	for i := range ds.Opportunities {
		if ds.Opportunities[i].Stage == model.StageClosedLost {
			ds.Opportunities[i].LossReason = ""
			corrupted = true
			break
		}
	}
	require.True(t, corrupted, "dataset has no closed lost deals")

	report := Dataset(cfg, ds)
	assert.False(t, report.Passed())
}

func TestValidationIsIdempotent(t *testing.T) {
	cfg, ds := smallDataset(t)
	first := Dataset(cfg, ds)
	second := Dataset(cfg, ds)
	assert.Equal(t, first, second)
}

func TestSoftFailureDoesNotBlock(t *testing.T) {
	r := &Report{}
	r.add("win_rate_band", SeveritySoft, 1, "out of band")
	assert.True(t, r.Passed())
	assert.Len(t, r.Failures(), 1)
}
