package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

func TestWeekEndingsAreSaturdays(t *testing.T) {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)
	weeks := WeekEndings(start, end)
	require.NotEmpty(t, weeks)

	assert.Equal(t, time.Date(2019, 1, 5, 0, 0, 0, 0, time.UTC), weeks[0])
	for i, w := range weeks {
		assert.Equal(t, time.Saturday, w.Weekday())
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, w.Sub(weeks[i-1]))
		}
		assert.False(t, w.Before(start))
		assert.False(t, w.After(end))
	}
}

func TestQuantityJulyEnterprise(t *testing.T) {
	cfg := testConfig(t)
	f := datagen.New(1)

	// July 2019: seasonality 1.15, growth 1.02^4, no shock. Base draws from
	// [50, 200], so quantities land in roughly [60, 239].
	factor := 1.15 * cfg.Shipments.GrowthFor(2019)
	lo := int(float64(cfg.Shipments.TierRanges.Enterprise.Min)*factor) - 1
	hi := int(float64(cfg.Shipments.TierRanges.Enterprise.Max)*factor) + 1
	for i := 0; i < 2000; i++ {
		q := Quantity(f, cfg, model.TierEnterprise, 2019, time.July)
		require.GreaterOrEqual(t, q, lo)
		require.LessOrEqual(t, q, hi)
	}
}

func TestQuantityPandemicContraction(t *testing.T) {
	cfg := testConfig(t)

	mean := func(year int) float64 {
		f := datagen.New(99)
		total := 0
		const n = 5000
		for i := 0; i < n; i++ {
			total += Quantity(f, cfg, model.TierLarge, year, time.April)
		}
		return float64(total) / n
	}

	// April 2020 runs at a 0.60 multiplier; April 2019 is unshocked. The
	// expected ratio is 0.60 times one extra year of growth.
	ratio := mean(2020) / mean(2019)
	expected := 0.60 * (1 + cfg.Shipments.AnnualGrowth)
	assert.InDelta(t, expected, ratio, 0.04)
}

func TestQuantityFloorsAtOne(t *testing.T) {
	cfg := testConfig(t)
	f := datagen.New(3)
	for i := 0; i < 2000; i++ {
		assert.GreaterOrEqual(t, Quantity(f, cfg, model.TierSmall, 2020, time.April), 1)
	}
}

func TestGenerateShipments(t *testing.T) {
	fx := newFixture(t)
	f := datagen.New(fx.cfg.Seed)
	stats := NewStats()
	shipments, err := GenerateShipments(context.Background(), f.Fork("shipments"),
		fx.cfg, fx.distributors, fx.operators, fx.products, stats)
	require.NoError(t, err)
	require.NotEmpty(t, shipments)

	distByID := map[string]bool{}
	for _, d := range fx.distributors {
		distByID[d.DistributorID] = true
	}
	opByID := map[string]bool{}
	for _, op := range fx.operators {
		opByID[op.OperatorID] = true
	}
	prodByID := map[string]bool{}
	for _, p := range fx.products {
		prodByID[p.ProductID] = true
	}

	span := fx.cfg.Shipments.ShardIDSpan
	for _, s := range shipments {
		require.True(t, distByID[s.DistributorID])
		require.True(t, opByID[s.OperatorID])
		require.True(t, prodByID[s.ProductID])

		require.GreaterOrEqual(t, s.Quantity, 1)
		require.False(t, s.NetRevenue.IsNegative(), "shipment %d negative net", s.ShipmentID)
		require.False(t, s.NetRevenue.GreaterThan(s.GrossRevenue), "shipment %d net above gross", s.ShipmentID)
		require.False(t, s.COGS.IsNegative())
		require.Equal(t, s.GrossRevenue.Sub(s.Discounts).Sub(s.Returns), s.NetRevenue)

		require.Equal(t, time.Saturday, s.WeekEnding.Weekday())
		require.False(t, s.ShipmentDate.After(s.WeekEnding))
		// First-week ship dates clamp to the horizon start instead of
		// spilling into the prior year.
		require.False(t, s.ShipmentDate.Before(fx.cfg.HorizonStart()),
			"shipment %d dated %s before horizon", s.ShipmentID, s.ShipmentDate)

		// Shard ID ranges: 2019 is shard 0, 2020 shard 1.
		switch s.WeekEnding.Year() {
		case 2019:
			require.Less(t, s.ShipmentID, span+1)
		case 2020:
			require.Greater(t, s.ShipmentID, span)
			require.LessOrEqual(t, s.ShipmentID, 2*span)
		default:
			t.Fatalf("week ending outside horizon: %s", s.WeekEnding)
		}
	}
}

func TestGenerateShipmentsDeterministic(t *testing.T) {
	fx := newFixture(t)

	run := func() []model.Shipment {
		f := datagen.New(fx.cfg.Seed)
		out, err := GenerateShipments(context.Background(), f.Fork("shipments"),
			fx.cfg, fx.distributors, fx.operators, fx.products, NewStats())
		require.NoError(t, err)
		return out
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	assert.Equal(t, first, second)
}

func TestGenerateShipmentsSingleDistributor(t *testing.T) {
	fx := newFixture(t)
	only := fx.distributors[:1]
	for i := range fx.operators {
		fx.operators[i].PrimaryDistributorID = only[0].DistributorID
	}

	f := datagen.New(fx.cfg.Seed)
	shipments, err := GenerateShipments(context.Background(), f.Fork("shipments"),
		fx.cfg, only, fx.operators, fx.products, NewStats())
	require.NoError(t, err)
	require.NotEmpty(t, shipments)
	for _, s := range shipments {
		assert.Equal(t, only[0].DistributorID, s.DistributorID)
	}
}

func TestGenerateShipmentsCancellation(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := datagen.New(fx.cfg.Seed)
	_, err := GenerateShipments(ctx, f.Fork("shipments"),
		fx.cfg, fx.distributors, fx.operators, fx.products, NewStats())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunProducesFullDataset(t *testing.T) {
	cfg := testConfig(t)
	ds, stats, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, ds.Territories, 22)
	assert.Len(t, ds.Distributors, 13)
	assert.Len(t, ds.Products, 87)
	assert.Len(t, ds.Operators, cfg.Counts.Operators)
	assert.NotEmpty(t, ds.Accounts)
	assert.NotEmpty(t, ds.Opportunities)
	assert.NotEmpty(t, ds.Activities)
	assert.NotEmpty(t, ds.Shipments)

	assert.Equal(t, len(ds.Shipments), stats.Generated["shipments"])
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", stats.RunID.String())
}
