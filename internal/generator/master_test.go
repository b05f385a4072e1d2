package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// testConfig returns a validated config scaled down for fast tests.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StartDate = "2019-01-01"
	cfg.EndDate = "2020-12-31"
	cfg.Counts.Operators = 60
	cfg.Counts.SalesReps = 24
	cfg.Shipments.MinWeeklyOrderRate = 0.2
	cfg.Shipments.MaxWeeklyOrderRate = 0.3
	cfg.Shipments.MinProductsPerOrder = 2
	cfg.Shipments.MaxProductsPerOrder = 3
	cfg.Shipments.Workers = 2
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestGenerateTerritoriesCatalog(t *testing.T) {
	cfg := testConfig(t)
	territories := GenerateTerritories(cfg)
	require.Len(t, territories, 22)

	seen := map[string]bool{}
	regions := map[model.Region]int{}
	for _, tr := range territories {
		assert.False(t, seen[tr.TerritoryID], "duplicate territory id %s", tr.TerritoryID)
		seen[tr.TerritoryID] = true
		assert.NotEmpty(t, tr.State)
		assert.Contains(t, tr.Timezone, "America/")
		regions[tr.Region]++
	}
	assert.Len(t, regions, 4)
}

func TestGenerateDistributors(t *testing.T) {
	cfg := testConfig(t)
	f := datagen.New(cfg.Seed)
	territories := GenerateTerritories(cfg)
	distributors := GenerateDistributors(f, cfg, territories)
	require.Len(t, distributors, 13)

	byID := map[string]bool{}
	for _, tr := range territories {
		byID[tr.TerritoryID] = true
	}
	types := map[model.DistributorType]int{}
	for _, d := range distributors {
		assert.True(t, byID[d.TerritoryID], "distributor %s has unresolvable territory", d.DistributorID)
		types[d.DistributorType]++
	}
	assert.Equal(t, 4, types[model.DistributorNational])
	assert.Equal(t, 6, types[model.DistributorRegional])
	assert.Equal(t, 3, types[model.DistributorSpecialty])

	// Sysco is headquartered in TX and a TX territory exists in the catalog.
	assert.Equal(t, "SE-TX-HOU", distributors[0].TerritoryID)
}

func TestGenerateProducts(t *testing.T) {
	cfg := testConfig(t)
	products := GenerateProducts(datagen.New(cfg.Seed), cfg)
	require.Len(t, products, 87)

	for _, p := range products {
		assert.True(t, p.CostPerUnit.LessThan(p.ListPrice),
			"%s cost %s not below price %s", p.ProductID, p.CostPerUnit, p.ListPrice)
		assert.True(t, p.ListPrice.IsPositive())
		assert.True(t, p.Active)
		assert.NotEmpty(t, p.Category)
		assert.NotEmpty(t, p.Subcategory)
	}
}

func TestGenerateSalesRepsHierarchy(t *testing.T) {
	cfg := testConfig(t)
	territories := GenerateTerritories(cfg)
	reps := GenerateSalesReps(datagen.New(cfg.Seed), cfg, territories)
	require.Len(t, reps, cfg.Counts.SalesReps)

	byID := map[string]model.SalesRep{}
	for _, r := range reps {
		byID[r.RepID] = r
	}

	for _, r := range reps {
		switch r.RepTier {
		case model.RepDirector:
			assert.Empty(t, r.ManagerID, "director %s must have no manager", r.RepID)
		case model.RepSenior:
			mgr, ok := byID[r.ManagerID]
			require.True(t, ok, "senior %s manager unresolvable", r.RepID)
			assert.Equal(t, model.RepDirector, mgr.RepTier)
		case model.RepJunior:
			mgr, ok := byID[r.ManagerID]
			require.True(t, ok, "junior %s manager unresolvable", r.RepID)
			assert.Equal(t, model.RepSenior, mgr.RepTier)
		}
	}

	// Walking up the chain always terminates at a Director.
	for _, r := range reps {
		cur, hops := r, 0
		for cur.ManagerID != "" {
			cur = byID[cur.ManagerID]
			hops++
			require.LessOrEqual(t, hops, 3, "cycle reachable from %s", r.RepID)
		}
		assert.Equal(t, model.RepDirector, cur.RepTier)
	}
}

func TestGenerateOperators(t *testing.T) {
	cfg := testConfig(t)
	f := datagen.New(cfg.Seed)
	territories := GenerateTerritories(cfg)
	distributors := GenerateDistributors(f.Fork("d"), cfg, territories)
	stats := NewStats()
	operators := GenerateOperators(f.Fork("o"), cfg, territories, distributors, stats)
	require.Len(t, operators, cfg.Counts.Operators)

	terrByID := map[string]model.Territory{}
	for _, tr := range territories {
		terrByID[tr.TerritoryID] = tr
	}
	distByID := map[string]bool{}
	for _, d := range distributors {
		distByID[d.DistributorID] = true
	}

	for _, op := range operators {
		tr, ok := terrByID[op.TerritoryID]
		require.True(t, ok, "operator %s territory unresolvable", op.OperatorID)
		assert.Equal(t, tr.State, op.State)
		assert.True(t, distByID[op.PrimaryDistributorID])
		assert.NotEmpty(t, op.City)
		if op.OperatorType == "Restaurant" {
			assert.NotEmpty(t, op.CuisineType)
		} else {
			assert.Empty(t, op.CuisineType)
		}
	}
}
