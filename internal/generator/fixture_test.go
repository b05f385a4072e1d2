package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// testFixture holds master data generated once per test from the scaled
// down config.
type testFixture struct {
	cfg          *config.Config
	territories  []model.Territory
	distributors []model.Distributor
	products     []model.Product
	reps         []model.SalesRep
	operators    []model.Operator
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	cfg := testConfig(t)
	f := datagen.New(cfg.Seed)
	territories := GenerateTerritories(cfg)
	distributors := GenerateDistributors(f.Fork("distributors"), cfg, territories)
	products := GenerateProducts(f.Fork("products"), cfg)
	reps := GenerateSalesReps(f.Fork("reps"), cfg, territories)
	operators := GenerateOperators(f.Fork("operators"), cfg, territories, distributors, NewStats())
	require.NotEmpty(t, operators)
	return &testFixture{
		cfg:          cfg,
		territories:  territories,
		distributors: distributors,
		products:     products,
		reps:         reps,
		operators:    operators,
	}
}
