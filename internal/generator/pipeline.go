package generator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/logging"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// Stats accumulates per-run counters. Skips are records dropped for
// unresolvable references; defects are kept records flagged for data
// quality. Safe for concurrent use by the shipment shards.
type Stats struct {
	RunID     uuid.UUID
	StartedAt time.Time

	mu        sync.Mutex
	Generated map[string]int
	Skipped   map[string]int
	Defects   map[string]int
}

// NewStats returns an empty counter set stamped with a fresh run ID.
func NewStats() *Stats {
	return &Stats{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		Generated: make(map[string]int),
		Skipped:   make(map[string]int),
		Defects:   make(map[string]int),
	}
}

// CountGenerated records the final row count for a table.
func (s *Stats) CountGenerated(table string, n int) {
	s.mu.Lock()
	s.Generated[table] = n
	s.mu.Unlock()
}

// CountSkip increments a dropped-record counter.
func (s *Stats) CountSkip(reason string) {
	s.mu.Lock()
	s.Skipped[reason]++
	s.mu.Unlock()
}

// CountDefect increments a data-quality defect counter.
func (s *Stats) CountDefect(reason string) {
	s.mu.Lock()
	s.Defects[reason]++
	s.mu.Unlock()
}

// Run generates the complete dataset in dependency order: master data, then
// CRM, then the shipment facts. The same seed always yields the same
// dataset.
func Run(ctx context.Context, cfg *config.Config) (*model.Dataset, *Stats, error) {
	stats := NewStats()
	f := datagen.New(cfg.Seed)

	logging.Info().Int64("seed", cfg.Seed).Str("run_id", stats.RunID.String()).Msg("generating dataset")

	ds := &model.Dataset{}
	ds.Territories = GenerateTerritories(cfg)
	ds.Distributors = GenerateDistributors(f.Fork("distributors"), cfg, ds.Territories)
	ds.Products = GenerateProducts(f.Fork("products"), cfg)
	ds.SalesReps = GenerateSalesReps(f.Fork("reps"), cfg, ds.Territories)
	ds.Operators = GenerateOperators(f.Fork("operators"), cfg, ds.Territories, ds.Distributors, stats)

	ds.Accounts = GenerateAccounts(f.Fork("accounts"), cfg, ds.Operators, ds.SalesReps)
	ds.Opportunities = GenerateOpportunities(f.Fork("opportunities"), cfg, ds.Accounts, ds.Operators, stats)
	ds.Activities = GenerateActivities(f.Fork("activities"), cfg, ds.Accounts, ds.Opportunities)

	shipments, err := GenerateShipments(ctx, f.Fork("shipments"), cfg, ds.Distributors, ds.Operators, ds.Products, stats)
	if err != nil {
		return nil, stats, err
	}
	ds.Shipments = shipments

	stats.CountGenerated("territories", len(ds.Territories))
	stats.CountGenerated("distributors", len(ds.Distributors))
	stats.CountGenerated("products", len(ds.Products))
	stats.CountGenerated("sales_reps", len(ds.SalesReps))
	stats.CountGenerated("operators", len(ds.Operators))
	stats.CountGenerated("sf_accounts", len(ds.Accounts))
	stats.CountGenerated("sf_opportunities", len(ds.Opportunities))
	stats.CountGenerated("sf_activities", len(ds.Activities))
	stats.CountGenerated("shipments", len(ds.Shipments))

	logging.Info().
		Int("shipments", len(ds.Shipments)).
		Int("operators", len(ds.Operators)).
		Msg("dataset complete")
	return ds, stats, nil
}
