package generator

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/logging"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// WeekEndings lists every Saturday in [start, end].
func WeekEndings(start, end time.Time) []time.Time {
	var weeks []time.Time
	cur := start
	for cur.Weekday() != time.Saturday {
		cur = cur.AddDate(0, 0, 1)
	}
	for !cur.After(end) {
		weeks = append(weeks, cur)
		cur = cur.AddDate(0, 0, 7)
	}
	return weeks
}

// Quantity derives the shipped unit count for one line: tier base scaled by
// seasonality, compound growth and the demand shock, floored at one unit.
func Quantity(f *datagen.Faker, cfg *config.Config, tier model.RevenueTier, year int, month time.Month) int {
	r := cfg.Shipments.TierRanges.For(string(tier))
	base := float64(f.IntRange(r.Min, r.Max))
	scaled := base *
		cfg.Shipments.SeasonalityFor(month) *
		cfg.Shipments.GrowthFor(year) *
		cfg.Shipments.ShockFor(year, month)
	qty := int(math.Round(scaled))
	if qty < 1 {
		qty = 1
	}
	return qty
}

// shipmentLine computes the financial columns from quantity and the product
// economics. Discount and return rates are bounded so net can never go
// negative.
func shipmentLine(f *datagen.Faker, cfg *config.Config, p model.Product, qty int) (gross, discounts, returns, net, cogs decimal.Decimal) {
	q := decimal.NewFromInt(int64(qty))
	gross = p.ListPrice.Mul(q).Round(2)
	discounts = gross.Mul(decimal.NewFromFloat(f.Float64Range(0, cfg.Shipments.DiscountCap))).Round(2)
	returns = gross.Mul(decimal.NewFromFloat(f.Float64Range(0, cfg.Shipments.ReturnCap))).Round(2)
	net = gross.Sub(discounts).Sub(returns)
	if net.IsNegative() {
		net = decimal.Zero
	}
	cogs = p.CostPerUnit.Mul(q).Round(2)
	return
}

// yearShard is one unit of parallel work: all weeks of a single year,
// drawing from its own forked random stream and writing IDs from a reserved
// contiguous range.
type yearShard struct {
	year    int
	weeks   []time.Time
	faker   *datagen.Faker
	firstID int64
}

// GenerateShipments produces the weekly fact rows for the whole horizon.
// Years run concurrently under a semaphore; each shard owns a disjoint ID
// range and an independent stream, so output is identical regardless of
// scheduling. Cancellation stops unstarted shards; finished shards are kept.
func GenerateShipments(ctx context.Context, f *datagen.Faker, cfg *config.Config, distributors []model.Distributor, operators []model.Operator, products []model.Product, stats *Stats) ([]model.Shipment, error) {
	weeks := WeekEndings(cfg.HorizonStart(), cfg.HorizonEnd())
	byYear := make(map[int][]time.Time)
	for _, w := range weeks {
		byYear[w.Year()] = append(byYear[w.Year()], w)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	// Secondary distributor links are drawn once, outside the shards, so
	// every year sees the same operator relationships.
	secondaries := make(map[string][]string, len(operators))
	for _, op := range operators {
		// A lone distributor leaves no candidates besides the primary.
		if len(distributors) < 2 {
			continue
		}
		n := f.IntRange(0, 2)
		var secs []string
		for len(secs) < n {
			d := datagen.Choose(f, distributors)
			if d.DistributorID == op.PrimaryDistributorID {
				continue
			}
			secs = append(secs, d.DistributorID)
		}
		secondaries[op.OperatorID] = secs
	}

	shards := make([]yearShard, len(years))
	for i, y := range years {
		shards[i] = yearShard{
			year:    y,
			weeks:   byYear[y],
			faker:   f.Fork("shipments-" + time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")),
			firstID: int64(i)*cfg.Shipments.ShardIDSpan + 1,
		}
	}

	results := make([][]model.Shipment, len(shards))
	sem := make(chan struct{}, cfg.Shipments.Workers)
	var wg sync.WaitGroup
	for i := range shards {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			sh := shards[idx]
			results[idx] = generateYear(ctx, sh, cfg, operators, products, secondaries, stats)
			logging.Debug().Int("year", sh.year).Int("rows", len(results[idx])).Msg("shard done")
		}(i)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	out := make([]model.Shipment, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func generateYear(ctx context.Context, sh yearShard, cfg *config.Config, operators []model.Operator, products []model.Product, secondaries map[string][]string, stats *Stats) []model.Shipment {
	f := sh.faker
	id := sh.firstID
	var out []model.Shipment

	for _, week := range sh.weeks {
		if ctx.Err() != nil {
			return out
		}
		orderRate := f.Float64Range(cfg.Shipments.MinWeeklyOrderRate, cfg.Shipments.MaxWeeklyOrderRate)
		for _, op := range operators {
			if !f.Percent(orderRate) {
				continue
			}

			distributorID := op.PrimaryDistributorID
			if secs := secondaries[op.OperatorID]; len(secs) > 0 && !f.Percent(0.80) {
				distributorID = datagen.Choose(f, secs)
			}
			if distributorID == "" {
				stats.CountSkip("shipment_unresolved_distributor")
				continue
			}

			nProducts := f.IntRange(cfg.Shipments.MinProductsPerOrder, cfg.Shipments.MaxProductsPerOrder)
			for i := 0; i < nProducts; i++ {
				p := datagen.Choose(f, products)
				if p.ProductID == "" {
					stats.CountSkip("shipment_unresolved_product")
					continue
				}
				qty := Quantity(f, cfg, op.RevenueTier, sh.year, week.Month())
				gross, discounts, returns, net, cogs := shipmentLine(f, cfg, p, qty)
				// The first Saturday can fall within six days of the
				// horizon start; no shipment dates before the horizon.
				shipDate := week.AddDate(0, 0, -f.IntRange(1, 6))
				if shipDate.Before(cfg.HorizonStart()) {
					shipDate = cfg.HorizonStart()
				}
				out = append(out, model.Shipment{
					ShipmentID:    id,
					ShipmentDate:  shipDate,
					WeekEnding:    week,
					DistributorID: distributorID,
					OperatorID:    op.OperatorID,
					ProductID:     p.ProductID,
					Quantity:      qty,
					GrossRevenue:  gross,
					Discounts:     discounts,
					Returns:       returns,
					NetRevenue:    net,
					COGS:          cogs,
				})
				id++
			}
		}
	}
	return out
}
