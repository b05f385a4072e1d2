// Package validate runs read-only consistency checks over a dataset, in
// memory before persistence and in SQL against a loaded store. Every check
// always runs; hard failures block persistence, soft failures only warn.
package validate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// Severity classifies a check outcome.
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Name       string
	Severity   Severity
	Violations int
	Detail     string
}

// Passed reports whether the check found no violations.
func (c CheckResult) Passed() bool { return c.Violations == 0 }

// Report collects every check outcome of a validation pass.
type Report struct {
	Checks []CheckResult
}

// Passed reports whether no hard check failed. Soft failures do not block.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if c.Severity == SeverityHard && !c.Passed() {
			return false
		}
	}
	return true
}

// Failures returns the failed checks, hard and soft.
func (r *Report) Failures() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks {
		if !c.Passed() {
			out = append(out, c)
		}
	}
	return out
}

func (r *Report) add(name string, sev Severity, violations int, detail string) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Severity: sev, Violations: violations, Detail: detail})
}

// Dataset validates the generated data in memory. The pass is pure: the
// same dataset always yields the same report, and the dataset is never
// modified.
func Dataset(cfg *config.Config, ds *model.Dataset) *Report {
	r := &Report{}
	checkReferences(r, ds)
	checkRequiredFields(r, ds)
	checkTemporal(r, cfg, ds)
	checkBusinessRules(r, cfg, ds)
	checkWinRate(r, ds)
	return r
}

func checkReferences(r *Report, ds *model.Dataset) {
	territories := make(map[string]bool, len(ds.Territories))
	for _, t := range ds.Territories {
		territories[t.TerritoryID] = true
	}
	distributors := make(map[string]bool, len(ds.Distributors))
	for _, d := range ds.Distributors {
		distributors[d.DistributorID] = true
	}
	products := make(map[string]bool, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ProductID] = true
	}
	reps := make(map[string]bool, len(ds.SalesReps))
	for _, rep := range ds.SalesReps {
		reps[rep.RepID] = true
	}
	operators := make(map[string]bool, len(ds.Operators))
	for _, op := range ds.Operators {
		operators[op.OperatorID] = true
	}
	accounts := make(map[string]bool, len(ds.Accounts))
	for _, a := range ds.Accounts {
		accounts[a.AccountID] = true
	}
	opportunities := make(map[string]bool, len(ds.Opportunities))
	for _, o := range ds.Opportunities {
		opportunities[o.OpportunityID] = true
	}

	count := func(name string, n int) {
		r.add(name, SeverityHard, n, "")
	}

	n := 0
	for _, d := range ds.Distributors {
		if !territories[d.TerritoryID] {
			n++
		}
	}
	count("distributor_territory_fk", n)

	n = 0
	for _, rep := range ds.SalesReps {
		if !territories[rep.TerritoryID] {
			n++
		}
		if rep.ManagerID != "" && !reps[rep.ManagerID] {
			n++
		}
	}
	count("rep_territory_manager_fk", n)

	n = 0
	for _, op := range ds.Operators {
		if !territories[op.TerritoryID] || !distributors[op.PrimaryDistributorID] {
			n++
		}
	}
	count("operator_fk", n)

	n = 0
	for _, a := range ds.Accounts {
		if !operators[a.OperatorID] || !reps[a.OwnerRepID] || !territories[a.TerritoryID] {
			n++
		}
	}
	count("account_fk", n)

	n = 0
	for _, o := range ds.Opportunities {
		if !accounts[o.AccountID] || !reps[o.OwnerRepID] {
			n++
		}
	}
	count("opportunity_fk", n)

	n = 0
	for _, a := range ds.Activities {
		if !accounts[a.AccountID] || !reps[a.RepID] {
			n++
		}
		if a.OpportunityID != "" && !opportunities[a.OpportunityID] {
			n++
		}
	}
	count("activity_fk", n)

	n = 0
	for _, s := range ds.Shipments {
		if !distributors[s.DistributorID] || !operators[s.OperatorID] || !products[s.ProductID] {
			n++
		}
	}
	count("shipment_fk", n)
}

func checkRequiredFields(r *Report, ds *model.Dataset) {
	n := 0
	for _, op := range ds.Operators {
		if op.OperatorID == "" || op.OperatorName == "" || op.OperatorType == "" || op.State == "" {
			n++
		}
	}
	r.add("operator_required_fields", SeverityHard, n, "")

	n = 0
	for _, o := range ds.Opportunities {
		if o.OpportunityID == "" || o.Stage == "" || o.Amount.IsZero() {
			n++
		}
		if o.Stage == model.StageClosedLost && o.LossReason == "" {
			n++
		}
	}
	r.add("opportunity_required_fields", SeverityHard, n, "")

	n = 0
	for _, s := range ds.Shipments {
		if s.ShipmentID == 0 || s.WeekEnding.IsZero() || s.Quantity < 1 {
			n++
		}
	}
	r.add("shipment_required_fields", SeverityHard, n, "")
}

func checkTemporal(r *Report, cfg *config.Config, ds *model.Dataset) {
	start, end := cfg.HorizonStart(), cfg.HorizonEnd()
	inHorizon := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}

	n := 0
	for _, s := range ds.Shipments {
		if !inHorizon(s.WeekEnding) || s.WeekEnding.Weekday() != time.Saturday {
			n++
		}
		if !inHorizon(s.ShipmentDate) || s.ShipmentDate.After(s.WeekEnding) {
			n++
		}
	}
	r.add("shipment_dates", SeverityHard, n, "")

	n = 0
	for _, o := range ds.Opportunities {
		if !inHorizon(o.CreatedDate) {
			n++
		}
		if o.HasCloseDate && o.CloseDate.Before(o.CreatedDate.AddDate(0, 0, -1)) {
			n++
		}
	}
	r.add("opportunity_dates", SeverityHard, n, "")

	n = 0
	for _, a := range ds.Accounts {
		if !inHorizon(a.CreatedDate) {
			n++
		}
		if a.LastActivityDate.Before(a.CreatedDate) || a.LastActivityDate.After(end) {
			n++
		}
	}
	r.add("account_dates", SeverityHard, n, "")
}

func checkBusinessRules(r *Report, cfg *config.Config, ds *model.Dataset) {
	n := 0
	for _, s := range ds.Shipments {
		if s.NetRevenue.IsNegative() || s.NetRevenue.GreaterThan(s.GrossRevenue) || s.COGS.IsNegative() {
			n++
		}
	}
	r.add("shipment_financials", SeverityHard, n, "net in [0, gross], cogs >= 0")

	clampMin := decimal.NewFromFloat(cfg.CRM.DealClampMin)
	clampMax := decimal.NewFromFloat(cfg.CRM.DealClampMax)
	n = 0
	for _, o := range ds.Opportunities {
		if o.Amount.LessThan(clampMin) || o.Amount.GreaterThan(clampMax) {
			n++
		}
		if o.Stage == model.StageClosedWon && o.Probability != 100 {
			n++
		}
		if o.Stage == model.StageClosedLost && (o.Probability != 0 || o.LossReason == "") {
			n++
		}
	}
	r.add("opportunity_rules", SeverityHard, n, "")
}

func checkWinRate(r *Report, ds *model.Dataset) {
	won, closed := 0, 0
	for _, o := range ds.Opportunities {
		if o.Stage.Closed() {
			closed++
			if o.Stage == model.StageClosedWon {
				won++
			}
		}
	}
	if closed == 0 {
		r.add("win_rate_band", SeveritySoft, 0, "no closed opportunities")
		return
	}
	rate := 100 * float64(won) / float64(closed)
	violations := 0
	if rate < 30 || rate > 70 {
		violations = 1
	}
	r.add("win_rate_band", SeveritySoft, violations,
		fmt.Sprintf("aggregate win rate %.1f%% (expected 30-70%%)", rate))
}
