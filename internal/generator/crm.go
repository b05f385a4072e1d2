package generator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

var lossReasons = []string{
	"Price", "Competitor", "No Decision", "Budget Constraints",
	"Changed Requirements", "Poor Fit", "Timing",
}

var competitors = []string{
	"Sysco", "US Foods", "Performance Food Group", "Gordon Food Service",
	"Regional Competitor", "Local Supplier", "Direct from Manufacturer",
}

var leadSources = []string{
	"Trade Show", "Referral", "Cold Call", "Website", "Partner",
	"LinkedIn", "Industry Event", "Existing Customer",
}

var activityOutcomes = []string{
	"Connected", "Left Voicemail", "No Answer", "Completed",
	"Rescheduled", "Cancelled",
}

var activityTypePool = []model.ActivityType{
	model.ActivityCall, model.ActivityEmail, model.ActivityMeeting,
	model.ActivityDemo, model.ActivitySiteVisit,
}

var activityTypeWeights = []float64{0.30, 0.35, 0.15, 0.10, 0.10}

// stageDays is the expected dwell time per open stage, used to derive close
// dates for closed deals.
var stageDays = map[model.Stage]int{
	model.StageProspecting:   14,
	model.StageQualification: 21,
	model.StageProposal:      21,
	model.StageNegotiation:   14,
}

// GenerateAccounts creates CRM accounts for roughly the configured fraction
// of operators. Account type skews toward Customer for Large and Enterprise
// operators. Account owners are always individual contributors.
func GenerateAccounts(f *datagen.Faker, cfg *config.Config, operators []model.Operator, reps []model.SalesRep) []model.Account {
	var icReps []string
	for _, r := range reps {
		if r.RepTier != model.RepDirector {
			icReps = append(icReps, r.RepID)
		}
	}

	out := make([]model.Account, 0, int(float64(len(operators))*cfg.CRM.AccountCoverage))
	for _, op := range operators {
		if !f.Percent(cfg.CRM.AccountCoverage) {
			continue
		}
		var accountType model.AccountType
		if op.RevenueTier == model.TierLarge || op.RevenueTier == model.TierEnterprise {
			accountType = datagen.WeightedChoose(f,
				[]model.AccountType{model.AccountCustomer, model.AccountProspect},
				[]float64{0.9, 0.1})
		} else {
			accountType = datagen.WeightedChoose(f,
				[]model.AccountType{model.AccountCustomer, model.AccountProspect, model.AccountFormer},
				[]float64{0.4, 0.4, 0.2})
		}

		createdFloor := op.OpenedDate
		if createdFloor.Before(cfg.HorizonStart()) {
			createdFloor = cfg.HorizonStart()
		}
		createdCeil := cfg.HorizonEnd().AddDate(0, -6, 0)
		if !createdFloor.Before(createdCeil) {
			createdCeil = cfg.HorizonEnd()
		}

		created := f.DateBetween(createdFloor, createdCeil)
		status := model.AccountActive
		if accountType == model.AccountFormer {
			status = model.AccountChurned
		}
		out = append(out, model.Account{
			AccountID:        "ACC-" + op.OperatorID[len("OP-"):],
			OperatorID:       op.OperatorID,
			AccountName:      op.OperatorName,
			AccountType:      accountType,
			OwnerRepID:       datagen.Choose(f, icReps),
			TerritoryID:      op.TerritoryID,
			CreatedDate:      created,
			LastActivityDate: f.DateBetween(created, cfg.HorizonEnd()),
			Status:           status,
		})
	}
	return out
}

// winRate resolves the closed-deal win probability for an account type.
func winRate(cfg *config.Config, t model.AccountType) float64 {
	switch t {
	case model.AccountCustomer:
		return cfg.CRM.WinRateCustomer
	case model.AccountProspect:
		return cfg.CRM.WinRateProspect
	default:
		return cfg.CRM.WinRateFormer
	}
}

// dealAmount draws the opportunity value: lognormal base, an extra
// multiplier for Enterprise operators, then the clamp. Clamping is the last
// step so the multiplier cannot push a deal outside the allowed band.
func dealAmount(f *datagen.Faker, cfg *config.Config, tier model.RevenueTier) decimal.Decimal {
	amount := f.LogNormal(cfg.CRM.DealLogMean, cfg.CRM.DealLogSigma)
	if tier == model.TierEnterprise {
		amount *= f.Float64Range(cfg.CRM.EnterpriseMultiplierMin, cfg.CRM.EnterpriseMultiplierMax)
	}
	if amount < cfg.CRM.DealClampMin {
		amount = cfg.CRM.DealClampMin
	}
	if amount > cfg.CRM.DealClampMax {
		amount = cfg.CRM.DealClampMax
	}
	return decimal.NewFromFloat(amount).Round(2)
}

// GenerateOpportunities creates deals per account. Volume scales with
// account age and type; older deals close, recent ones stay in an open
// stage. Accounts whose operator cannot be resolved are dropped and counted.
func GenerateOpportunities(f *datagen.Faker, cfg *config.Config, accounts []model.Account, operators []model.Operator, stats *Stats) []model.Opportunity {
	opByID := make(map[string]model.Operator, len(operators))
	for _, op := range operators {
		opByID[op.OperatorID] = op
	}

	categories := make([]string, 0, len(productCatalog))
	seen := make(map[string]bool)
	for _, g := range productCatalog {
		if !seen[g.category] {
			seen[g.category] = true
			categories = append(categories, g.category)
		}
	}

	var out []model.Opportunity
	id := 1
	for _, acc := range accounts {
		op, ok := opByID[acc.OperatorID]
		if !ok {
			stats.CountSkip("opportunity_unresolved_operator")
			continue
		}

		yearsActive := cfg.HorizonEnd().Sub(acc.CreatedDate).Hours() / 24 / 365
		var perYear float64
		switch acc.AccountType {
		case model.AccountCustomer:
			perYear = f.Float64Range(3, 8)
		case model.AccountProspect:
			perYear = f.Float64Range(1, 3)
			if yearsActive > 2 {
				yearsActive = 2
			}
		default:
			perYear = f.Float64Range(1, 2)
			if yearsActive > 1 {
				yearsActive = 1
			}
		}
		n := int(perYear * yearsActive)
		if n < 1 {
			n = 1
		}
		if n > cfg.CRM.MaxOpportunitiesPerAccount {
			n = cfg.CRM.MaxOpportunitiesPerAccount
		}

		for i := 0; i < n; i++ {
			created := f.DateBetween(acc.CreatedDate, cfg.HorizonEnd().AddDate(0, -1, 0))

			age := int(cfg.HorizonEnd().Sub(created).Hours() / 24)
			closed := age > f.IntRange(30, 180)

			var stage model.Stage
			if closed {
				if f.Percent(winRate(cfg, acc.AccountType)) {
					stage = model.StageClosedWon
				} else {
					stage = model.StageClosedLost
				}
			} else {
				stage = datagen.Choose(f, model.OpenStages)
			}

			opp := model.Opportunity{
				OpportunityID: fmt.Sprintf("OPP-%07d", id),
				AccountID:     acc.AccountID,
				OwnerRepID:    acc.OwnerRepID,
				Name:          acc.AccountName + " - " + datagen.Choose(f, categories) + " Deal",
				Stage:         stage,
				Amount:        dealAmount(f, cfg, op.RevenueTier),
				Probability:   stage.WinProbability(),
				CreatedDate:   created,
				LeadSource:    datagen.Choose(f, leadSources),
				ProductFocus:  datagen.Choose(f, categories),
			}
			if closed {
				days := 0
				for _, s := range model.OpenStages {
					days += stageDays[s]
				}
				days += f.IntRange(-14, 30)
				if days < 7 {
					days = 7
				}
				close := created.AddDate(0, 0, days)
				if close.After(cfg.HorizonEnd()) {
					close = cfg.HorizonEnd()
				}
				opp.CloseDate = close
				opp.HasCloseDate = true
			}
			if stage == model.StageClosedLost {
				opp.LossReason = datagen.Choose(f, lossReasons)
				opp.Competitor = datagen.Choose(f, competitors)
			}
			if !stage.Closed() && f.Percent(0.7) {
				opp.NextSteps = f.Subject(4)
			}
			out = append(out, opp)
			id++
		}
	}
	return out
}

// activityDuration draws a plausible duration in minutes for the type.
func activityDuration(f *datagen.Faker, t model.ActivityType) int {
	switch t {
	case model.ActivityCall:
		return f.IntRange(5, 45)
	case model.ActivityEmail:
		return f.IntRange(2, 15)
	case model.ActivityMeeting:
		return f.IntRange(30, 120)
	case model.ActivityDemo:
		return f.IntRange(45, 90)
	default:
		return f.IntRange(60, 180)
	}
}

// GenerateActivities creates touchpoints per opportunity, with volume
// proportional to deal size and outcome, plus standalone check-ins for a
// fraction of accounts.
func GenerateActivities(f *datagen.Faker, cfg *config.Config, accounts []model.Account, opportunities []model.Opportunity) []model.Activity {
	var out []model.Activity
	id := 1

	for _, opp := range opportunities {
		amt, _ := opp.Amount.Float64()
		base := int(amt / 10000)
		if base < 3 {
			base = 3
		}
		var n int
		switch opp.Stage {
		case model.StageClosedWon:
			n = int(float64(base) * f.Float64Range(1.5, 2.5))
		case model.StageClosedLost:
			n = int(float64(base) * f.Float64Range(0.5, 1.0))
		default:
			n = int(float64(base) * f.Float64Range(0.8, 1.5))
		}
		if n < 1 {
			n = 1
		}
		if n > cfg.CRM.MaxActivitiesPerOpportunity {
			n = cfg.CRM.MaxActivitiesPerOpportunity
		}

		end := cfg.HorizonEnd()
		if opp.HasCloseDate && opp.CloseDate.Before(end) {
			end = opp.CloseDate
		}
		for i := 0; i < n; i++ {
			atype := datagen.WeightedChoose(f, activityTypePool, activityTypeWeights)
			out = append(out, model.Activity{
				ActivityID:    fmt.Sprintf("ACT-%08d", id),
				AccountID:     opp.AccountID,
				OpportunityID: opp.OpportunityID,
				RepID:         opp.OwnerRepID,
				ActivityType:  atype,
				ActivityDate:  f.DateBetween(opp.CreatedDate, end),
				DurationMin:   activityDuration(f, atype),
				Subject:       string(atype) + ": " + f.Subject(3),
				Outcome:       datagen.Choose(f, activityOutcomes),
			})
			id++
		}
	}

	for _, acc := range accounts {
		if !f.Percent(cfg.CRM.StandaloneActivityRate) {
			continue
		}
		for i, n := 0, f.IntRange(1, 5); i < n; i++ {
			atype := datagen.Choose(f, activityTypePool)
			out = append(out, model.Activity{
				ActivityID:   fmt.Sprintf("ACT-%08d", id),
				AccountID:    acc.AccountID,
				RepID:        acc.OwnerRepID,
				ActivityType: atype,
				ActivityDate: f.DateBetween(acc.CreatedDate, cfg.HorizonEnd()),
				DurationMin:  f.IntRange(5, 60),
				Subject:      string(atype) + ": General check-in",
				Outcome:      datagen.Choose(f, activityOutcomes),
			})
			id++
		}
	}
	return out
}
