package generator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

func buildCRM(t *testing.T) (*testFixture, []model.Account, []model.Opportunity, []model.Activity) {
	t.Helper()
	fx := newFixture(t)
	f := datagen.New(fx.cfg.Seed)
	accounts := GenerateAccounts(f.Fork("accounts"), fx.cfg, fx.operators, fx.reps)
	opportunities := GenerateOpportunities(f.Fork("opps"), fx.cfg, accounts, fx.operators, NewStats())
	activities := GenerateActivities(f.Fork("acts"), fx.cfg, accounts, opportunities)
	return fx, accounts, opportunities, activities
}

func TestAccountsCoverOperatorFraction(t *testing.T) {
	fx, accounts, _, _ := buildCRM(t)

	ratio := float64(len(accounts)) / float64(len(fx.operators))
	assert.InDelta(t, fx.cfg.CRM.AccountCoverage, ratio, 0.15)

	opByID := map[string]model.Operator{}
	for _, op := range fx.operators {
		opByID[op.OperatorID] = op
	}
	repByID := map[string]model.SalesRep{}
	for _, r := range fx.reps {
		repByID[r.RepID] = r
	}
	for _, acc := range accounts {
		op, ok := opByID[acc.OperatorID]
		require.True(t, ok, "account %s operator unresolvable", acc.AccountID)
		assert.False(t, acc.CreatedDate.After(fx.cfg.HorizonEnd()))
		assert.False(t, acc.CreatedDate.Before(fx.cfg.HorizonStart()))
		if op.OpenedDate.After(fx.cfg.HorizonStart()) {
			assert.False(t, acc.CreatedDate.Before(op.OpenedDate),
				"account %s created before operator opened", acc.AccountID)
		}
		owner, ok := repByID[acc.OwnerRepID]
		require.True(t, ok)
		assert.NotEqual(t, model.RepDirector, owner.RepTier, "directors do not own accounts")

		assert.False(t, acc.LastActivityDate.Before(acc.CreatedDate),
			"account %s last activity predates creation", acc.AccountID)
		assert.False(t, acc.LastActivityDate.After(fx.cfg.HorizonEnd()))
		if acc.AccountType == model.AccountFormer {
			assert.Equal(t, model.AccountChurned, acc.Status)
		} else {
			assert.Equal(t, model.AccountActive, acc.Status)
		}
	}
}

func TestOpportunityInvariants(t *testing.T) {
	fx, _, opportunities, _ := buildCRM(t)
	require.NotEmpty(t, opportunities)

	clampMin := decimal.NewFromFloat(fx.cfg.CRM.DealClampMin)
	clampMax := decimal.NewFromFloat(fx.cfg.CRM.DealClampMax)
	perAccount := map[string]int{}

	for _, o := range opportunities {
		perAccount[o.AccountID]++

		assert.False(t, o.Amount.LessThan(clampMin), "%s below clamp: %s", o.OpportunityID, o.Amount)
		assert.False(t, o.Amount.GreaterThan(clampMax), "%s above clamp: %s", o.OpportunityID, o.Amount)
		assert.Equal(t, o.Stage.WinProbability(), o.Probability)
		assert.NotEmpty(t, o.LeadSource)

		switch o.Stage {
		case model.StageClosedWon:
			assert.Equal(t, 100, o.Probability)
			assert.True(t, o.HasCloseDate)
			assert.Empty(t, o.LossReason)
		case model.StageClosedLost:
			assert.Equal(t, 0, o.Probability)
			assert.True(t, o.HasCloseDate)
			assert.NotEmpty(t, o.LossReason, "%s closed lost without loss reason", o.OpportunityID)
			assert.NotEmpty(t, o.Competitor)
		default:
			assert.False(t, o.HasCloseDate)
			assert.Empty(t, o.LossReason)
		}
		if o.HasCloseDate {
			assert.False(t, o.CloseDate.After(fx.cfg.HorizonEnd()))
		}
	}

	for acc, n := range perAccount {
		assert.LessOrEqual(t, n, fx.cfg.CRM.MaxOpportunitiesPerAccount, "account %s", acc)
	}
}

func TestStageProbabilityMonotone(t *testing.T) {
	stages := model.OpenStages
	for i := 1; i < len(stages); i++ {
		assert.Greater(t, stages[i].WinProbability(), stages[i-1].WinProbability())
	}
	assert.Equal(t, 100, model.StageClosedWon.WinProbability())
	assert.Equal(t, 0, model.StageClosedLost.WinProbability())
}

func TestAggregateWinRateBand(t *testing.T) {
	_, _, opportunities, _ := buildCRM(t)

	won, closed := 0, 0
	for _, o := range opportunities {
		if o.Stage.Closed() {
			closed++
			if o.Stage == model.StageClosedWon {
				won++
			}
		}
	}
	require.Greater(t, closed, 50)
	rate := float64(won) / float64(closed)
	assert.Greater(t, rate, 0.30)
	assert.Less(t, rate, 0.70)
}

func TestActivities(t *testing.T) {
	fx, accounts, opportunities, activities := buildCRM(t)
	require.NotEmpty(t, activities)

	accByID := map[string]bool{}
	for _, a := range accounts {
		accByID[a.AccountID] = true
	}
	oppByID := map[string]model.Opportunity{}
	for _, o := range opportunities {
		oppByID[o.OpportunityID] = o
	}

	perOpp := map[string]int{}
	standalone := 0
	for _, act := range activities {
		assert.True(t, accByID[act.AccountID])
		assert.Positive(t, act.DurationMin)
		assert.NotEmpty(t, act.Outcome)
		if act.OpportunityID == "" {
			standalone++
			continue
		}
		opp, ok := oppByID[act.OpportunityID]
		require.True(t, ok, "activity %s opportunity unresolvable", act.ActivityID)
		assert.False(t, act.ActivityDate.Before(opp.CreatedDate))
		perOpp[act.OpportunityID]++
	}
	assert.Positive(t, standalone, "expected standalone check-in activities")
	for opp, n := range perOpp {
		assert.LessOrEqual(t, n, fx.cfg.CRM.MaxActivitiesPerOpportunity, "opportunity %s", opp)
	}
}
