package whatif

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziziou272/taxlens/internal/calculation"
	"github.com/ziziou272/taxlens/internal/domain"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func isoProfile(shares int64) *domain.TaxProfile {
	return &domain.TaxProfile{
		FilingStatus: domain.FilingSingle,
		Wages:        decimal.NewFromInt(300000),
		PlannedISOExercise: &domain.OptionExercise{
			Type:          domain.GrantISO,
			GrantDate:     day(2022, 1, 1),
			ExerciseDate:  day(2025, 9, 1),
			Shares:        decimal.NewFromInt(shares),
			ExercisePrice: decimal.NewFromInt(10),
			FMV:           decimal.NewFromInt(210),
		},
	}
}

func TestFindOptimalISOExerciseZeroBudget(t *testing.T) {
	calc := calculation.NewCalculationEngine()
	profile := isoProfile(1000)

	result, err := FindOptimalISOExercise(calc, profile, domain.TaxYear2025(), ISOOptimizerConfig{})
	require.NoError(t, err)

	assert.True(t, result.Converged, "search should converge within the iteration cap")
	assert.True(t, result.AMT.IsZero(), "zero budget means no AMT at the chosen size, got %s", result.AMT)
	assert.True(t, result.Shares.IsPositive(), "some shares are always exercisable before AMT starts")
	assert.True(t, result.Shares.LessThan(decimal.NewFromInt(1000)),
		"the full 200k bargain element triggers AMT, so the answer is a partial exercise")

	// One more tolerance step of shares must break the budget.
	over := profile.Clone()
	over.PlannedISOExercise = nil
	bigger := result.Shares.Add(decimal.NewFromInt(2))
	over.ISOBargainElement = bigger.Mul(decimal.NewFromInt(200))
	summary, err := calc.Calculate(over, domain.TaxYear2025())
	require.NoError(t, err)
	assert.True(t, summary.AMT.IsPositive(),
		"exercising beyond the optimum should trigger AMT")
}

func TestFindOptimalISOExerciseWithBudget(t *testing.T) {
	calc := calculation.NewCalculationEngine()
	profile := isoProfile(1000)

	zero, err := FindOptimalISOExercise(calc, profile, domain.TaxYear2025(), ISOOptimizerConfig{})
	require.NoError(t, err)
	budgeted, err := FindOptimalISOExercise(calc, profile, domain.TaxYear2025(), ISOOptimizerConfig{
		AMTBudget: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	assert.True(t, budgeted.Shares.GreaterThan(zero.Shares),
		"an AMT budget buys more shares: %s vs %s", budgeted.Shares, zero.Shares)
	assert.True(t, budgeted.AMT.LessThanOrEqual(decimal.NewFromInt(10000)),
		"AMT %s exceeds the budget", budgeted.AMT)
}

func TestFindOptimalISOExerciseFullWithinBudget(t *testing.T) {
	calc := calculation.NewCalculationEngine()
	// A tiny grant whose full bargain element never reaches AMT territory.
	profile := isoProfile(50)

	result, err := FindOptimalISOExercise(calc, profile, domain.TaxYear2025(), ISOOptimizerConfig{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(result.Shares), "full exercise fits: %s", result.Shares)
	assert.True(t, result.Converged)
	assert.Equal(t, 0, result.Iterations, "no search needed when the full grant fits")
}

func TestFindOptimalISOExerciseRequiresPlan(t *testing.T) {
	calc := calculation.NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus: domain.FilingSingle,
		Wages:        decimal.NewFromInt(300000),
	}

	_, err := FindOptimalISOExercise(calc, profile, domain.TaxYear2025(), ISOOptimizerConfig{})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
