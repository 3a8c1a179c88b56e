// Package whatif evaluates alternative tax scenarios against a baseline
// profile. Generators build alternatives by cloning and perturbing the
// baseline; the engine scores each one with the same calculation pipeline and
// reports signed deltas.
package whatif

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/calculation"
	"github.com/ziziou272/taxlens/internal/domain"
)

// Engine evaluates scenario batches. It owns no state beyond the calculator,
// so the same engine can score independent batches concurrently.
type Engine struct {
	calc *calculation.CalculationEngine
}

// NewEngine creates a scenario engine around a calculation engine.
func NewEngine(calc *calculation.CalculationEngine) *Engine {
	if calc == nil {
		calc = calculation.NewCalculationEngine()
	}
	return &Engine{calc: calc}
}

// CompareAll scores the baseline and every alternative under the same year's
// parameters. Each comparison's delta is alternative total tax minus baseline
// total tax. Best names the lowest-total-tax scenario among the baseline and
// all alternatives; ties keep the earliest submission, with the baseline
// considered first. A scenario whose profile fails validation fails the whole
// batch so partial comparisons are never reported.
func (e *Engine) CompareAll(baseline *domain.TaxProfile, alternatives []domain.Scenario, year *domain.TaxYear) (*domain.ComparisonSet, error) {
	baseSummary, err := e.calc.Calculate(baseline, year)
	if err != nil {
		return nil, err
	}

	set := &domain.ComparisonSet{
		BaselineSummary: baseSummary,
		Comparisons:     make([]domain.ScenarioComparison, 0, len(alternatives)),
		Best:            "baseline",
		BestTotalTax:    baseSummary.TotalTax,
	}

	for i := range alternatives {
		sc := &alternatives[i]
		altSummary, err := e.calc.Calculate(&sc.Profile, year)
		if err != nil {
			return nil, domain.NewValidationError("scenario "+sc.Name, err.Error())
		}
		set.Comparisons = append(set.Comparisons, domain.ScenarioComparison{
			Name:        sc.Name,
			Description: sc.Description,
			Baseline:    baseSummary,
			Alternative: altSummary,
			Delta:       altSummary.TotalTax.Sub(baseSummary.TotalTax),
		})
		if altSummary.TotalTax.LessThan(set.BestTotalTax) {
			set.Best = sc.Name
			set.BestTotalTax = altSummary.TotalTax
		}
	}
	return set, nil
}

// Savings returns the positive saving of the best alternative over the
// baseline, zero when the baseline already wins.
func Savings(set *domain.ComparisonSet) decimal.Decimal {
	saving := set.BaselineSummary.TotalTax.Sub(set.BestTotalTax)
	if saving.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return saving
}
