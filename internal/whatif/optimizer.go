package whatif

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/calculation"
	"github.com/ziziou272/taxlens/internal/domain"
)

// defaultMaxIterations bounds the binary search; 48 halvings resolve any
// realistic share count well below one share.
const defaultMaxIterations = 48

// ISOOptimizerConfig tunes the exercise-size search.
type ISOOptimizerConfig struct {
	// AMTBudget is the most additional AMT the taxpayer will accept this
	// year. Zero finds the largest exercise that triggers no AMT at all.
	AMTBudget decimal.Decimal

	// Tolerance is the share-count resolution of the search. Defaults to
	// one share.
	Tolerance decimal.Decimal

	MaxIterations int
}

// ISOOptimizerResult reports the largest exercise found within the budget.
type ISOOptimizerResult struct {
	Shares         decimal.Decimal `json:"shares"`
	BargainElement decimal.Decimal `json:"bargainElement"`
	AMT            decimal.Decimal `json:"amt"`
	TotalTax       decimal.Decimal `json:"totalTax"`

	Summary    *domain.TaxSummary `json:"summary"`
	Iterations int                `json:"iterations"`
	Converged  bool               `json:"converged"`
}

// FindOptimalISOExercise binary-searches the share count of the profile's
// planned ISO exercise for the largest exercise whose incremental AMT stays
// within the budget. AMT grows monotonically with the bargain element, so the
// feasible counts form a prefix of [0, planned shares] and bisection applies.
// It fails with a ValidationError when the profile has no planned ISO
// exercise.
func FindOptimalISOExercise(calc *calculation.CalculationEngine, p *domain.TaxProfile, year *domain.TaxYear, cfg ISOOptimizerConfig) (*ISOOptimizerResult, error) {
	planned := p.PlannedISOExercise
	if planned == nil || planned.Type != domain.GrantISO {
		return nil, domain.NewValidationError("planned_iso_exercise", "profile has no planned ISO exercise to optimize")
	}
	if calc == nil {
		calc = calculation.NewCalculationEngine()
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.Tolerance.LessThanOrEqual(decimal.Zero) {
		cfg.Tolerance = decimal.NewFromInt(1)
	}

	baseSummary, err := evaluateExercise(calc, p, year, decimal.Zero)
	if err != nil {
		return nil, err
	}
	baseAMT := baseSummary.AMT

	amtCost := func(s *domain.TaxSummary) decimal.Decimal {
		return s.AMT.Sub(baseAMT)
	}

	// Full exercise within budget needs no search.
	fullSummary, err := evaluateExercise(calc, p, year, planned.Shares)
	if err != nil {
		return nil, err
	}
	if amtCost(fullSummary).LessThanOrEqual(cfg.AMTBudget) {
		return resultFor(planned, planned.Shares, fullSummary, 0, true), nil
	}

	lo := decimal.Zero // largest known-feasible count
	hi := planned.Shares
	best := baseSummary
	iterations := 0

	for i := 0; i < cfg.MaxIterations; i++ {
		if hi.Sub(lo).LessThanOrEqual(cfg.Tolerance) {
			break
		}
		iterations++
		mid := lo.Add(hi).Div(decimal.NewFromInt(2)).Floor()
		if mid.LessThanOrEqual(lo) {
			break
		}

		summary, err := evaluateExercise(calc, p, year, mid)
		if err != nil {
			return nil, err
		}
		if amtCost(summary).LessThanOrEqual(cfg.AMTBudget) {
			lo = mid
			best = summary
		} else {
			hi = mid
		}
	}

	converged := hi.Sub(lo).LessThanOrEqual(cfg.Tolerance)
	return resultFor(planned, lo, best, iterations, converged), nil
}

func evaluateExercise(calc *calculation.CalculationEngine, p *domain.TaxProfile, year *domain.TaxYear, shares decimal.Decimal) (*domain.TaxSummary, error) {
	ex := *p.PlannedISOExercise
	ex.Shares = shares

	modeled := p.Clone()
	modeled.PlannedISOExercise = nil
	modeled.ISOBargainElement = modeled.ISOBargainElement.Add(ex.BargainElement())
	return calc.Calculate(modeled, year)
}

func resultFor(planned *domain.OptionExercise, shares decimal.Decimal, summary *domain.TaxSummary, iterations int, converged bool) *ISOOptimizerResult {
	ex := *planned
	ex.Shares = shares
	return &ISOOptimizerResult{
		Shares:         shares,
		BargainElement: ex.BargainElement(),
		AMT:            summary.AMT,
		TotalTax:       summary.TotalTax,
		Summary:        summary,
		Iterations:     iterations,
		Converged:      converged,
	}
}
