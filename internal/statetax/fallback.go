package statetax

import "github.com/ziziou272/taxlens/internal/domain"

// Fallback estimates tax for states without a dedicated module using a flat
// approximate rate. Results are flagged low-confidence.
type Fallback struct {
	State domain.StateCode
}

func (m Fallback) Code() domain.StateCode { return m.State }

func (m Fallback) Compute(p *domain.TaxProfile, income StateIncome, year *domain.TaxYear) (domain.StateTaxResult, error) {
	tax := income.Total().Mul(year.States.FallbackRate)
	return domain.StateTaxResult{
		State:             m.State,
		ApportionedIncome: income.Total(),
		IncomeTax:         tax,
		Total:             tax,
		Estimated:         true,
		Note:              "flat-rate estimate; no dedicated module for this state",
	}, nil
}
