package statetax

import "github.com/ziziou272/taxlens/internal/domain"

// NoIncomeTax is the stub for states with no personal income tax.
type NoIncomeTax struct {
	State domain.StateCode
}

func (m NoIncomeTax) Code() domain.StateCode { return m.State }

func (m NoIncomeTax) Compute(p *domain.TaxProfile, income StateIncome, year *domain.TaxYear) (domain.StateTaxResult, error) {
	return domain.StateTaxResult{
		State:             m.State,
		ApportionedIncome: income.Total(),
	}, nil
}
