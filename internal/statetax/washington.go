package statetax

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// Washington has no wage income tax. A flat-rate excise applies only to
// long-term capital gains above the annually indexed exemption; short-term
// gains and ordinary income are entirely outside this tax.
type Washington struct{}

func (Washington) Code() domain.StateCode { return domain.StateWA }

func (Washington) Compute(p *domain.TaxProfile, income StateIncome, year *domain.TaxYear) (domain.StateTaxResult, error) {
	params := year.States

	taxableGains := income.LongTermGains.Sub(params.WACapitalGainsExemption)
	excise := decimal.Zero
	if taxableGains.GreaterThan(decimal.Zero) {
		excise = taxableGains.Mul(params.WACapitalGainsRate)
	}

	return domain.StateTaxResult{
		State:             domain.StateWA,
		ApportionedIncome: income.Total(),
		IncomeTax:         excise,
		Total:             excise,
		Note:              "capital gains excise on long-term gains above exemption",
	}, nil
}
