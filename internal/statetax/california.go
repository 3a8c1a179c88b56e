package statetax

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// California applies the nine progressive brackets, the 1% mental-health
// surtax on taxable income above $1M (additive, not bracket-integrated), and
// SDI as a separate payroll-style line. California taxes capital gains as
// ordinary income.
type California struct{}

func (California) Code() domain.StateCode { return domain.StateCA }

func (California) Compute(p *domain.TaxProfile, income StateIncome, year *domain.TaxYear) (domain.StateTaxResult, error) {
	params := year.States

	taxable := income.Total().Sub(params.CaliforniaStandardDeduction[p.FilingStatus])
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	incomeTax := progressiveTax(params.CaliforniaBrackets[p.FilingStatus], taxable)

	surtax := decimal.Zero
	if taxable.GreaterThan(params.CAMentalHealthThreshold) {
		surtax = taxable.Sub(params.CAMentalHealthThreshold).Mul(params.CAMentalHealthRate)
	}

	sdi := income.Wages.Mul(params.CASDIRate)

	return domain.StateTaxResult{
		State:             domain.StateCA,
		ApportionedIncome: income.Total(),
		IncomeTax:         incomeTax,
		Surtax:            surtax,
		PayrollTax:        sdi,
		Total:             incomeTax.Add(surtax).Add(sdi),
	}, nil
}
