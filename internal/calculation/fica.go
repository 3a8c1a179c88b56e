package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// FICAResult breaks payroll tax into its components.
type FICAResult struct {
	SocialSecurity     decimal.Decimal
	Medicare           decimal.Decimal
	AdditionalMedicare decimal.Decimal
}

// Total sums the three components.
func (r FICAResult) Total() decimal.Decimal {
	return r.SocialSecurity.Add(r.Medicare).Add(r.AdditionalMedicare)
}

// FICACalculator computes Social Security and Medicare payroll taxes.
// RSU vesting income and NSO/ESPP ordinary income are wage income here;
// capital gains and dividends are not.
type FICACalculator struct {
	Year *domain.TaxYear
}

// NewFICACalculator creates a FICA calculator for one tax year.
func NewFICACalculator(year *domain.TaxYear) *FICACalculator {
	return &FICACalculator{Year: year}
}

// Calculate computes FICA on total wage income: 6.2% Social Security up to
// the wage base, 1.45% Medicare on everything, and 0.9% Additional Medicare
// (uncapped) on wages above the filing-status threshold.
func (c *FICACalculator) Calculate(wages decimal.Decimal, status domain.FilingStatus) FICAResult {
	if wages.LessThanOrEqual(decimal.Zero) {
		return FICAResult{}
	}
	p := c.Year.FICA

	ssBase := decimal.Min(wages, p.SocialSecurityWageBase)
	result := FICAResult{
		SocialSecurity: ssBase.Mul(p.SocialSecurityRate),
		Medicare:       wages.Mul(p.MedicareRate),
	}

	threshold := p.AdditionalMedicareThreshold[status]
	if wages.GreaterThan(threshold) {
		result.AdditionalMedicare = wages.Sub(threshold).Mul(p.AdditionalMedicareRate)
	}
	return result
}
