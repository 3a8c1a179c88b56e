package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// NIITCalculator computes the 3.8% Net Investment Income Tax.
type NIITCalculator struct {
	Year *domain.TaxYear
}

// NewNIITCalculator creates a NIIT calculator for one tax year.
func NewNIITCalculator(year *domain.TaxYear) *NIITCalculator {
	return &NIITCalculator{Year: year}
}

// Calculate returns rate × lesser of (net investment income) and
// (MAGI − threshold), with both operands floored at zero.
func (c *NIITCalculator) Calculate(investmentIncome, magi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	nii := decimal.Max(investmentIncome, decimal.Zero)
	excess := decimal.Max(magi.Sub(c.Year.NIIT.Threshold[status]), decimal.Zero)
	base := decimal.Min(nii, excess)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(c.Year.NIIT.Rate)
}
