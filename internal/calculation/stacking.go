package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// CapitalGainsTax computes tax on long-term gains and qualified dividends by
// stacking them on top of ordinary taxable income: each preferential dollar
// is taxed at the rate of the 0/15/20% segment it lands in on the combined
// ladder, starting where ordinary income ends. Short-term gains never come
// through here; they are folded into ordinary income before bracket
// evaluation.
func (c *FederalTaxCalculator) CapitalGainsTax(ordinaryTaxable, preferential decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if preferential.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if ordinaryTaxable.LessThan(decimal.Zero) {
		ordinaryTaxable = decimal.Zero
	}

	top := ordinaryTaxable.Add(preferential)
	tax := decimal.Zero
	for _, b := range c.Year.CapitalGainsBrackets[status] {
		segStart := decimal.Max(b.Min, ordinaryTaxable)
		segEnd := decimal.Min(b.Max, top)
		if segEnd.GreaterThan(segStart) {
			tax = tax.Add(segEnd.Sub(segStart).Mul(b.Rate))
		}
	}
	return tax
}
