package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// FederalTaxCalculator evaluates ordinary federal income tax against a
// year's progressive bracket ladder.
type FederalTaxCalculator struct {
	Year *domain.TaxYear
}

// NewFederalTaxCalculator creates a federal calculator for one tax year.
func NewFederalTaxCalculator(year *domain.TaxYear) *FederalTaxCalculator {
	return &FederalTaxCalculator{Year: year}
}

// Deduction returns the greater of the caller-supplied itemized total (already
// capped by the caller) and the standard deduction for the filing status.
func (c *FederalTaxCalculator) Deduction(p *domain.TaxProfile) decimal.Decimal {
	standard := c.Year.StandardDeduction[p.FilingStatus]
	return decimal.Max(standard, p.ItemizedDeductions)
}

// OrdinaryTax computes tax on ordinary taxable income by summing each
// bracket's span at its rate. Ladders are contiguous, so the tax at a bracket
// edge is identical whether the edge is treated as the top of one bracket or
// the bottom of the next.
func (c *FederalTaxCalculator) OrdinaryTax(taxable decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return bracketTax(c.Year.OrdinaryBrackets[status], taxable)
}

// MarginalRate returns the rate of the bracket containing the last dollar of
// ordinary taxable income.
func (c *FederalTaxCalculator) MarginalRate(taxable decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	brackets := c.Year.OrdinaryBrackets[status]
	if len(brackets) == 0 || taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for _, b := range brackets {
		if taxable.LessThanOrEqual(b.Max) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// bracketTax walks a contiguous ladder, taxing the span of income inside
// each bracket at that bracket's rate.
func bracketTax(brackets []domain.TaxBracket, income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	tax := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		span := decimal.Min(income, b.Max).Sub(b.Min)
		if span.GreaterThan(decimal.Zero) {
			tax = tax.Add(span.Mul(b.Rate))
		}
	}
	return tax
}
