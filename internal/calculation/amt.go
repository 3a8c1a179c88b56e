package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// AMTCalculator computes the Alternative Minimum Tax system: AMTI, the
// phased-out exemption, Tentative Minimum Tax, and the AMT actually owed.
type AMTCalculator struct {
	Year    *domain.TaxYear
	federal *FederalTaxCalculator
}

// NewAMTCalculator creates an AMT calculator for one tax year.
func NewAMTCalculator(year *domain.TaxYear) *AMTCalculator {
	return &AMTCalculator{Year: year, federal: NewFederalTaxCalculator(year)}
}

// AMTI is regular taxable income plus AMT preference items. The ISO bargain
// element at exercise is the preference that matters here: excluded from
// regular taxable income, included in AMTI. The exercise-year preference
// applies regardless of how the shares are eventually disposed.
func (a *AMTCalculator) AMTI(taxableIncome, preferenceItems decimal.Decimal) decimal.Decimal {
	amti := taxableIncome.Add(preferenceItems)
	if amti.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return amti
}

// Exemption returns the AMT exemption after phaseout: reduced by the phaseout
// rate for every dollar of AMTI above the threshold, floored at zero.
func (a *AMTCalculator) Exemption(amti decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	exemption := a.Year.AMT.Exemption[status]
	start := a.Year.AMT.PhaseoutStart[status]
	if amti.GreaterThan(start) {
		reduction := amti.Sub(start).Mul(a.Year.AMT.PhaseoutRate)
		exemption = exemption.Sub(reduction)
	}
	if exemption.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return exemption
}

// TentativeMinimumTax applies the two-tier 26/28% rates to the AMT base.
// The preferential slice of the base keeps its stacked capital-gains rates;
// only the ordinary slice goes through the two-tier schedule. Without that
// split a gains-heavy profile would show phantom AMT.
func (a *AMTCalculator) TentativeMinimumTax(amti, preferentialIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	base := amti.Sub(a.Exemption(amti, status))
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	prefSlice := decimal.Min(decimal.Max(preferentialIncome, decimal.Zero), base)
	ordinaryBase := base.Sub(prefSlice)

	split := a.Year.AMT.RateSplitThreshold
	lowSpan := decimal.Min(ordinaryBase, split)
	highSpan := decimal.Max(ordinaryBase.Sub(split), decimal.Zero)
	tmt := lowSpan.Mul(a.Year.AMT.LowRate).Add(highSpan.Mul(a.Year.AMT.HighRate))

	if prefSlice.GreaterThan(decimal.Zero) {
		tmt = tmt.Add(a.federal.CapitalGainsTax(ordinaryBase, prefSlice, status))
	}
	return tmt
}

// AMT is the tax owed on top of regular tax: max(0, TMT minus regular tax).
func (a *AMTCalculator) AMT(tmt, regularTax decimal.Decimal) decimal.Decimal {
	amt := tmt.Sub(regularTax)
	if amt.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return amt
}
