// Package statetax implements per-state tax strategies and the multi-state
// income sourcing allocator. Each state is a Module selected from a lookup
// table; adding a state means adding a variant, not editing a dispatcher.
package statetax

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// StateIncome is the share of a profile's income sourced to one state by the
// allocator, along with the residency facts the module needs.
type StateIncome struct {
	Wages         decimal.Decimal
	OtherOrdinary decimal.Decimal
	LongTermGains decimal.Decimal

	Residency         domain.StateResidency
	ResidentDays      int
	TotalDays         int
	StatutoryResident bool
}

// Total is all income sourced to the state.
func (si StateIncome) Total() decimal.Decimal {
	return si.Wages.Add(si.OtherOrdinary).Add(si.LongTermGains)
}

// Module is the strategy interface one state implements.
type Module interface {
	Code() domain.StateCode
	Compute(p *domain.TaxProfile, income StateIncome, year *domain.TaxYear) (domain.StateTaxResult, error)
}

// noIncomeTaxStates return zero unconditionally.
var noIncomeTaxStates = map[domain.StateCode]bool{
	domain.StateTX: true,
	domain.StateFL: true,
	domain.StateNV: true,
	domain.StateWY: true,
	domain.StateSD: true,
	domain.StateAK: true,
	domain.StateTN: true,
	domain.StateNH: true,
}

var modules = map[domain.StateCode]Module{
	domain.StateCA: &California{},
	domain.StateNY: &NewYork{},
	domain.StateWA: &Washington{},
}

// ModuleFor selects the strategy for a state: a dedicated module, the
// no-income-tax stub, or the low-confidence estimation fallback.
func ModuleFor(code domain.StateCode) Module {
	if m, ok := modules[code]; ok {
		return m
	}
	if noIncomeTaxStates[code] {
		return &NoIncomeTax{State: code}
	}
	return &Fallback{State: code}
}

// progressiveTax walks a contiguous bracket ladder.
func progressiveTax(brackets []domain.TaxBracket, income decimal.Decimal) decimal.Decimal {
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
