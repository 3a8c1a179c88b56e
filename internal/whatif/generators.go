package whatif

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// Generators perturb a clone of the baseline and never touch the baseline
// itself. Each one models the current-year side of a timing or sourcing
// change; the income pushed into next year is shown in the description, not
// re-taxed here.

// DeferVestToNextYear removes RSU vesting income from the current year,
// modeling a deferral election or a sell-to-cover pushed past year end.
func DeferVestToNextYear(baseline *domain.TaxProfile, amount decimal.Decimal) domain.Scenario {
	deferred := decimal.Min(amount, baseline.RSUVestIncome)
	p := baseline.Clone()
	p.RSUVestIncome = p.RSUVestIncome.Sub(deferred)
	return domain.Scenario{
		Name: "defer-vest",
		Description: fmt.Sprintf("Defer $%s of RSU vesting income into next year",
			deferred.StringFixed(0)),
		Profile: *p,
	}
}

// ShiftBonusToNextYear moves cash wages into next year, modeling a bonus paid
// in January instead of December.
func ShiftBonusToNextYear(baseline *domain.TaxProfile, amount decimal.Decimal) domain.Scenario {
	shifted := decimal.Min(amount, baseline.Wages)
	p := baseline.Clone()
	p.Wages = p.Wages.Sub(shifted)
	return domain.Scenario{
		Name: "shift-bonus",
		Description: fmt.Sprintf("Shift a $%s bonus into next year",
			shifted.StringFixed(0)),
		Profile: *p,
	}
}

// DeferGainToNextYear removes realized long-term gains from the current year,
// modeling a sale postponed past year end.
func DeferGainToNextYear(baseline *domain.TaxProfile, amount decimal.Decimal) domain.Scenario {
	deferred := amount
	if baseline.LongTermGains.GreaterThan(decimal.Zero) {
		deferred = decimal.Min(amount, baseline.LongTermGains)
	}
	p := baseline.Clone()
	p.LongTermGains = p.LongTermGains.Sub(deferred)
	return domain.Scenario{
		Name: "defer-gain",
		Description: fmt.Sprintf("Defer $%s of long-term gains into next year",
			deferred.StringFixed(0)),
		Profile: *p,
	}
}

// RelocateState replaces the whole residency record with full-year residency
// in one state, modeling a move effective January 1.
func RelocateState(baseline *domain.TaxProfile, state domain.StateCode) domain.Scenario {
	p := baseline.Clone()
	p.Residency = []domain.StateResidency{{State: state, Days: 365}}
	return domain.Scenario{
		Name:        "relocate-" + string(state),
		Description: fmt.Sprintf("Full-year residency in %s", state),
		Profile:     *p,
	}
}

// ExerciseISOShares adds an ISO exercise of the given share count to the
// year, pricing it from the planned exercise on the profile. It returns false
// when the baseline has no planned exercise to draw terms from.
func ExerciseISOShares(baseline *domain.TaxProfile, shares decimal.Decimal) (domain.Scenario, bool) {
	planned := baseline.PlannedISOExercise
	if planned == nil || planned.Type != domain.GrantISO {
		return domain.Scenario{}, false
	}
	if shares.GreaterThan(planned.Shares) {
		shares = planned.Shares
	}
	ex := *planned
	ex.Shares = shares

	p := baseline.Clone()
	p.PlannedISOExercise = nil
	p.ISOBargainElement = p.ISOBargainElement.Add(ex.BargainElement())
	return domain.Scenario{
		Name: "exercise-iso",
		Description: fmt.Sprintf("Exercise %s ISO shares this year",
			shares.StringFixed(0)),
		Profile: *p,
	}, true
}
