package statetax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// statutoryResidencyDays is the presence threshold above which a person
// becomes taxable as a resident of a state.
const statutoryResidencyDays = 183

// Allocator apportions a profile's income across its states of residency by
// day count and invokes each state's module once with its share.
type Allocator struct{}

// NewAllocator creates a multi-state income sourcing allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Apportion splits the profile's income across states, runs each state
// module, and returns the per-state results together with nexus notes for
// filing obligations the taxpayer may not expect.
func (a *Allocator) Apportion(p *domain.TaxProfile, year *domain.TaxYear) ([]domain.StateTaxResult, []string, error) {
	if len(p.Residency) == 0 {
		return nil, nil, nil
	}

	totalDays := p.ResidencyDays()
	if totalDays == 0 {
		return nil, nil, nil
	}

	rsuShares := a.apportionRSU(p)

	wageBase := p.Wages.Add(p.NSOBargainElement).Add(p.ESPPOrdinaryIncome)
	ordGain, pref := p.NetCapitalGains()
	otherBase := p.InterestIncome.Add(p.QualifiedDividends).Add(p.OtherIncome).Add(ordGain)

	primary := p.PrimaryState()
	results := make([]domain.StateTaxResult, 0, len(p.Residency))
	var notes []string
	statutoryCount := 0

	for i, r := range p.Residency {
		if r.Days == 0 {
			continue
		}
		ratio := decimal.NewFromInt(int64(r.Days)).Div(decimal.NewFromInt(int64(totalDays)))

		income := StateIncome{
			Wages:             wageBase.Mul(ratio).Add(rsuShares[i]),
			OtherOrdinary:     otherBase.Mul(ratio),
			LongTermGains:     pref.Mul(ratio),
			Residency:         r,
			ResidentDays:      r.Days,
			TotalDays:         totalDays,
			StatutoryResident: r.Days >= statutoryResidencyDays,
		}
		if income.StatutoryResident {
			statutoryCount++
		}

		result, err := ModuleFor(r.State).Compute(p, income, year)
		if err != nil {
			return nil, nil, fmt.Errorf("state %s: %w", r.State, err)
		}
		results = append(results, result)

		if r.State != primary && income.Total().GreaterThan(decimal.Zero) {
			notes = append(notes, fmt.Sprintf(
				"%s-sourced income of $%s may create a filing obligation in %s",
				r.State, income.Total().StringFixed(0), r.State))
		}
	}

	if statutoryCount > 1 {
		notes = append(notes, "physical presence of 183+ days in more than one state; dual statutory residency risks double taxation without credits")
	}

	return results, notes, nil
}

// apportionRSU returns the RSU income sourced to each residency entry. RSU
// income vesting during a period that spans a move is apportioned by days
// resident in each state during that vesting period, not by days in the
// whole tax year; without dated vesting events or dated residency entries it
// falls back to the whole-year day ratio.
func (a *Allocator) apportionRSU(p *domain.TaxProfile) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(p.Residency))
	for i := range shares {
		shares[i] = decimal.Zero
	}
	if p.RSUVestIncome.IsZero() {
		return shares
	}

	totalDays := p.ResidencyDays()
	dayRatio := func(i int) decimal.Decimal {
		return decimal.NewFromInt(int64(p.Residency[i].Days)).Div(decimal.NewFromInt(int64(totalDays)))
	}

	weights, ok := a.vestingWeights(p)
	if !ok {
		for i := range shares {
			shares[i] = p.RSUVestIncome.Mul(dayRatio(i))
		}
		return shares
	}
	for i := range shares {
		shares[i] = p.RSUVestIncome.Mul(weights[i])
	}
	return shares
}

// vestingWeights computes per-state apportionment weights from the vesting
// events' period overlap with dated residency entries. It reports false when
// the profile lacks the dates needed for period-based apportionment.
func (a *Allocator) vestingWeights(p *domain.TaxProfile) ([]decimal.Decimal, bool) {
	dated := false
	for _, r := range p.Residency {
		if r.From != nil && r.To != nil {
			dated = true
			break
		}
	}
	if !dated || len(p.VestingEvents) == 0 {
		return nil, false
	}

	totalIncome := decimal.Zero
	perState := make([]decimal.Decimal, len(p.Residency))
	for i := range perState {
		perState[i] = decimal.Zero
	}

	for _, event := range p.VestingEvents {
		if event.Type != domain.GrantRSU || event.PeriodStart.IsZero() || event.PeriodEnd.IsZero() {
			continue
		}
		income := event.Income()
		if income.IsZero() {
			continue
		}

		overlaps := make([]int64, len(p.Residency))
		var overlapTotal int64
		for i, r := range p.Residency {
			if r.From == nil || r.To == nil {
				continue
			}
			overlaps[i] = overlapDays(event.PeriodStart, event.PeriodEnd, *r.From, *r.To)
			overlapTotal += overlaps[i]
		}
		if overlapTotal == 0 {
			continue
		}

		totalIncome = totalIncome.Add(income)
		for i := range p.Residency {
			frac := decimal.NewFromInt(overlaps[i]).Div(decimal.NewFromInt(overlapTotal))
			perState[i] = perState[i].Add(income.Mul(frac))
		}
	}

	if totalIncome.IsZero() {
		return nil, false
	}
	weights := make([]decimal.Decimal, len(perState))
	for i := range perState {
		weights[i] = perState[i].Div(totalIncome)
	}
	return weights, true
}

// overlapDays counts inclusive days in the intersection of two date ranges.
func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return 0
	}
	return int64(end.Sub(start).Hours()/24) + 1
}
