package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// capitalLossLimit is the annual cap on net capital losses deductible
// against ordinary income.
var capitalLossLimit = decimal.NewFromInt(3000)

// StateResidency records presence in one state during the tax year. From/To
// are optional; when set they let the allocator apportion RSU income by days
// within each vesting period rather than by whole-year ratio.
type StateResidency struct {
	State StateCode  `yaml:"state" json:"state"`
	Days  int        `yaml:"days" json:"days"`
	From  *time.Time `yaml:"from,omitempty" json:"from,omitempty"`
	To    *time.Time `yaml:"to,omitempty" json:"to,omitempty"`

	NYCResident     bool `yaml:"nyc_resident,omitempty" json:"nycResident,omitempty"`
	YonkersResident bool `yaml:"yonkers_resident,omitempty" json:"yonkersResident,omitempty"`
	WorksInYonkers  bool `yaml:"works_in_yonkers,omitempty" json:"worksInYonkers,omitempty"`
}

// TaxProfile is the engine's input: a structured description of a taxpayer's
// income, equity events and filing parameters for one tax year. Profiles are
// assembled by external collaborators (manual entry, imports) and treated as
// plain data here.
type TaxProfile struct {
	FilingStatus FilingStatus     `yaml:"filing_status" json:"filingStatus"`
	Residency    []StateResidency `yaml:"residency" json:"residency"`

	Wages              decimal.Decimal `yaml:"wages" json:"wages"`
	RSUVestIncome      decimal.Decimal `yaml:"rsu_vest_income" json:"rsuVestIncome"`
	ISOBargainElement  decimal.Decimal `yaml:"iso_bargain_element" json:"isoBargainElement"`
	NSOBargainElement  decimal.Decimal `yaml:"nso_bargain_element" json:"nsoBargainElement"`
	ESPPOrdinaryIncome decimal.Decimal `yaml:"espp_ordinary_income" json:"esppOrdinaryIncome"`

	// Capital gain fields may be negative; everything else must not be.
	ShortTermGains     decimal.Decimal `yaml:"short_term_gains" json:"shortTermGains"`
	LongTermGains      decimal.Decimal `yaml:"long_term_gains" json:"longTermGains"`
	QualifiedDividends decimal.Decimal `yaml:"qualified_dividends" json:"qualifiedDividends"`
	InterestIncome     decimal.Decimal `yaml:"interest_income" json:"interestIncome"`
	OtherIncome        decimal.Decimal `yaml:"other_income" json:"otherIncome"`

	// ItemizedDeductions is supplied pre-capped by the caller (SALT capping
	// is the caller's responsibility); the engine takes the greater of this
	// and the standard deduction.
	ItemizedDeductions decimal.Decimal `yaml:"itemized_deductions" json:"itemizedDeductions"`
	Credits            decimal.Decimal `yaml:"credits" json:"credits"`

	FederalWithholding decimal.Decimal   `yaml:"federal_withholding" json:"federalWithholding"`
	StateWithholding   decimal.Decimal   `yaml:"state_withholding" json:"stateWithholding"`
	EstimatedPayments  []decimal.Decimal `yaml:"estimated_payments" json:"estimatedPayments"`

	// Prior-year figures drive the estimated-payment safe harbor check.
	PriorYearAGI decimal.Decimal `yaml:"prior_year_agi" json:"priorYearAGI"`
	PriorYearTax decimal.Decimal `yaml:"prior_year_tax" json:"priorYearTax"`

	VestingEvents      []VestingEvent   `yaml:"vesting_events,omitempty" json:"vestingEvents,omitempty"`
	PlannedISOExercise *OptionExercise  `yaml:"planned_iso_exercise,omitempty" json:"plannedISOExercise,omitempty"`
	Lots               []TransactionLot `yaml:"lots,omitempty" json:"lots,omitempty"`
}

// WageIncome is total FICA wage income: W-2 wages plus RSU vesting income and
// the ordinary-income components of NSO exercises and ESPP purchases. The ISO
// bargain element is not wage income.
func (p *TaxProfile) WageIncome() decimal.Decimal {
	return p.Wages.Add(p.RSUVestIncome).Add(p.NSOBargainElement).Add(p.ESPPOrdinaryIncome)
}

// NetCapitalGains nets short- and long-term gains and splits the result into
// the ordinary component (short-term gains, and net losses up to the annual
// deduction limit) and the preferential component taxed at LTCG rates.
func (p *TaxProfile) NetCapitalGains() (ordinary, preferential decimal.Decimal) {
	st := p.ShortTermGains
	lt := p.LongTermGains
	net := st.Add(lt)

	if net.LessThanOrEqual(decimal.Zero) {
		// Net loss: deductible against ordinary income up to the limit.
		loss := decimal.Max(net, capitalLossLimit.Neg())
		return loss, decimal.Zero
	}

	switch {
	case lt.GreaterThan(decimal.Zero) && st.GreaterThanOrEqual(decimal.Zero):
		return st, lt
	case lt.GreaterThan(decimal.Zero):
		// Short-term loss absorbed by long-term gain.
		return decimal.Zero, net
	default:
		// Long-term loss absorbed by short-term gain.
		return net, decimal.Zero
	}
}

// PreferentialIncome is the income taxed at LTCG rates: the preferential
// capital gain component plus qualified dividends.
func (p *TaxProfile) PreferentialIncome() decimal.Decimal {
	_, pref := p.NetCapitalGains()
	return pref.Add(p.QualifiedDividends)
}

// InvestmentIncome is net investment income for NIIT purposes.
func (p *TaxProfile) InvestmentIncome() decimal.Decimal {
	gains := decimal.Max(p.ShortTermGains.Add(p.LongTermGains), decimal.Zero)
	return p.InterestIncome.Add(p.QualifiedDividends).Add(gains)
}

// GrossIncome is AGI before deductions: wages plus investment and other
// income with capital gains netted. The ISO bargain element is excluded; it
// enters only through AMTI.
func (p *TaxProfile) GrossIncome() decimal.Decimal {
	ordGain, pref := p.NetCapitalGains()
	return p.WageIncome().
		Add(p.InterestIncome).
		Add(p.QualifiedDividends).
		Add(p.OtherIncome).
		Add(ordGain).
		Add(pref)
}

// TotalEstimatedPayments sums the quarterly estimated payments made.
func (p *TaxProfile) TotalEstimatedPayments() decimal.Decimal {
	total := decimal.Zero
	for _, q := range p.EstimatedPayments {
		total = total.Add(q)
	}
	return total
}

// ResidencyDays sums day counts across all states.
func (p *TaxProfile) ResidencyDays() int {
	days := 0
	for _, r := range p.Residency {
		days += r.Days
	}
	return days
}

// PrimaryState is the state with the most resident days, or "" when no
// residency is recorded.
func (p *TaxProfile) PrimaryState() StateCode {
	var primary StateCode
	best := 0
	for _, r := range p.Residency {
		if r.Days > best {
			best = r.Days
			primary = r.State
		}
	}
	return primary
}

// Clone returns a deep copy. Scenario generators perturb clones so the
// baseline profile is never mutated.
func (p *TaxProfile) Clone() *TaxProfile {
	c := *p
	c.Residency = append([]StateResidency(nil), p.Residency...)
	c.EstimatedPayments = append([]decimal.Decimal(nil), p.EstimatedPayments...)
	c.VestingEvents = append([]VestingEvent(nil), p.VestingEvents...)
	c.Lots = append([]TransactionLot(nil), p.Lots...)
	if p.PlannedISOExercise != nil {
		ex := *p.PlannedISOExercise
		c.PlannedISOExercise = &ex
	}
	return &c
}

// Validate checks the profile for malformed or out-of-range input. It is the
// single gate in front of every calculation; a failure leaves no partial
// state behind.
func (p *TaxProfile) Validate() error {
	if !p.FilingStatus.Valid() {
		return NewValidationError("filing_status", fmt.Sprintf("unknown filing status %q", p.FilingStatus))
	}
	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"wages", p.Wages},
		{"rsu_vest_income", p.RSUVestIncome},
		{"iso_bargain_element", p.ISOBargainElement},
		{"nso_bargain_element", p.NSOBargainElement},
		{"espp_ordinary_income", p.ESPPOrdinaryIncome},
		{"qualified_dividends", p.QualifiedDividends},
		{"interest_income", p.InterestIncome},
		{"other_income", p.OtherIncome},
		{"itemized_deductions", p.ItemizedDeductions},
		{"credits", p.Credits},
		{"federal_withholding", p.FederalWithholding},
		{"state_withholding", p.StateWithholding},
		{"prior_year_agi", p.PriorYearAGI},
		{"prior_year_tax", p.PriorYearTax},
	}
	for _, f := range nonNegative {
		if f.value.LessThan(decimal.Zero) {
			return NewValidationError(f.field, "must not be negative")
		}
	}
	if len(p.EstimatedPayments) > 4 {
		return NewValidationError("estimated_payments", "at most four quarterly payments")
	}
	for i, q := range p.EstimatedPayments {
		if q.LessThan(decimal.Zero) {
			return NewValidationError(fmt.Sprintf("estimated_payments[%d]", i), "must not be negative")
		}
	}
	days := 0
	for i, r := range p.Residency {
		if !r.State.Valid() {
			return NewValidationError(fmt.Sprintf("residency[%d].state", i), fmt.Sprintf("unknown state code %q", r.State))
		}
		if r.Days < 0 {
			return NewValidationError(fmt.Sprintf("residency[%d].days", i), "must not be negative")
		}
		if r.From != nil && r.To != nil && r.To.Before(*r.From) {
			return NewValidationError(fmt.Sprintf("residency[%d]", i), "to date precedes from date")
		}
		days += r.Days
	}
	if days > 366 {
		return NewValidationError("residency", fmt.Sprintf("day counts sum to %d, exceeding the year length", days))
	}
	for i, e := range p.VestingEvents {
		if err := e.Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("vesting_events[%d]", i), err.Error())
		}
	}
	for i, l := range p.Lots {
		if err := l.Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("lots[%d]", i), err.Error())
		}
	}
	return nil
}
