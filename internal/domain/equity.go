package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GrantType identifies the kind of equity holding.
type GrantType string

const (
	GrantRSU  GrantType = "rsu"
	GrantISO  GrantType = "iso"
	GrantNSO  GrantType = "nso"
	GrantESPP GrantType = "espp"
)

// Valid reports whether the grant type is recognized.
func (g GrantType) Valid() bool {
	switch g {
	case GrantRSU, GrantISO, GrantNSO, GrantESPP:
		return true
	}
	return false
}

// longTermHoldingDays is the minimum days between acquisition and sale for
// long-term treatment (strictly more than one year).
const longTermHoldingDays = 366

// EquityGrant describes an equity award as granted.
type EquityGrant struct {
	Type          GrantType       `yaml:"type" json:"type"`
	GrantDate     time.Time       `yaml:"grant_date" json:"grantDate"`
	Shares        decimal.Decimal `yaml:"shares" json:"shares"`
	ExercisePrice decimal.Decimal `yaml:"exercise_price" json:"exercisePrice"`
}

// VestingEvent is a tranche of a grant vesting on a date. PeriodStart and
// PeriodEnd bound the vesting period for multi-state apportionment.
type VestingEvent struct {
	Type        GrantType       `yaml:"type" json:"type"`
	VestDate    time.Time       `yaml:"vest_date" json:"vestDate"`
	Shares      decimal.Decimal `yaml:"shares" json:"shares"`
	FMV         decimal.Decimal `yaml:"fmv" json:"fmv"`
	PeriodStart time.Time       `yaml:"period_start" json:"periodStart"`
	PeriodEnd   time.Time       `yaml:"period_end" json:"periodEnd"`
}

// Income is the ordinary income recognized at vest.
func (v *VestingEvent) Income() decimal.Decimal {
	return v.Shares.Mul(v.FMV)
}

// Validate checks the event's internal consistency.
func (v *VestingEvent) Validate() error {
	if !v.Type.Valid() {
		return fmt.Errorf("unknown grant type %q", v.Type)
	}
	if v.Shares.LessThan(decimal.Zero) {
		return fmt.Errorf("shares must not be negative")
	}
	if v.FMV.LessThan(decimal.Zero) {
		return fmt.Errorf("fmv must not be negative")
	}
	if !v.PeriodStart.IsZero() && !v.PeriodEnd.IsZero() && v.PeriodEnd.Before(v.PeriodStart) {
		return fmt.Errorf("vesting period end precedes start")
	}
	return nil
}

// OptionExercise is an exercise of ISO or NSO shares.
type OptionExercise struct {
	Type          GrantType       `yaml:"type" json:"type"`
	GrantDate     time.Time       `yaml:"grant_date" json:"grantDate"`
	ExerciseDate  time.Time       `yaml:"exercise_date" json:"exerciseDate"`
	Shares        decimal.Decimal `yaml:"shares" json:"shares"`
	ExercisePrice decimal.Decimal `yaml:"exercise_price" json:"exercisePrice"`
	FMV           decimal.Decimal `yaml:"fmv" json:"fmv"`
}

// BargainElement is FMV minus exercise price across the exercised shares,
// floored at zero. For NSOs it is ordinary income; for ISOs it is an AMT
// preference item in the exercise year.
func (e *OptionExercise) BargainElement() decimal.Decimal {
	spread := e.FMV.Sub(e.ExercisePrice)
	if spread.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return spread.Mul(e.Shares)
}

// StockSale is a disposition of shares. Holding period is derived from the
// acquisition and sale dates, never stored.
type StockSale struct {
	Type            GrantType       `yaml:"type" json:"type"`
	GrantDate       time.Time       `yaml:"grant_date" json:"grantDate"`
	ExerciseDate    time.Time       `yaml:"exercise_date" json:"exerciseDate"`
	AcquisitionDate time.Time       `yaml:"acquisition_date" json:"acquisitionDate"`
	SaleDate        time.Time       `yaml:"sale_date" json:"saleDate"`
	Shares          decimal.Decimal `yaml:"shares" json:"shares"`
	Proceeds        decimal.Decimal `yaml:"proceeds" json:"proceeds"`
	CostBasis       decimal.Decimal `yaml:"cost_basis" json:"costBasis"`
}

// Gain is proceeds minus basis; negative for a loss.
func (s *StockSale) Gain() decimal.Decimal {
	return s.Proceeds.Sub(s.CostBasis)
}

// IsLongTerm reports whether the holding period qualifies for long-term
// capital gains treatment.
func (s *StockSale) IsLongTerm() bool {
	return !s.SaleDate.Before(s.AcquisitionDate.AddDate(0, 0, longTermHoldingDays))
}

// IsQualifyingISODisposition reports whether an ISO sale meets the statutory
// holding periods: at least two years from grant and one year from exercise.
// The exercise-year AMT preference item applies regardless of how the shares
// are eventually disposed.
func (s *StockSale) IsQualifyingISODisposition() bool {
	if s.Type != GrantISO {
		return false
	}
	twoYearsFromGrant := s.GrantDate.AddDate(2, 0, 0)
	oneYearFromExercise := s.ExerciseDate.AddDate(1, 0, 0)
	return !s.SaleDate.Before(twoYearsFromGrant) && !s.SaleDate.Before(oneYearFromExercise)
}
