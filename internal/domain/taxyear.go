package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// bracketTop is the sentinel upper bound for the last bracket in a ladder.
var bracketTop = decimal.NewFromInt(999999999999)

func dInt(v int64) decimal.Decimal     { return decimal.NewFromInt(v) }
func dFloat(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// TaxBracket is one rung of a progressive ladder. Ladders are contiguous:
// the Min of each bracket equals the Max of the one below it.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// AMTParameters holds Alternative Minimum Tax constants for a year.
type AMTParameters struct {
	Exemption          map[FilingStatus]decimal.Decimal `yaml:"exemption" json:"exemption"`
	PhaseoutStart      map[FilingStatus]decimal.Decimal `yaml:"phaseout_start" json:"phaseout_start"`
	PhaseoutRate       decimal.Decimal                  `yaml:"phaseout_rate" json:"phaseout_rate"`
	RateSplitThreshold decimal.Decimal                  `yaml:"rate_split_threshold" json:"rate_split_threshold"`
	LowRate            decimal.Decimal                  `yaml:"low_rate" json:"low_rate"`
	HighRate           decimal.Decimal                  `yaml:"high_rate" json:"high_rate"`
}

// FICAParameters holds payroll tax constants for a year.
type FICAParameters struct {
	SocialSecurityRate          decimal.Decimal                  `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase      decimal.Decimal                  `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate                decimal.Decimal                  `yaml:"medicare_rate" json:"medicare_rate"`
	AdditionalMedicareRate      decimal.Decimal                  `yaml:"additional_medicare_rate" json:"additional_medicare_rate"`
	AdditionalMedicareThreshold map[FilingStatus]decimal.Decimal `yaml:"additional_medicare_threshold" json:"additional_medicare_threshold"`
}

// NIITParameters holds Net Investment Income Tax constants for a year.
type NIITParameters struct {
	Rate      decimal.Decimal                  `yaml:"rate" json:"rate"`
	Threshold map[FilingStatus]decimal.Decimal `yaml:"threshold" json:"threshold"`
}

// StateParameters holds the state-specific constants the state modules read.
type StateParameters struct {
	CaliforniaBrackets          map[FilingStatus][]TaxBracket    `yaml:"california_brackets" json:"california_brackets"`
	CaliforniaStandardDeduction map[FilingStatus]decimal.Decimal `yaml:"california_standard_deduction" json:"california_standard_deduction"`
	CAMentalHealthThreshold     decimal.Decimal                  `yaml:"ca_mental_health_threshold" json:"ca_mental_health_threshold"`
	CAMentalHealthRate          decimal.Decimal                  `yaml:"ca_mental_health_rate" json:"ca_mental_health_rate"`
	CASDIRate                   decimal.Decimal                  `yaml:"ca_sdi_rate" json:"ca_sdi_rate"`

	NewYorkBrackets          map[FilingStatus][]TaxBracket    `yaml:"new_york_brackets" json:"new_york_brackets"`
	NewYorkStandardDeduction map[FilingStatus]decimal.Decimal `yaml:"new_york_standard_deduction" json:"new_york_standard_deduction"`
	NYCBrackets              map[FilingStatus][]TaxBracket    `yaml:"nyc_brackets" json:"nyc_brackets"`
	YonkersResidentRate      decimal.Decimal                  `yaml:"yonkers_resident_rate" json:"yonkers_resident_rate"`
	YonkersNonresidentRate   decimal.Decimal                  `yaml:"yonkers_nonresident_rate" json:"yonkers_nonresident_rate"`

	WACapitalGainsRate      decimal.Decimal `yaml:"wa_capital_gains_rate" json:"wa_capital_gains_rate"`
	WACapitalGainsExemption decimal.Decimal `yaml:"wa_capital_gains_exemption" json:"wa_capital_gains_exemption"`

	FallbackRate decimal.Decimal `yaml:"fallback_rate" json:"fallback_rate"`
}

// TaxYear is the immutable parameter set for one calendar year. It is created
// once per supported year and passed explicitly into every calculator call;
// it is never a process-wide singleton, so multiple years can be evaluated
// concurrently (current year plus prior-year safe harbor, for example).
type TaxYear struct {
	Year int `yaml:"year" json:"year"`

	OrdinaryBrackets     map[FilingStatus][]TaxBracket    `yaml:"ordinary_brackets" json:"ordinary_brackets"`
	CapitalGainsBrackets map[FilingStatus][]TaxBracket    `yaml:"capital_gains_brackets" json:"capital_gains_brackets"`
	StandardDeduction    map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`

	AMT    AMTParameters   `yaml:"amt" json:"amt"`
	FICA   FICAParameters  `yaml:"fica" json:"fica"`
	NIIT   NIITParameters  `yaml:"niit" json:"niit"`
	States StateParameters `yaml:"states" json:"states"`
}

// ladder builds a contiguous bracket ladder from (upper bound, rate) pairs;
// the final pair's bound is ignored and replaced with the sentinel top.
func ladder(rates []decimal.Decimal, tops []int64) []TaxBracket {
	brackets := make([]TaxBracket, len(rates))
	lower := decimal.Zero
	for i := range rates {
		upper := bracketTop
		if i < len(tops) {
			upper = dInt(tops[i])
		}
		brackets[i] = TaxBracket{Min: lower, Max: upper, Rate: rates[i]}
		lower = upper
	}
	return brackets
}

var ordinaryRates = []decimal.Decimal{
	dFloat(0.10), dFloat(0.12), dFloat(0.22), dFloat(0.24),
	dFloat(0.32), dFloat(0.35), dFloat(0.37),
}

var capitalGainsRates = []decimal.Decimal{
	decimal.Zero, dFloat(0.15), dFloat(0.20),
}

// TaxYear2025 returns the 2025 federal and state parameter tables.
func TaxYear2025() *TaxYear {
	return &TaxYear{
		Year: 2025,
		OrdinaryBrackets: map[FilingStatus][]TaxBracket{
			FilingSingle:            ladder(ordinaryRates, []int64{11925, 48475, 103350, 197300, 250525, 626350}),
			FilingMarriedJointly:    ladder(ordinaryRates, []int64{23850, 96950, 206700, 394600, 501050, 751600}),
			FilingMarriedSeparately: ladder(ordinaryRates, []int64{11925, 48475, 103350, 197300, 250525, 375800}),
			FilingHeadOfHousehold:   ladder(ordinaryRates, []int64{17000, 64850, 103350, 197300, 250500, 626350}),
		},
		CapitalGainsBrackets: map[FilingStatus][]TaxBracket{
			FilingSingle:            ladder(capitalGainsRates, []int64{48350, 533400}),
			FilingMarriedJointly:    ladder(capitalGainsRates, []int64{96700, 600050}),
			FilingMarriedSeparately: ladder(capitalGainsRates, []int64{48350, 300000}),
			FilingHeadOfHousehold:   ladder(capitalGainsRates, []int64{64750, 566700}),
		},
		StandardDeduction: map[FilingStatus]decimal.Decimal{
			FilingSingle:            dInt(15000),
			FilingMarriedJointly:    dInt(30000),
			FilingMarriedSeparately: dInt(15000),
			FilingHeadOfHousehold:   dInt(22500),
		},
		AMT: AMTParameters{
			Exemption: map[FilingStatus]decimal.Decimal{
				FilingSingle:            dInt(88100),
				FilingMarriedJointly:    dInt(137000),
				FilingMarriedSeparately: dInt(68500),
				FilingHeadOfHousehold:   dInt(88100),
			},
			PhaseoutStart: map[FilingStatus]decimal.Decimal{
				FilingSingle:            dInt(626350),
				FilingMarriedJointly:    dInt(1252700),
				FilingMarriedSeparately: dInt(626350),
				FilingHeadOfHousehold:   dInt(626350),
			},
			PhaseoutRate:       dFloat(0.25),
			RateSplitThreshold: dInt(232600),
			LowRate:            dFloat(0.26),
			HighRate:           dFloat(0.28),
		},
		FICA: FICAParameters{
			SocialSecurityRate:     dFloat(0.062),
			SocialSecurityWageBase: dInt(176100),
			MedicareRate:           dFloat(0.0145),
			AdditionalMedicareRate: dFloat(0.009),
			AdditionalMedicareThreshold: map[FilingStatus]decimal.Decimal{
				FilingSingle:            dInt(200000),
				FilingMarriedJointly:    dInt(250000),
				FilingMarriedSeparately: dInt(125000),
				FilingHeadOfHousehold:   dInt(200000),
			},
		},
		NIIT: NIITParameters{
			Rate: dFloat(0.038),
			Threshold: map[FilingStatus]decimal.Decimal{
				FilingSingle:            dInt(200000),
				FilingMarriedJointly:    dInt(250000),
				FilingMarriedSeparately: dInt(125000),
				FilingHeadOfHousehold:   dInt(200000),
			},
		},
		States: stateParameters2025(),
	}
}

var californiaRates = []decimal.Decimal{
	dFloat(0.01), dFloat(0.02), dFloat(0.04), dFloat(0.06), dFloat(0.08),
	dFloat(0.093), dFloat(0.103), dFloat(0.113), dFloat(0.123),
}

var newYorkRates = []decimal.Decimal{
	dFloat(0.04), dFloat(0.045), dFloat(0.0525), dFloat(0.055), dFloat(0.06),
	dFloat(0.0685), dFloat(0.0965), dFloat(0.103), dFloat(0.109),
}

var nycRates = []decimal.Decimal{
	dFloat(0.03078), dFloat(0.03762), dFloat(0.03819), dFloat(0.03876),
}

func stateParameters2025() StateParameters {
	caSingle := ladder(californiaRates, []int64{10756, 25499, 40245, 55866, 70606, 360659, 432787, 721314})
	caJoint := ladder(californiaRates, []int64{21512, 50998, 80490, 111732, 141212, 721318, 865574, 1442628})
	caHoH := ladder(californiaRates, []int64{21527, 51000, 65744, 81364, 96107, 490493, 588593, 980987})

	nySingle := ladder(newYorkRates, []int64{8500, 11700, 13900, 80650, 215400, 1077550, 5000000, 25000000})
	nyJoint := ladder(newYorkRates, []int64{17150, 23600, 27900, 161550, 323200, 2155350, 5000000, 25000000})
	nyHoH := ladder(newYorkRates, []int64{12800, 17650, 20900, 107650, 269300, 1616450, 5000000, 25000000})

	nycSingle := ladder(nycRates, []int64{12000, 25000, 50000})
	nycJoint := ladder(nycRates, []int64{21600, 45000, 90000})
	nycHoH := ladder(nycRates, []int64{14400, 30000, 60000})

	return StateParameters{
		CaliforniaBrackets: map[FilingStatus][]TaxBracket{
			FilingSingle:            caSingle,
			FilingMarriedJointly:    caJoint,
			FilingMarriedSeparately: caSingle,
			FilingHeadOfHousehold:   caHoH,
		},
		CaliforniaStandardDeduction: map[FilingStatus]decimal.Decimal{
			FilingSingle:            dInt(5540),
			FilingMarriedJointly:    dInt(11080),
			FilingMarriedSeparately: dInt(5540),
			FilingHeadOfHousehold:   dInt(11080),
		},
		CAMentalHealthThreshold: dInt(1000000),
		CAMentalHealthRate:      dFloat(0.01),
		CASDIRate:               dFloat(0.012),

		NewYorkBrackets: map[FilingStatus][]TaxBracket{
			FilingSingle:            nySingle,
			FilingMarriedJointly:    nyJoint,
			FilingMarriedSeparately: nySingle,
			FilingHeadOfHousehold:   nyHoH,
		},
		NewYorkStandardDeduction: map[FilingStatus]decimal.Decimal{
			FilingSingle:            dInt(8000),
			FilingMarriedJointly:    dInt(16050),
			FilingMarriedSeparately: dInt(8000),
			FilingHeadOfHousehold:   dInt(11200),
		},
		NYCBrackets: map[FilingStatus][]TaxBracket{
			FilingSingle:            nycSingle,
			FilingMarriedJointly:    nycJoint,
			FilingMarriedSeparately: nycSingle,
			FilingHeadOfHousehold:   nycHoH,
		},
		YonkersResidentRate:    dFloat(0.1675),
		YonkersNonresidentRate: dFloat(0.005),

		WACapitalGainsRate:      dFloat(0.07),
		WACapitalGainsExemption: dInt(270000),

		FallbackRate: dFloat(0.05),
	}
}

// TaxYear2024 returns the 2024 tables, kept primarily for prior-year safe
// harbor checks alongside a 2025 calculation.
func TaxYear2024() *TaxYear {
	y := TaxYear2025()
	y.Year = 2024
	y.OrdinaryBrackets = map[FilingStatus][]TaxBracket{
		FilingSingle:            ladder(ordinaryRates, []int64{11600, 47150, 100525, 191950, 243725, 609350}),
		FilingMarriedJointly:    ladder(ordinaryRates, []int64{23200, 94300, 201050, 383900, 487450, 731200}),
		FilingMarriedSeparately: ladder(ordinaryRates, []int64{11600, 47150, 100525, 191950, 243725, 365600}),
		FilingHeadOfHousehold:   ladder(ordinaryRates, []int64{16550, 63100, 100500, 191950, 243700, 609350}),
	}
	y.CapitalGainsBrackets = map[FilingStatus][]TaxBracket{
		FilingSingle:            ladder(capitalGainsRates, []int64{47025, 518900}),
		FilingMarriedJointly:    ladder(capitalGainsRates, []int64{94050, 583750}),
		FilingMarriedSeparately: ladder(capitalGainsRates, []int64{47025, 291850}),
		FilingHeadOfHousehold:   ladder(capitalGainsRates, []int64{63000, 551350}),
	}
	y.StandardDeduction = map[FilingStatus]decimal.Decimal{
		FilingSingle:            dInt(14600),
		FilingMarriedJointly:    dInt(29200),
		FilingMarriedSeparately: dInt(14600),
		FilingHeadOfHousehold:   dInt(21900),
	}
	y.AMT.Exemption = map[FilingStatus]decimal.Decimal{
		FilingSingle:            dInt(85700),
		FilingMarriedJointly:    dInt(133300),
		FilingMarriedSeparately: dInt(66650),
		FilingHeadOfHousehold:   dInt(85700),
	}
	y.AMT.PhaseoutStart = map[FilingStatus]decimal.Decimal{
		FilingSingle:            dInt(609350),
		FilingMarriedJointly:    dInt(1218700),
		FilingMarriedSeparately: dInt(609350),
		FilingHeadOfHousehold:   dInt(609350),
	}
	y.FICA.SocialSecurityWageBase = dInt(168600)
	y.States.CASDIRate = dFloat(0.011)
	y.States.WACapitalGainsExemption = dInt(262000)
	return y
}

// ForYear returns the built-in parameter tables for a supported year.
func ForYear(year int) (*TaxYear, error) {
	switch year {
	case 2024:
		return TaxYear2024(), nil
	case 2025:
		return TaxYear2025(), nil
	default:
		return nil, NewValidationError("year", fmt.Sprintf("no parameter tables for year %d", year))
	}
}

// Validate checks a loaded parameter set for structural completeness.
func (y *TaxYear) Validate() error {
	if y.Year < 2000 || y.Year > 2100 {
		return NewValidationError("year", fmt.Sprintf("implausible tax year %d", y.Year))
	}
	for _, fs := range AllFilingStatuses {
		if len(y.OrdinaryBrackets[fs]) == 0 {
			return NewValidationError("ordinary_brackets", fmt.Sprintf("missing ladder for %s", fs))
		}
		if len(y.CapitalGainsBrackets[fs]) == 0 {
			return NewValidationError("capital_gains_brackets", fmt.Sprintf("missing ladder for %s", fs))
		}
		if _, ok := y.StandardDeduction[fs]; !ok {
			return NewValidationError("standard_deduction", fmt.Sprintf("missing amount for %s", fs))
		}
	}
	for fs, brackets := range y.OrdinaryBrackets {
		prev := decimal.Zero
		for i, b := range brackets {
			if !b.Min.Equal(prev) {
				return NewValidationError("ordinary_brackets",
					fmt.Sprintf("%s bracket %d is not contiguous with the previous bracket", fs, i))
			}
			prev = b.Max
		}
	}
	return nil
}
