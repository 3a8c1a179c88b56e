package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/statetax"
)

// Logger is the minimal logging interface the engine emits debug traces to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// CalculationEngine runs the full pipeline: federal brackets, preferential
// stacking, AMT, FICA, NIIT and state apportionment. Every calculation is a
// deterministic function of its explicit inputs; the engine holds no mutable
// state between calls, so independent calculations can run concurrently.
type CalculationEngine struct {
	Allocator *statetax.Allocator
	logger    Logger
}

// NewCalculationEngine creates an engine with the default allocator.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Allocator: statetax.NewAllocator(),
		logger:    nopLogger{},
	}
}

// SetLogger installs a logger for debug tracing.
func (e *CalculationEngine) SetLogger(l Logger) {
	if l != nil {
		e.logger = l
	}
}

// Calculate computes the complete TaxSummary for a profile under one year's
// parameter tables. It fails with a ValidationError on malformed input and
// never partially computes: the summary is built only after validation.
func (e *CalculationEngine) Calculate(p *domain.TaxProfile, year *domain.TaxYear) (*domain.TaxSummary, error) {
	if year == nil {
		return nil, domain.NewValidationError("year", "tax year parameters are required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	federal := NewFederalTaxCalculator(year)
	amtCalc := NewAMTCalculator(year)
	fica := NewFICACalculator(year)
	niit := NewNIITCalculator(year)

	agi := p.GrossIncome()
	deduction := federal.Deduction(p)
	taxable := decimal.Max(agi.Sub(deduction), decimal.Zero)

	preferential := decimal.Min(p.PreferentialIncome(), taxable)
	ordinaryTaxable := taxable.Sub(preferential)

	ordinaryTax := federal.OrdinaryTax(ordinaryTaxable, p.FilingStatus)
	capGainsTax := federal.CapitalGainsTax(ordinaryTaxable, preferential, p.FilingStatus)
	federalTax := ordinaryTax.Add(capGainsTax)

	amti := amtCalc.AMTI(taxable, p.ISOBargainElement)
	tmt := amtCalc.TentativeMinimumTax(amti, preferential, p.FilingStatus)
	amt := amtCalc.AMT(tmt, federalTax)

	ficaResult := fica.Calculate(p.WageIncome(), p.FilingStatus)
	niitTax := niit.Calculate(p.InvestmentIncome(), agi, p.FilingStatus)

	stateResults, _, err := e.Allocator.Apportion(p, year)
	if err != nil {
		return nil, err
	}
	stateTax := decimal.Zero
	for _, r := range stateResults {
		stateTax = stateTax.Add(r.Total)
	}

	federalAfterCredits := decimal.Max(federalTax.Add(amt).Sub(p.Credits), decimal.Zero)
	totalTax := federalAfterCredits.Add(ficaResult.Total()).Add(niitTax).Add(stateTax)

	effectiveRate := decimal.Zero
	if agi.GreaterThan(decimal.Zero) {
		effectiveRate = totalTax.Div(agi)
	}

	withholding := p.FederalWithholding.Add(p.StateWithholding)
	estimated := p.TotalEstimatedPayments()

	e.logger.Debugf("calculated year=%d status=%s agi=%s total=%s amt=%s",
		year.Year, p.FilingStatus, agi.StringFixed(2), totalTax.StringFixed(2), amt.StringFixed(2))

	return &domain.TaxSummary{
		Year:         year.Year,
		FilingStatus: p.FilingStatus,

		AGI:                   agi,
		Deduction:             deduction,
		TaxableIncome:         taxable,
		OrdinaryTaxableIncome: ordinaryTaxable,
		PreferentialIncome:    preferential,

		OrdinaryTax:     ordinaryTax,
		CapitalGainsTax: capGainsTax,
		FederalTax:      federalTax,

		AMTI:                amti,
		TentativeMinimumTax: tmt,
		AMT:                 amt,

		SocialSecurityTax:  ficaResult.SocialSecurity,
		MedicareTax:        ficaResult.Medicare,
		AdditionalMedicare: ficaResult.AdditionalMedicare,
		FICATax:            ficaResult.Total(),

		NIIT: niitTax,

		StateTax:     stateTax,
		StateResults: stateResults,

		Credits:  p.Credits,
		TotalTax: totalTax,

		EffectiveRate: effectiveRate,
		MarginalRate:  federal.MarginalRate(ordinaryTaxable, p.FilingStatus),

		Withholding:       withholding,
		EstimatedPayments: estimated,
		BalanceDue:        totalTax.Sub(withholding).Sub(estimated),
	}, nil
}
