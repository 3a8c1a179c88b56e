package domain

import "github.com/shopspring/decimal"

// StateTaxResult is one state module's output for its apportioned share of
// income. Estimated marks low-confidence results from the generic fallback.
type StateTaxResult struct {
	State             StateCode       `json:"state"`
	ApportionedIncome decimal.Decimal `json:"apportionedIncome"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	Surtax            decimal.Decimal `json:"surtax"`
	PayrollTax        decimal.Decimal `json:"payrollTax"`
	Total             decimal.Decimal `json:"total"`
	Estimated         bool            `json:"estimated"`
	Note              string          `json:"note,omitempty"`
}

// TaxSummary is the computed result for one profile and year. It is produced
// fresh per calculation and never mutated after construction.
type TaxSummary struct {
	Year         int          `json:"year"`
	FilingStatus FilingStatus `json:"filingStatus"`

	AGI                   decimal.Decimal `json:"agi"`
	Deduction             decimal.Decimal `json:"deduction"`
	TaxableIncome         decimal.Decimal `json:"taxableIncome"`
	OrdinaryTaxableIncome decimal.Decimal `json:"ordinaryTaxableIncome"`
	PreferentialIncome    decimal.Decimal `json:"preferentialIncome"`

	OrdinaryTax     decimal.Decimal `json:"ordinaryTax"`
	CapitalGainsTax decimal.Decimal `json:"capitalGainsTax"`
	FederalTax      decimal.Decimal `json:"federalTax"`

	AMTI                decimal.Decimal `json:"amti"`
	TentativeMinimumTax decimal.Decimal `json:"tentativeMinimumTax"`
	AMT                 decimal.Decimal `json:"amt"`

	SocialSecurityTax  decimal.Decimal `json:"socialSecurityTax"`
	MedicareTax        decimal.Decimal `json:"medicareTax"`
	AdditionalMedicare decimal.Decimal `json:"additionalMedicare"`
	FICATax            decimal.Decimal `json:"ficaTax"`

	NIIT decimal.Decimal `json:"niit"`

	StateTax     decimal.Decimal  `json:"stateTax"`
	StateResults []StateTaxResult `json:"stateResults,omitempty"`

	Credits  decimal.Decimal `json:"credits"`
	TotalTax decimal.Decimal `json:"totalTax"`

	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	MarginalRate  decimal.Decimal `json:"marginalRate"`

	Withholding       decimal.Decimal `json:"withholding"`
	EstimatedPayments decimal.Decimal `json:"estimatedPayments"`
	// BalanceDue is negative for a refund.
	BalanceDue decimal.Decimal `json:"balanceDue"`
}
