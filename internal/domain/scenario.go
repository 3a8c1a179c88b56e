package domain

import "github.com/shopspring/decimal"

// Scenario is a named alternative profile evaluated against a baseline.
type Scenario struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Profile     TaxProfile `yaml:"profile" json:"profile"`
}

// ScenarioComparison holds both summaries and the signed tax delta
// (alternative minus baseline; negative means the alternative saves money).
type ScenarioComparison struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Baseline    *TaxSummary `json:"baseline"`
	Alternative *TaxSummary `json:"alternative"`

	Delta decimal.Decimal `json:"delta"`
}

// Savings is the positive amount saved by the alternative, zero otherwise.
func (c *ScenarioComparison) Savings() decimal.Decimal {
	if c.Delta.LessThan(decimal.Zero) {
		return c.Delta.Neg()
	}
	return decimal.Zero
}

// ComparisonSet is the result of evaluating a baseline against a batch of
// alternatives. Best names the lowest-total-tax scenario among the baseline
// and all alternatives, ties broken by submission order (baseline first).
type ComparisonSet struct {
	BaselineSummary *TaxSummary          `json:"baselineSummary"`
	Comparisons     []ScenarioComparison `json:"comparisons"`
	Best            string               `json:"best"`
	BestTotalTax    decimal.Decimal      `json:"bestTotalTax"`
}
