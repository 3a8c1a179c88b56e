package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ziziou272/taxlens/internal/domain"
)

func TestCapitalGainsTaxStacking(t *testing.T) {
	calc := NewFederalTaxCalculator(domain.TaxYear2025())

	tests := []struct {
		name     string
		status   domain.FilingStatus
		ordinary decimal.Decimal
		pref     decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "no preferential income",
			status:   domain.FilingSingle,
			ordinary: decimal.NewFromInt(100000),
			pref:     decimal.Zero,
			expected: decimal.Zero,
		},
		{
			name:     "entirely inside zero bracket",
			status:   domain.FilingSingle,
			ordinary: decimal.NewFromInt(30000),
			pref:     decimal.NewFromInt(10000),
			expected: decimal.Zero,
		},
		{
			name:     "straddles zero and fifteen",
			status:   domain.FilingSingle,
			ordinary: decimal.NewFromInt(40000),
			pref:     decimal.NewFromInt(20000),
			// 8,350 at 0%, 11,650 at 15%
			expected: decimal.NewFromFloat(1747.50),
		},
		{
			name:     "married fifty thousand on top of 470k",
			status:   domain.FilingMarriedJointly,
			ordinary: decimal.NewFromInt(470000),
			pref:     decimal.NewFromInt(50000),
			expected: decimal.NewFromInt(7500),
		},
		{
			name:     "reaches twenty percent bracket",
			status:   domain.FilingSingle,
			ordinary: decimal.NewFromInt(533400),
			pref:     decimal.NewFromInt(100000),
			expected: decimal.NewFromInt(20000),
		},
		{
			name:     "ordinary income alone pushes gains past zero bracket",
			status:   domain.FilingSingle,
			ordinary: decimal.NewFromInt(48350),
			pref:     decimal.NewFromInt(1000),
			expected: decimal.NewFromInt(150),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CapitalGainsTax(tt.ordinary, tt.pref, tt.status)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestCapitalGainsBreakpointStep(t *testing.T) {
	calc := NewFederalTaxCalculator(domain.TaxYear2025())
	ordinary := decimal.NewFromInt(40000)

	// A dollar of gain below the 0% breakpoint is free; the dollar that
	// crosses it is taxed at 15% while ordinary income is untouched.
	below := calc.CapitalGainsTax(ordinary, decimal.NewFromInt(8350), domain.FilingSingle)
	above := calc.CapitalGainsTax(ordinary, decimal.NewFromInt(8351), domain.FilingSingle)
	assert.True(t, below.IsZero(), "gain under breakpoint should be untaxed, got %s", below)
	assert.True(t, above.Sub(below).Equal(decimal.NewFromFloat(0.15)),
		"crossing dollar taxed at %s, want 0.15", above.Sub(below))
}
