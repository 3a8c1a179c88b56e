package statetax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziziou272/taxlens/internal/domain"
)

func singleProfile() *domain.TaxProfile {
	return &domain.TaxProfile{FilingStatus: domain.FilingSingle}
}

func TestModuleForSelection(t *testing.T) {
	tests := []struct {
		name  string
		state domain.StateCode
	}{
		{"california module", domain.StateCA},
		{"new york module", domain.StateNY},
		{"washington module", domain.StateWA},
		{"texas no income tax", domain.StateTX},
		{"oregon falls back to estimate", domain.StateCode("OR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ModuleFor(tt.state)
			require.NotNil(t, m)
			assert.Equal(t, tt.state, m.Code())
		})
	}
}

func TestCaliforniaCompute(t *testing.T) {
	year := domain.TaxYear2025()
	ca := &California{}

	t.Run("first bracket only", func(t *testing.T) {
		// 16,296 minus the 5,540 deduction leaves exactly the 1% bracket.
		income := StateIncome{Wages: decimal.NewFromInt(16296)}
		result, err := ca.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(107.56).Equal(result.IncomeTax), "income tax %s", result.IncomeTax)
		assert.True(t, result.Surtax.IsZero())
	})

	t.Run("sdi on wages only", func(t *testing.T) {
		income := StateIncome{
			Wages:         decimal.NewFromInt(100000),
			LongTermGains: decimal.NewFromInt(50000),
		}
		result, err := ca.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1200).Equal(result.PayrollTax), "sdi %s", result.PayrollTax)
	})

	t.Run("mental health surtax above one million", func(t *testing.T) {
		income := StateIncome{Wages: decimal.NewFromInt(1205540)}
		result, err := ca.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		// Taxable 1.2M: 1% of the 200,000 above the threshold.
		assert.True(t, decimal.NewFromInt(2000).Equal(result.Surtax), "surtax %s", result.Surtax)
	})

	t.Run("gains taxed as ordinary income", func(t *testing.T) {
		wagesOnly := StateIncome{Wages: decimal.NewFromInt(100000)}
		withGains := StateIncome{Wages: decimal.NewFromInt(50000), LongTermGains: decimal.NewFromInt(50000)}
		a, err := ca.Compute(singleProfile(), wagesOnly, year)
		require.NoError(t, err)
		b, err := ca.Compute(singleProfile(), withGains, year)
		require.NoError(t, err)
		assert.True(t, a.IncomeTax.Equal(b.IncomeTax), "gains should not get a preferential state rate")
	})
}

func TestNewYorkCompute(t *testing.T) {
	year := domain.TaxYear2025()
	ny := &NewYork{}

	base := StateIncome{Wages: decimal.NewFromInt(18500)}

	t.Run("state tax only", func(t *testing.T) {
		result, err := ny.Compute(singleProfile(), base, year)
		require.NoError(t, err)
		// Taxable 10,500: 4% of 8,500 plus 4.5% of 2,000.
		assert.True(t, decimal.NewFromInt(430).Equal(result.IncomeTax), "income tax %s", result.IncomeTax)
		assert.True(t, result.Surtax.IsZero())
		assert.Empty(t, result.Note)
	})

	t.Run("nyc resident add-on", func(t *testing.T) {
		income := base
		income.Residency.NYCResident = true
		result, err := ny.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(323.19).Equal(result.Surtax), "nyc %s", result.Surtax)
		assert.Contains(t, result.Note, "NYC")
	})

	t.Run("yonkers resident surcharge", func(t *testing.T) {
		income := base
		income.Residency.YonkersResident = true
		result, err := ny.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		// 16.75% of the state tax.
		expected := decimal.NewFromInt(430).Mul(decimal.NewFromFloat(0.1675))
		assert.True(t, expected.Equal(result.Surtax), "yonkers %s", result.Surtax)
	})

	t.Run("yonkers nonresident earnings tax", func(t *testing.T) {
		income := base
		income.Residency.WorksInYonkers = true
		result, err := ny.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		expected := base.Wages.Mul(decimal.NewFromFloat(0.005))
		assert.True(t, expected.Equal(result.Surtax), "yonkers %s", result.Surtax)
	})

	t.Run("resident surcharge wins over nonresident", func(t *testing.T) {
		income := base
		income.Residency.YonkersResident = true
		income.Residency.WorksInYonkers = true
		result, err := ny.Compute(singleProfile(), income, year)
		require.NoError(t, err)
		expected := decimal.NewFromInt(430).Mul(decimal.NewFromFloat(0.1675))
		assert.True(t, expected.Equal(result.Surtax))
	})
}

func TestWashingtonCompute(t *testing.T) {
	year := domain.TaxYear2025()
	wa := &Washington{}

	tests := []struct {
		name     string
		income   StateIncome
		expected decimal.Decimal
	}{
		{
			name:     "wages never taxed",
			income:   StateIncome{Wages: decimal.NewFromInt(500000)},
			expected: decimal.Zero,
		},
		{
			name:     "gains below exemption",
			income:   StateIncome{LongTermGains: decimal.NewFromInt(250000)},
			expected: decimal.Zero,
		},
		{
			name:     "gains above exemption",
			income:   StateIncome{LongTermGains: decimal.NewFromInt(300000)},
			expected: decimal.NewFromInt(2100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := wa.Compute(singleProfile(), tt.income, year)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result.Total), "total %s, want %s", result.Total, tt.expected)
		})
	}
}

func TestNoIncomeTaxAndFallback(t *testing.T) {
	year := domain.TaxYear2025()
	income := StateIncome{Wages: decimal.NewFromInt(100000)}

	tx, err := ModuleFor(domain.StateTX).Compute(singleProfile(), income, year)
	require.NoError(t, err)
	assert.True(t, tx.Total.IsZero())

	or, err := ModuleFor(domain.StateCode("OR")).Compute(singleProfile(), income, year)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(or.Total), "fallback %s", or.Total)
	assert.True(t, or.Estimated, "fallback results are estimates")
}
