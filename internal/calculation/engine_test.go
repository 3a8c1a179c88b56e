package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziziou272/taxlens/internal/domain"
)

func TestCalculateSingleWageEarner(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus: domain.FilingSingle,
		Wages:        decimal.NewFromInt(75000),
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(75000).Equal(summary.AGI))
	assert.True(t, decimal.NewFromInt(60000).Equal(summary.TaxableIncome))
	assert.True(t, decimal.NewFromInt(8114).Equal(summary.FederalTax), "federal %s", summary.FederalTax)
	assert.True(t, decimal.NewFromFloat(5737.50).Equal(summary.FICATax), "fica %s", summary.FICATax)
	assert.True(t, summary.AMT.IsZero())
	assert.True(t, summary.NIIT.IsZero())
	assert.True(t, decimal.NewFromFloat(13851.50).Equal(summary.TotalTax), "total %s", summary.TotalTax)
	assert.True(t, decimal.NewFromFloat(0.185).Equal(summary.EffectiveRate.Round(3)),
		"effective rate %s", summary.EffectiveRate)
	assert.True(t, decimal.NewFromFloat(0.22).Equal(summary.MarginalRate))
}

func TestCalculateMarriedWithRSUAndGains(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus:  domain.FilingMarriedJointly,
		Wages:         decimal.NewFromInt(300000),
		RSUVestIncome: decimal.NewFromInt(200000),
		LongTermGains: decimal.NewFromInt(50000),
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(550000).Equal(summary.AGI))
	assert.True(t, decimal.NewFromInt(50000).Equal(summary.PreferentialIncome))
	assert.True(t, decimal.NewFromInt(112026).Equal(summary.FederalTax), "federal %s", summary.FederalTax)
	assert.True(t, decimal.NewFromFloat(20418.20).Equal(summary.FICATax), "fica %s", summary.FICATax)
	assert.True(t, decimal.NewFromInt(1900).Equal(summary.NIIT), "niit %s", summary.NIIT)
	assert.True(t, summary.AMT.IsZero(), "no AMT expected, got %s", summary.AMT)
	assert.True(t, decimal.NewFromFloat(134344.20).Equal(summary.TotalTax), "total %s", summary.TotalTax)
}

func TestCalculateISOExerciseTriggersAMT(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus:      domain.FilingSingle,
		Wages:             decimal.NewFromInt(300000),
		ISOBargainElement: decimal.NewFromInt(200000),
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	// The bargain element stays out of AGI and regular tax but lands in AMTI.
	assert.True(t, decimal.NewFromInt(300000).Equal(summary.AGI))
	assert.True(t, decimal.NewFromInt(485000).Equal(summary.AMTI), "amti %s", summary.AMTI)
	assert.True(t, decimal.NewFromFloat(69297.25).Equal(summary.FederalTax), "federal %s", summary.FederalTax)
	assert.True(t, decimal.NewFromFloat(37182.75).Equal(summary.AMT), "amt %s", summary.AMT)
	assert.True(t, decimal.NewFromFloat(16168.20).Equal(summary.FICATax), "fica %s", summary.FICATax)
	assert.True(t, decimal.NewFromFloat(122648.20).Equal(summary.TotalTax), "total %s", summary.TotalTax)
}

func TestCalculateWashingtonExcise(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus:  domain.FilingSingle,
		Wages:         decimal.NewFromInt(200000),
		LongTermGains: decimal.NewFromInt(300000),
		Residency:     []domain.StateResidency{{State: domain.StateWA, Days: 365}},
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	// Only the 30,000 above the exemption is taxed, at 7%.
	assert.True(t, decimal.NewFromInt(2100).Equal(summary.StateTax), "state %s", summary.StateTax)
}

func TestCalculateCreditsFloorFederalAtZero(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus: domain.FilingSingle,
		Wages:        decimal.NewFromInt(40000),
		Credits:      decimal.NewFromInt(50000),
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	// Credits wipe out income tax but never FICA.
	assert.True(t, summary.TotalTax.Equal(summary.FICATax), "total %s, fica %s", summary.TotalTax, summary.FICATax)
}

func TestCalculateBalanceDue(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus:       domain.FilingSingle,
		Wages:              decimal.NewFromInt(75000),
		FederalWithholding: decimal.NewFromInt(20000),
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	// Overwithheld: the balance is a refund, reported negative.
	assert.True(t, summary.BalanceDue.IsNegative())
	assert.True(t, summary.BalanceDue.Equal(summary.TotalTax.Sub(decimal.NewFromInt(20000))))
}

func TestCalculateRejectsInvalidProfile(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name    string
		profile domain.TaxProfile
	}{
		{
			name:    "unknown filing status",
			profile: domain.TaxProfile{FilingStatus: "widowed"},
		},
		{
			name: "negative wages",
			profile: domain.TaxProfile{
				FilingStatus: domain.FilingSingle,
				Wages:        decimal.NewFromInt(-100),
			},
		},
		{
			name: "residency days exceed year",
			profile: domain.TaxProfile{
				FilingStatus: domain.FilingSingle,
				Residency: []domain.StateResidency{
					{State: domain.StateCA, Days: 200},
					{State: domain.StateNY, Days: 200},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Calculate(&tt.profile, domain.TaxYear2025())
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCalculateCapitalLossLimit(t *testing.T) {
	engine := NewCalculationEngine()
	profile := &domain.TaxProfile{
		FilingStatus:   domain.FilingSingle,
		Wages:          decimal.NewFromInt(100000),
		ShortTermGains: decimal.NewFromInt(-20000),
	}

	summary, err := engine.Calculate(profile, domain.TaxYear2025())
	require.NoError(t, err)

	// Only 3,000 of the 20,000 loss offsets ordinary income this year.
	assert.True(t, decimal.NewFromInt(97000).Equal(summary.AGI), "agi %s", summary.AGI)
}
