package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziziou272/taxlens/internal/domain"
)

func sampleSummary() *domain.TaxSummary {
	return &domain.TaxSummary{
		AGI:           decimal.NewFromInt(550000),
		TaxableIncome: decimal.NewFromInt(520000),
		FederalTax:    decimal.NewFromInt(112026),
		FICATax:       decimal.NewFromFloat(20418.20),
		NIIT:          decimal.NewFromInt(1900),
		TotalTax:      decimal.NewFromFloat(134344.20),
		EffectiveRate: decimal.NewFromFloat(0.2443),
		MarginalRate:  decimal.NewFromFloat(0.35),
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"console", "console"},
		{"", "console"},
		{"json", "json"},
		{"csv", "csv"},
	}
	for _, tt := range tests {
		f, err := GetFormatterByName(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, f.Name())
	}

	_, err := GetFormatterByName("xml")
	assert.Error(t, err)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$-300.00", FormatCurrency(decimal.NewFromInt(-300)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "24.4%", FormatPercentage(decimal.NewFromFloat(0.2443)))
	assert.Equal(t, "0.0%", FormatPercentage(decimal.Zero))
}

func TestConsoleFormatter(t *testing.T) {
	report := &Report{
		Year:    2025,
		Summary: sampleSummary(),
		Alerts: []domain.Alert{
			{
				Priority: domain.PriorityImmediate,
				Category: domain.CategoryEstimatedPayments,
				Title:    "Q2 estimated payment behind pace",
			},
		},
	}

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "2025")
	assert.Contains(t, text, "$134344.20")
	assert.Contains(t, text, "Q2 estimated payment behind pace")
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	report := &Report{Year: 2025, Summary: sampleSummary()}

	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 2025, decoded.Year)
	require.NotNil(t, decoded.Summary)
	assert.True(t, report.Summary.TotalTax.Equal(decoded.Summary.TotalTax))
}

func TestCSVFormatterComparisons(t *testing.T) {
	base := sampleSummary()
	alt := sampleSummary()
	alt.TotalTax = decimal.NewFromInt(120000)

	report := &Report{
		Year: 2025,
		Comparisons: &domain.ComparisonSet{
			BaselineSummary: base,
			Comparisons: []domain.ScenarioComparison{
				{Name: "defer-vest", Alternative: alt, Delta: alt.TotalTax.Sub(base.TotalTax)},
			},
			Best:         "defer-vest",
			BestTotalTax: alt.TotalTax,
		},
	}

	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header, baseline, one scenario")
	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "baseline", rows[1][0])
	assert.Equal(t, "defer-vest", rows[2][0])
	assert.Equal(t, "-14344.20", rows[2][9])
}

func TestCSVFormatterSummaryOnly(t *testing.T) {
	report := &Report{Year: 2025, Summary: sampleSummary()}

	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "134344.20", rows[1][7])
}
