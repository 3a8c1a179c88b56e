// Package output renders calculation results, alerts and scenario
// comparisons as console text, JSON or CSV.
package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ziziou272/taxlens/internal/domain"
)

// Report bundles everything one run produced. Sections are optional; a
// formatter renders whatever is present.
type Report struct {
	Year    int                `json:"year"`
	Summary *domain.TaxSummary `json:"summary,omitempty"`
	Alerts  []domain.Alert     `json:"alerts,omitempty"`

	Comparisons *domain.ComparisonSet   `json:"comparisons,omitempty"`
	WashSales   []domain.WashSaleResult `json:"washSales,omitempty"`
	SalePlan    *domain.SalePlan        `json:"salePlan,omitempty"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter for a format name.
func GetFormatterByName(name string) (Formatter, error) {
	switch name {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", name)
	}
}

// FormatCurrency formats a decimal as a dollar amount.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal rate as a percentage.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
