package output

import (
	"bytes"
	"encoding/csv"

	"github.com/ziziou272/taxlens/internal/domain"
)

// CSVFormatter implements the summary CSV output: one row for the baseline
// and one per scenario, or a single row when only a summary is present.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "AGI", "FederalTax", "AMT", "FICA", "NIIT", "StateTax", "TotalTax", "EffectiveRate", "Delta"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if cs := report.Comparisons; cs != nil {
		b := cs.BaselineSummary
		if err := w.Write(summaryRow("baseline", b, "")); err != nil {
			return nil, err
		}
		for _, comp := range cs.Comparisons {
			if err := w.Write(summaryRow(comp.Name, comp.Alternative, comp.Delta.StringFixed(2))); err != nil {
				return nil, err
			}
		}
	} else if report.Summary != nil {
		if err := w.Write(summaryRow("baseline", report.Summary, "")); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryRow(name string, s *domain.TaxSummary, delta string) []string {
	return []string{
		name,
		s.AGI.StringFixed(2),
		s.FederalTax.StringFixed(2),
		s.AMT.StringFixed(2),
		s.FICATax.StringFixed(2),
		s.NIIT.StringFixed(2),
		s.StateTax.StringFixed(2),
		s.TotalTax.StringFixed(2),
		s.EffectiveRate.StringFixed(4),
		delta,
	}
}
