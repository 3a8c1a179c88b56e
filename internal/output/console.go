package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ziziou272/taxlens/internal/domain"
)

// ConsoleFormatter renders a human-readable text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "TAX SUMMARY %d\n", report.Year)
	buf.WriteString(strings.Repeat("=", 60) + "\n")

	if s := report.Summary; s != nil {
		writeSummary(&buf, s)
	}
	if len(report.Alerts) > 0 {
		buf.WriteString("\nALERTS\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		writeAlerts(&buf, report.Alerts)
	}
	if cs := report.Comparisons; cs != nil {
		buf.WriteString("\nSCENARIOS\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		writeComparisons(&buf, cs)
	}
	if len(report.WashSales) > 0 {
		buf.WriteString("\nWASH SALES\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		for _, w := range report.WashSales {
			fmt.Fprintf(&buf, "%-8s sold %s on %s: loss %s, disallowed %s, allowed %s\n",
				w.Security, w.SharesSold.StringFixed(0), w.SaleDate.Format("2006-01-02"),
				FormatCurrency(w.TotalLoss), FormatCurrency(w.DisallowedLoss), FormatCurrency(w.AllowedLoss))
		}
	}
	if p := report.SalePlan; p != nil {
		buf.WriteString("\nSALE PLAN\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		if p.HasConflict {
			fmt.Fprintf(&buf, "Selling %s on %s conflicts with %d recent purchase(s); a loss sale is clear on %s\n",
				p.Security, p.ProposedDate.Format("2006-01-02"), len(p.Conflicts), p.ClearDate.Format("2006-01-02"))
		} else {
			fmt.Fprintf(&buf, "Selling %s on %s has no wash-sale conflict\n",
				p.Security, p.ProposedDate.Format("2006-01-02"))
		}
	}
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, s *domain.TaxSummary) {
	fmt.Fprintf(buf, "Filing status:        %s\n", s.FilingStatus)
	fmt.Fprintf(buf, "AGI:                  %s\n", FormatCurrency(s.AGI))
	fmt.Fprintf(buf, "Deduction:            %s\n", FormatCurrency(s.Deduction))
	fmt.Fprintf(buf, "Taxable income:       %s\n", FormatCurrency(s.TaxableIncome))
	buf.WriteString("\n")
	fmt.Fprintf(buf, "Ordinary tax:         %s\n", FormatCurrency(s.OrdinaryTax))
	fmt.Fprintf(buf, "Capital gains tax:    %s\n", FormatCurrency(s.CapitalGainsTax))
	fmt.Fprintf(buf, "Federal income tax:   %s\n", FormatCurrency(s.FederalTax))
	if s.AMT.IsPositive() {
		fmt.Fprintf(buf, "AMT:                  %s  (TMT %s)\n", FormatCurrency(s.AMT), FormatCurrency(s.TentativeMinimumTax))
	}
	fmt.Fprintf(buf, "FICA:                 %s\n", FormatCurrency(s.FICATax))
	if !s.NIIT.IsZero() {
		fmt.Fprintf(buf, "NIIT:                 %s\n", FormatCurrency(s.NIIT))
	}
	for _, st := range s.StateResults {
		note := ""
		if st.Note != "" {
			note = "  (" + st.Note + ")"
		}
		fmt.Fprintf(buf, "State %-2s:             %s%s\n", st.State, FormatCurrency(st.Total), note)
	}
	buf.WriteString("\n")
	fmt.Fprintf(buf, "TOTAL TAX:            %s\n", FormatCurrency(s.TotalTax))
	fmt.Fprintf(buf, "Effective rate:       %s\n", FormatPercentage(s.EffectiveRate))
	fmt.Fprintf(buf, "Marginal rate:        %s\n", FormatPercentage(s.MarginalRate))
	fmt.Fprintf(buf, "Withheld + estimated: %s\n", FormatCurrency(s.Withholding.Add(s.EstimatedPayments)))
	if s.BalanceDue.IsNegative() {
		fmt.Fprintf(buf, "Refund:               %s\n", FormatCurrency(s.BalanceDue.Neg()))
	} else {
		fmt.Fprintf(buf, "Balance due:          %s\n", FormatCurrency(s.BalanceDue))
	}
}

func writeAlerts(buf *bytes.Buffer, alerts []domain.Alert) {
	for _, a := range alerts {
		line := fmt.Sprintf("[%s] %s", a.Priority, a.Title)
		if a.Deadline != nil {
			line += " (due " + a.Deadline.Format("2006-01-02") + ")"
		}
		buf.WriteString(line + "\n")
		fmt.Fprintf(buf, "    %s\n", a.Message)
	}
}

func writeComparisons(buf *bytes.Buffer, cs *domain.ComparisonSet) {
	fmt.Fprintf(buf, "%-24s %14s %12s\n", "Scenario", "Total tax", "Delta")
	fmt.Fprintf(buf, "%-24s %14s %12s\n", "baseline", FormatCurrency(cs.BaselineSummary.TotalTax), "")
	for _, c := range cs.Comparisons {
		fmt.Fprintf(buf, "%-24s %14s %12s\n", c.Name, FormatCurrency(c.Alternative.TotalTax), FormatCurrency(c.Delta))
	}
	fmt.Fprintf(buf, "\nBest: %s at %s\n", cs.Best, FormatCurrency(cs.BestTotalTax))
}
