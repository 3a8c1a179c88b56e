package tui

import (
	"fmt"
	"strings"

	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/output"
)

// View renders the scenario table, the selected scenario's detail and the
// baseline alerts.
func (m Model) View() string {
	var b strings.Builder

	title := "taxlens"
	if m.year != nil {
		title = fmt.Sprintf("taxlens %d", m.year.Year)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}
	if m.loading || m.set == nil {
		b.WriteString(labelStyle.Render("calculating...") + "\n")
		return b.String()
	}

	b.WriteString(m.table.View() + "\n")
	b.WriteString(m.detailView())
	b.WriteString(m.alertView())
	b.WriteString(helpStyle.Render("↑/↓ select  r recalculate  q quit"))
	return b.String()
}

// selectedSummary maps the table cursor to a summary: row 0 is the baseline.
func (m Model) selectedSummary() (string, *domain.TaxSummary) {
	idx := m.table.Cursor()
	if idx <= 0 || idx > len(m.set.Comparisons) {
		return "baseline", m.set.BaselineSummary
	}
	c := m.set.Comparisons[idx-1]
	return c.Name, c.Alternative
}

func (m Model) detailView() string {
	name, s := m.selectedSummary()
	var b strings.Builder

	header := name
	if name == m.set.Best {
		header = bestStyle.Render(name + "  (best)")
	}
	b.WriteString(sectionStyle.Render("Detail: "+header) + "\n")

	row := func(label string, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-22s", label)) + valueStyle.Render(value) + "\n")
	}
	row("AGI", output.FormatCurrency(s.AGI))
	row("Taxable income", output.FormatCurrency(s.TaxableIncome))
	row("Federal income tax", output.FormatCurrency(s.FederalTax))
	if s.AMT.IsPositive() {
		row("AMT", output.FormatCurrency(s.AMT))
	}
	row("FICA", output.FormatCurrency(s.FICATax))
	if !s.NIIT.IsZero() {
		row("NIIT", output.FormatCurrency(s.NIIT))
	}
	for _, st := range s.StateResults {
		row("State "+string(st.State), output.FormatCurrency(st.Total))
	}
	row("Total tax", output.FormatCurrency(s.TotalTax))
	row("Effective rate", output.FormatPercentage(s.EffectiveRate))
	return b.String()
}

func (m Model) alertView() string {
	if len(m.alertSet) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Alerts (baseline)") + "\n")
	for _, a := range m.alertSet {
		style := alertPlanningStyle
		switch a.Priority {
		case domain.PriorityImmediate:
			style = alertImmediateStyle
		case domain.PriorityThisWeek:
			style = alertWeekStyle
		case domain.PriorityThisMonth:
			style = alertMonthStyle
		}
		line := fmt.Sprintf("  [%s] %s", a.Priority, a.Title)
		if a.Deadline != nil {
			line += "  due " + a.Deadline.Format("2006-01-02")
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
