package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/output"
)

// Update routes messages to the table and handles the load/calculate cycle.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(4, m.height-18))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.doc != nil {
				m.loading = true
				return m, calculateCmd(m.doc, m.year)
			}
		}

	case docLoadedMsg:
		m.doc = msg.doc
		m.year = msg.year
		return m, calculateCmd(m.doc, m.year)

	case resultsMsg:
		m.loading = false
		m.set = msg.set
		m.alertSet = msg.alerts
		m.table.SetRows(comparisonRows(msg.set))
		return m, nil

	case errorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func comparisonRows(set *domain.ComparisonSet) []table.Row {
	rows := []table.Row{{
		"baseline",
		output.FormatCurrency(set.BaselineSummary.TotalTax),
		"",
	}}
	for _, c := range set.Comparisons {
		rows = append(rows, table.Row{
			c.Name,
			output.FormatCurrency(c.Alternative.TotalTax),
			output.FormatCurrency(c.Delta),
		})
	}
	return rows
}
