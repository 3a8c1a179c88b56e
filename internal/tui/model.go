// Package tui is the interactive scenario browser: it loads an input
// document, scores every scenario against the baseline and lets the user
// walk through the comparisons and alerts.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziziou272/taxlens/internal/alerts"
	"github.com/ziziou272/taxlens/internal/calculation"
	"github.com/ziziou272/taxlens/internal/config"
	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/whatif"
)

// Model holds the whole application state.
type Model struct {
	inputPath string

	doc  *config.Document
	year *domain.TaxYear

	set      *domain.ComparisonSet
	alertSet []domain.Alert

	table table.Model

	width  int
	height int

	loading bool
	err     error
}

type docLoadedMsg struct {
	doc  *config.Document
	year *domain.TaxYear
}

type resultsMsg struct {
	set    *domain.ComparisonSet
	alerts []domain.Alert
}

type errorMsg struct{ err error }

// NewModel creates the scenario browser for one input file.
func NewModel(inputPath string) Model {
	columns := []table.Column{
		{Title: "Scenario", Width: 24},
		{Title: "Total tax", Width: 14},
		{Title: "Delta", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	return Model{
		inputPath: inputPath,
		table:     t,
		width:     80,
		height:    24,
		loading:   true,
	}
}

// Init loads the input document.
func (m Model) Init() tea.Cmd {
	return loadDocCmd(m.inputPath)
}

func loadDocCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		doc, err := parser.LoadFromFile(path)
		if err != nil {
			return errorMsg{err}
		}
		year, err := domain.ForYear(doc.Year)
		if err != nil {
			return errorMsg{err}
		}
		return docLoadedMsg{doc: doc, year: year}
	}
}

func calculateCmd(doc *config.Document, year *domain.TaxYear) tea.Cmd {
	return func() tea.Msg {
		calc := calculation.NewCalculationEngine()
		engine := whatif.NewEngine(calc)
		set, err := engine.CompareAll(&doc.Profile, doc.Scenario, year)
		if err != nil {
			return errorMsg{err}
		}
		checker := alerts.NewEngine(year, time.Now())
		found := checker.Check(&doc.Profile, set.BaselineSummary)
		return resultsMsg{set: set, alerts: found}
	}
}
