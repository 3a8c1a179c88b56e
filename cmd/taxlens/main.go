package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ziziou272/taxlens/internal/alerts"
	"github.com/ziziou272/taxlens/internal/calculation"
	"github.com/ziziou272/taxlens/internal/config"
	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/output"
	"github.com/ziziou272/taxlens/internal/tui"
	"github.com/ziziou272/taxlens/internal/washsale"
	"github.com/ziziou272/taxlens/internal/whatif"
	"github.com/ziziou272/taxlens/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// slogAdapter implements calculation.Logger on top of the process logger.
type slogAdapter struct{ log *slog.Logger }

func (l slogAdapter) Debugf(format string, args ...any) { l.log.Debug(fmt.Sprintf(format, args...)) }
func (l slogAdapter) Infof(format string, args ...any)  { l.log.Info(fmt.Sprintf(format, args...)) }
func (l slogAdapter) Warnf(format string, args ...any)  { l.log.Warn(fmt.Sprintf(format, args...)) }
func (l slogAdapter) Errorf(format string, args ...any) { l.log.Error(fmt.Sprintf(format, args...)) }

var rootCmd = &cobra.Command{
	Use:   "taxlens",
	Short: "Tax projection and scenario comparison CLI",
	Long:  "Federal, state and equity-compensation tax projection with scenario comparison, AMT-aware ISO sizing and wash-sale checks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			logging.SetupWithLevel(slog.LevelDebug)
		} else {
			logging.Setup()
		}
		slog.SetDefault(slog.Default().With("run_id", uuid.NewString()))
	},
}

func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(slogAdapter{slog.Default()})
	}
	return engine
}

func loadDocument(cmd *cobra.Command, inputFile string) (*config.Document, *domain.TaxYear, error) {
	parser := config.NewInputParser()
	doc, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, nil, err
	}
	yearFile, _ := cmd.Flags().GetString("year-file")
	year, err := config.ResolveTaxYear(doc.Year, yearFile)
	if err != nil {
		return nil, nil, err
	}
	return doc, year, nil
}

func writeReport(cmd *cobra.Command, report *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	f, err := output.GetFormatterByName(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate the full tax summary for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, year, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		summary, err := newEngine(cmd).Calculate(&doc.Profile, year)
		if err != nil {
			return err
		}
		return writeReport(cmd, &output.Report{Year: year.Year, Summary: summary})
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts [input-file]",
	Short: "Check a profile for filing risks and deadlines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, year, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		summary, err := newEngine(cmd).Calculate(&doc.Profile, year)
		if err != nil {
			return err
		}

		asOf := time.Now()
		if s, _ := cmd.Flags().GetString("as-of"); s != "" {
			asOf, err = time.Parse("2006-01-02", s)
			if err != nil {
				return fmt.Errorf("invalid --as-of date: %w", err)
			}
		}
		found := alerts.NewEngine(year, asOf).Check(&doc.Profile, summary)
		return writeReport(cmd, &output.Report{Year: year.Year, Summary: summary, Alerts: found})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Score every scenario in the input against the baseline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, year, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		if len(doc.Scenario) == 0 {
			return fmt.Errorf("input file has no scenarios to compare")
		}
		set, err := whatif.NewEngine(newEngine(cmd)).CompareAll(&doc.Profile, doc.Scenario, year)
		if err != nil {
			return err
		}
		return writeReport(cmd, &output.Report{Year: year.Year, Comparisons: set})
	},
}

var optimizeISOCmd = &cobra.Command{
	Use:   "optimize-iso [input-file]",
	Short: "Find the largest ISO exercise within an AMT budget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, year, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}

		budget := decimal.Zero
		if s, _ := cmd.Flags().GetString("amt-budget"); s != "" {
			budget, err = decimal.NewFromString(s)
			if err != nil {
				return fmt.Errorf("invalid --amt-budget: %w", err)
			}
		}

		result, err := whatif.FindOptimalISOExercise(newEngine(cmd), &doc.Profile, year, whatif.ISOOptimizerConfig{
			AMTBudget: budget,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Exercise %s shares (bargain element %s)\n",
			result.Shares.StringFixed(0), output.FormatCurrency(result.BargainElement))
		fmt.Printf("AMT at that size: %s, total tax %s\n",
			output.FormatCurrency(result.AMT), output.FormatCurrency(result.TotalTax))
		if !result.Converged {
			fmt.Println("Search did not converge to one share; the reported size is the largest verified within budget")
		}
		return nil
	},
}

var washsaleCmd = &cobra.Command{
	Use:   "washsale [input-file]",
	Short: "Detect wash sales in the transaction ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, year, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		results, err := washsale.Detect(doc.Profile.Lots)
		if err != nil {
			return err
		}

		report := &output.Report{Year: year.Year, WashSales: results}
		if sec, _ := cmd.Flags().GetString("plan-security"); sec != "" {
			dateStr, _ := cmd.Flags().GetString("plan-date")
			proposed, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid --plan-date: %w", err)
			}
			plan, err := washsale.PlanSale(doc.Profile.Lots, sec, proposed)
			if err != nil {
				return err
			}
			report.SalePlan = plan
		}
		return writeReport(cmd, report)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := loadDocument(cmd, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", args[0])
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [input-file]",
	Short: "Browse scenarios interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(tui.NewModel(args[0]), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxlens %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("year-file", "", "Override parameter tables from a YAML file")

	for _, c := range []*cobra.Command{calculateCmd, alertsCmd, compareCmd, washsaleCmd} {
		c.Flags().String("format", "console", "Output format (console, json, csv)")
	}
	alertsCmd.Flags().String("as-of", "", "Evaluate deadlines as of this date (YYYY-MM-DD)")
	optimizeISOCmd.Flags().String("amt-budget", "0", "Largest additional AMT to accept")
	washsaleCmd.Flags().String("plan-security", "", "Also check a prospective sale of this security")
	washsaleCmd.Flags().String("plan-date", "", "Proposed sale date for --plan-security (YYYY-MM-DD)")

	rootCmd.AddCommand(calculateCmd, alertsCmd, compareCmd, optimizeISOCmd, washsaleCmd, validateCmd, tuiCmd, versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
