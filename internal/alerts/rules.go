package alerts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/calculation"
	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/washsale"
)

// highIncomeSafeHarborAGI is the prior-year AGI above which the safe harbor
// requires 110% of prior-year liability instead of 100%.
var highIncomeSafeHarborAGI = decimal.NewFromInt(150000)

var ninetyPercent = decimal.NewFromFloat(0.90)
var oneHundredTenPercent = decimal.NewFromFloat(1.10)

// quarterlyDueDates returns the four estimated-payment deadlines for a tax
// year; the fourth falls in mid-January of the following year.
func quarterlyDueDates(year int) []time.Time {
	return []time.Time{
		time.Date(year, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.September, 15, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// requiredAnnualPayment is the smaller of 90% of the current liability and
// the prior-year safe harbor (110% of prior-year tax above the AGI cutoff,
// 100% below it). With no prior-year figures only the 90% test applies.
func (e *Engine) requiredAnnualPayment(p *domain.TaxProfile, s *domain.TaxSummary) decimal.Decimal {
	currentTest := s.TotalTax.Sub(s.FICATax).Mul(ninetyPercent)
	if p.PriorYearTax.IsZero() {
		return currentTest
	}
	harbor := p.PriorYearTax
	if p.PriorYearAGI.GreaterThan(highIncomeSafeHarborAGI) {
		harbor = harbor.Mul(oneHundredTenPercent)
	}
	return decimal.Min(currentTest, harbor)
}

// estimatedPaymentAlerts checks the cumulative payment pace against each
// quarterly deadline. Quarters already due with a shortfall are IMMEDIATE;
// the next deadline is classified by proximity and amount.
func (e *Engine) estimatedPaymentAlerts(p *domain.TaxProfile, s *domain.TaxSummary) []domain.Alert {
	required := e.requiredAnnualPayment(p, s)
	if required.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	four := decimal.NewFromInt(4)
	quarterShare := required.Div(four)
	withholdingPerQuarter := p.FederalWithholding.Div(four)

	var alerts []domain.Alert
	paid := decimal.Zero
	for q, due := range quarterlyDueDates(e.Year.Year) {
		if q < len(p.EstimatedPayments) {
			paid = paid.Add(p.EstimatedPayments[q])
		}
		paid = paid.Add(withholdingPerQuarter)

		cumulativeRequired := quarterShare.Mul(decimal.NewFromInt(int64(q + 1)))
		shortfall := cumulativeRequired.Sub(paid)
		if shortfall.LessThanOrEqual(decimal.Zero) {
			continue
		}

		deadline := due
		alerts = append(alerts, domain.Alert{
			Priority: e.classify(&deadline, shortfall),
			Category: domain.CategoryEstimatedPayments,
			Title:    fmt.Sprintf("Q%d estimated payment shortfall", q+1),
			Message: fmt.Sprintf("Payments through Q%d are $%s below the safe-harbor pace of $%s; underpayment penalties accrue from the quarterly due date.",
				q+1, shortfall.StringFixed(0), cumulativeRequired.StringFixed(0)),
			Amount:   &shortfall,
			Deadline: &deadline,
		})
		// Only the first unpaid quarter at or after the as-of date is
		// actionable; later quarters repeat the same shortfall.
		if !due.Before(e.AsOf) {
			break
		}
	}
	return alerts
}

// withholdingPaceAlerts compares year-to-date withholding plus estimates
// against the projected full-year liability.
func (e *Engine) withholdingPaceAlerts(p *domain.TaxProfile, s *domain.TaxSummary) []domain.Alert {
	yearStart := time.Date(e.Year.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(e.Year.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	if e.AsOf.Before(yearStart) || !e.AsOf.Before(yearEnd) {
		return nil
	}
	elapsed := decimal.NewFromFloat(e.AsOf.Sub(yearStart).Hours() / yearEnd.Sub(yearStart).Hours())

	expected := s.TotalTax.Sub(s.FICATax).Mul(elapsed)
	actual := p.FederalWithholding.Add(p.StateWithholding).Add(p.TotalEstimatedPayments())
	shortfall := expected.Sub(actual)
	if shortfall.LessThan(e.MonthFloor) {
		return nil
	}

	deadline := time.Date(e.Year.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return []domain.Alert{{
		Priority: e.classify(&deadline, shortfall),
		Category: domain.CategoryWithholding,
		Title:    "Withholding pace below projected liability",
		Message: fmt.Sprintf("Year-to-date withholding and estimates trail the projected full-year liability by $%s; increase withholding or make an estimated payment.",
			shortfall.StringFixed(0)),
		Amount:   &shortfall,
		Deadline: &deadline,
	}}
}

// amtExposureAlerts flags AMT already owed from exercised ISOs and models
// the exposure a planned exercise would add.
func (e *Engine) amtExposureAlerts(p *domain.TaxProfile, s *domain.TaxSummary) []domain.Alert {
	var alerts []domain.Alert

	if s.AMT.GreaterThan(decimal.Zero) {
		amount := s.AMT
		alerts = append(alerts, domain.Alert{
			Priority: domain.PriorityImmediate,
			Category: domain.CategoryAMT,
			Title:    "AMT owed from ISO exercises",
			Message: fmt.Sprintf("Tentative minimum tax exceeds regular tax by $%s; the exercise-year preference applies regardless of how the shares are eventually sold.",
				amount.StringFixed(0)),
			Amount: &amount,
		})
	}

	if ex := p.PlannedISOExercise; ex != nil && ex.Type == domain.GrantISO {
		modeled := p.Clone()
		modeled.PlannedISOExercise = nil
		modeled.ISOBargainElement = modeled.ISOBargainElement.Add(ex.BargainElement())

		engine := calculation.NewCalculationEngine()
		if summary, err := engine.Calculate(modeled, e.Year); err == nil {
			added := summary.AMT.Sub(s.AMT)
			if added.GreaterThan(decimal.Zero) {
				alerts = append(alerts, domain.Alert{
					Priority: domain.PriorityPlanning,
					Category: domain.CategoryAMT,
					Title:    "Planned ISO exercise adds AMT exposure",
					Message: fmt.Sprintf("Exercising %s shares would add roughly $%s of AMT; consider splitting the exercise across years or sizing it with the optimizer.",
						ex.Shares.StringFixed(0), added.StringFixed(0)),
					Amount: &added,
				})
			}
		}
	}
	return alerts
}

// capitalGainsThresholdAlerts covers the Washington excise: liability above
// the exemption, and proximity when realized gains are within 10% below it.
func (e *Engine) capitalGainsThresholdAlerts(p *domain.TaxProfile, s *domain.TaxSummary) []domain.Alert {
	resident := false
	for _, r := range p.Residency {
		if r.State == domain.StateWA && r.Days > 0 {
			resident = true
			break
		}
	}
	if !resident {
		return nil
	}

	exemption := e.Year.States.WACapitalGainsExemption
	_, pref := p.NetCapitalGains()

	if pref.GreaterThan(exemption) {
		excise := pref.Sub(exemption).Mul(e.Year.States.WACapitalGainsRate)
		return []domain.Alert{{
			Priority: domain.PriorityImmediate,
			Category: domain.CategoryCapitalGains,
			Title:    "WA capital gains excise owed",
			Message: fmt.Sprintf("Long-term gains exceed the $%s exemption; the excise on the amount above it is $%s.",
				exemption.StringFixed(0), excise.StringFixed(0)),
			Amount: &excise,
		}}
	}

	margin := exemption.Sub(pref)
	if pref.GreaterThan(decimal.Zero) && margin.LessThanOrEqual(exemption.Mul(decimal.NewFromFloat(0.10))) {
		return []domain.Alert{{
			Priority: domain.PriorityPlanning,
			Category: domain.CategoryCapitalGains,
			Title:    "Approaching WA capital gains exemption",
			Message: fmt.Sprintf("Realized long-term gains are within $%s of the $%s exemption; further sales this year become taxable.",
				margin.StringFixed(0), exemption.StringFixed(0)),
			Amount: &margin,
		}}
	}
	return nil
}

// washSaleAlerts surfaces disallowed losses found in the transaction ledger.
func (e *Engine) washSaleAlerts(p *domain.TaxProfile) []domain.Alert {
	if len(p.Lots) == 0 {
		return nil
	}
	results, err := washsale.Detect(p.Lots)
	if err != nil {
		return nil
	}
	var alerts []domain.Alert
	for _, r := range results {
		amount := r.DisallowedLoss
		priority := domain.PriorityPlanning
		if amount.GreaterThanOrEqual(e.MonthFloor) {
			priority = domain.PriorityThisMonth
		}
		alerts = append(alerts, domain.Alert{
			Priority: priority,
			Category: domain.CategoryWashSale,
			Title:    fmt.Sprintf("Wash sale in %s", r.Security),
			Message: fmt.Sprintf("The %s loss sale is washed by a purchase within the 61-day window; $%s of the loss is disallowed and deferred into the replacement basis.",
				r.SaleDate.Format("2006-01-02"), amount.StringFixed(0)),
			Amount: &amount,
		})
	}
	return alerts
}

// multiStateAlerts surfaces the allocator's nexus notes.
func (e *Engine) multiStateAlerts(p *domain.TaxProfile) []domain.Alert {
	if len(p.Residency) < 2 {
		return nil
	}
	_, notes, err := e.allocator.Apportion(p, e.Year)
	if err != nil {
		return nil
	}
	var alerts []domain.Alert
	for _, note := range notes {
		alerts = append(alerts, domain.Alert{
			Priority: domain.PriorityPlanning,
			Category: domain.CategoryMultiState,
			Title:    "Multi-state filing exposure",
			Message:  note,
		})
	}
	return alerts
}
