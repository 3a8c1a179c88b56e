// Package alerts evaluates a fixed battery of filing-risk rules over a
// profile and its computed summary, emitting prioritized alerts. Rules are
// independent and idempotent: re-running on the same inputs yields the same
// set.
package alerts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
	"github.com/ziziou272/taxlens/internal/statetax"
)

// Engine holds the evaluation context: the year's parameters, the as-of date
// every deadline is measured against, and the materiality floors of the
// priority policy.
type Engine struct {
	Year *domain.TaxYear
	AsOf time.Time

	WeekFloor  decimal.Decimal
	MonthFloor decimal.Decimal

	allocator *statetax.Allocator
}

// NewEngine creates an alert engine with the default materiality floors.
func NewEngine(year *domain.TaxYear, asOf time.Time) *Engine {
	return &Engine{
		Year:       year,
		AsOf:       asOf,
		WeekFloor:  decimal.NewFromInt(1000),
		MonthFloor: decimal.NewFromInt(250),
		allocator:  statetax.NewAllocator(),
	}
}

// Check runs every rule against the pair and returns the alerts sorted by
// priority, then deadline, then title. It always returns a (possibly empty)
// list and never fails on well-formed input.
func (e *Engine) Check(p *domain.TaxProfile, s *domain.TaxSummary) []domain.Alert {
	var alerts []domain.Alert
	alerts = append(alerts, e.estimatedPaymentAlerts(p, s)...)
	alerts = append(alerts, e.withholdingPaceAlerts(p, s)...)
	alerts = append(alerts, e.amtExposureAlerts(p, s)...)
	alerts = append(alerts, e.capitalGainsThresholdAlerts(p, s)...)
	alerts = append(alerts, e.washSaleAlerts(p)...)
	alerts = append(alerts, e.multiStateAlerts(p)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Priority != alerts[j].Priority {
			return alerts[i].Priority < alerts[j].Priority
		}
		di, dj := alerts[i].Deadline, alerts[j].Deadline
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return alerts[i].Title < alerts[j].Title
	})
	return alerts
}

// classify applies the priority policy: past deadlines are IMMEDIATE;
// deadlines within 7 days above the weekly materiality floor are THIS_WEEK;
// within 30 days above the monthly floor THIS_MONTH; everything else is
// future-dated PLANNING.
func (e *Engine) classify(deadline *time.Time, amount decimal.Decimal) domain.AlertPriority {
	if deadline == nil {
		return domain.PriorityPlanning
	}
	if deadline.Before(e.AsOf) {
		return domain.PriorityImmediate
	}
	until := deadline.Sub(e.AsOf)
	switch {
	case until <= 7*24*time.Hour && amount.GreaterThanOrEqual(e.WeekFloor):
		return domain.PriorityThisWeek
	case until <= 30*24*time.Hour && amount.GreaterThanOrEqual(e.MonthFloor):
		return domain.PriorityThisMonth
	}
	return domain.PriorityPlanning
}
