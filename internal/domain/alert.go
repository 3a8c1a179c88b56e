package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertPriority orders alerts by urgency. Lower values sort first.
type AlertPriority int

const (
	PriorityImmediate AlertPriority = iota
	PriorityThisWeek
	PriorityThisMonth
	PriorityPlanning
)

func (p AlertPriority) String() string {
	switch p {
	case PriorityImmediate:
		return "IMMEDIATE"
	case PriorityThisWeek:
		return "THIS_WEEK"
	case PriorityThisMonth:
		return "THIS_MONTH"
	case PriorityPlanning:
		return "PLANNING"
	}
	return "UNKNOWN"
}

// AlertCategory names the rule family that produced an alert.
type AlertCategory string

const (
	CategoryEstimatedPayments AlertCategory = "estimated_payments"
	CategoryWithholding       AlertCategory = "withholding"
	CategoryAMT               AlertCategory = "amt"
	CategoryCapitalGains      AlertCategory = "capital_gains"
	CategoryWashSale          AlertCategory = "wash_sale"
	CategoryMultiState        AlertCategory = "multi_state"
)

// Alert is a prioritized filing-risk flag derived entirely from a profile and
// its computed summary; alerts are stateless and disposable.
type Alert struct {
	Priority AlertPriority    `json:"priority"`
	Category AlertCategory    `json:"category"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Deadline *time.Time       `json:"deadline,omitempty"`
}
