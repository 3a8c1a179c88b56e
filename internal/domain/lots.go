package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LotSide distinguishes purchases from sales in a transaction ledger.
type LotSide string

const (
	LotBuy  LotSide = "buy"
	LotSell LotSide = "sell"
)

// TransactionLot is one entry in a per-security transaction ledger. Price is
// per share. CostBasis (per share) applies to sells only; the loss on a sell
// is (CostBasis − Price) × Shares when positive.
type TransactionLot struct {
	Security  string          `yaml:"security" json:"security"`
	Side      LotSide         `yaml:"side" json:"side"`
	Date      time.Time       `yaml:"date" json:"date"`
	Shares    decimal.Decimal `yaml:"shares" json:"shares"`
	Price     decimal.Decimal `yaml:"price" json:"price"`
	CostBasis decimal.Decimal `yaml:"cost_basis,omitempty" json:"costBasis,omitempty"`
}

// Loss is the realized loss on a sell lot, zero for gains and buys.
func (l *TransactionLot) Loss() decimal.Decimal {
	if l.Side != LotSell {
		return decimal.Zero
	}
	loss := l.CostBasis.Sub(l.Price).Mul(l.Shares)
	if loss.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return loss
}

// Validate checks a single ledger entry.
func (l *TransactionLot) Validate() error {
	if l.Security == "" {
		return fmt.Errorf("security is required")
	}
	if l.Side != LotBuy && l.Side != LotSell {
		return fmt.Errorf("side must be %q or %q", LotBuy, LotSell)
	}
	if l.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if l.Shares.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("shares must be positive")
	}
	if l.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("price must not be negative")
	}
	if l.Side == LotSell && l.CostBasis.LessThan(decimal.Zero) {
		return fmt.Errorf("cost basis must not be negative")
	}
	return nil
}

// WashSaleResult describes the wash-sale treatment of one loss sale.
type WashSaleResult struct {
	Security         string          `json:"security"`
	SaleDate         time.Time       `json:"saleDate"`
	SharesSold       decimal.Decimal `json:"sharesSold"`
	TotalLoss        decimal.Decimal `json:"totalLoss"`
	DisallowedLoss   decimal.Decimal `json:"disallowedLoss"`
	AllowedLoss      decimal.Decimal `json:"allowedLoss"`
	MatchedShares    decimal.Decimal `json:"matchedShares"`
	ReplacementDates []time.Time     `json:"replacementDates"`
	// BasisAdjustment is the disallowed loss deferred into the replacement
	// lot's basis.
	BasisAdjustment decimal.Decimal `json:"basisAdjustment"`
}

// SalePlan is the forward-looking wash-sale check for a prospective sale.
type SalePlan struct {
	Security     string      `json:"security"`
	ProposedDate time.Time   `json:"proposedDate"`
	HasConflict  bool        `json:"hasConflict"`
	Conflicts    []time.Time `json:"conflicts"`
	// ClearDate is the first date a loss sale would fall outside the
	// trailing window of every existing purchase.
	ClearDate time.Time `json:"clearDate"`
}
