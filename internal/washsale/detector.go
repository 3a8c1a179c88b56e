// Package washsale implements time-windowed lot matching over a transaction
// ledger: a loss sale is disallowed to the extent replacement shares were
// purchased within 30 days before through 30 days after the sale.
package washsale

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ziziou272/taxlens/internal/domain"
)

// windowDays is the one-sided width of the 61-day inclusive wash-sale window.
const windowDays = 30

// buyState tracks one purchase. soldOff counts shares consumed by later
// sales (oldest lot first); used counts shares already matched as
// replacements for a loss. A share that has been sold off cannot also serve
// as a replacement.
type buyState struct {
	lot     domain.TransactionLot
	soldOff decimal.Decimal
	used    decimal.Decimal
}

func (b *buyState) held() decimal.Decimal {
	return b.lot.Shares.Sub(b.soldOff)
}

func (b *buyState) replacementCapacity() decimal.Decimal {
	capacity := b.lot.Shares.Sub(b.soldOff).Sub(b.used)
	if capacity.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return capacity
}

// Detect scans a transaction ledger and returns one result per loss sale
// affected by the wash-sale rule. Matching is by share count, oldest lot
// first, with partial matching: only the covered fraction of the loss is
// disallowed and deferred into the replacement basis; the remainder is a
// recognized loss. Detection is idempotent; the input slice is not modified.
func Detect(lots []domain.TransactionLot) ([]domain.WashSaleResult, error) {
	for i := range lots {
		if err := lots[i].Validate(); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("lots[%d]", i), err.Error())
		}
	}

	bySecurity := make(map[string][]domain.TransactionLot)
	var securities []string
	for _, lot := range lots {
		if _, seen := bySecurity[lot.Security]; !seen {
			securities = append(securities, lot.Security)
		}
		bySecurity[lot.Security] = append(bySecurity[lot.Security], lot)
	}
	sort.Strings(securities)

	var results []domain.WashSaleResult
	for _, sec := range securities {
		results = append(results, detectSecurity(bySecurity[sec])...)
	}
	return results, nil
}

func detectSecurity(lots []domain.TransactionLot) []domain.WashSaleResult {
	ordered := append([]domain.TransactionLot(nil), lots...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		// Same-day purchase settles before the sale.
		return ordered[i].Side == domain.LotBuy && ordered[j].Side == domain.LotSell
	})

	var buys []*buyState
	for i := range ordered {
		if ordered[i].Side == domain.LotBuy {
			buys = append(buys, &buyState{lot: ordered[i], soldOff: decimal.Zero, used: decimal.Zero})
		}
	}

	var results []domain.WashSaleResult
	for _, lot := range ordered {
		if lot.Side != domain.LotSell {
			continue
		}
		consumeInventory(buys, lot.Shares)

		loss := lot.Loss()
		if loss.LessThanOrEqual(decimal.Zero) {
			continue
		}

		windowStart := lot.Date.AddDate(0, 0, -windowDays)
		windowEnd := lot.Date.AddDate(0, 0, windowDays)

		matched := decimal.Zero
		var replacementDates []time.Time
		need := lot.Shares
		for _, b := range buys {
			if need.LessThanOrEqual(decimal.Zero) {
				break
			}
			if b.lot.Date.Before(windowStart) || b.lot.Date.After(windowEnd) {
				continue
			}
			take := decimal.Min(b.replacementCapacity(), need)
			if take.LessThanOrEqual(decimal.Zero) {
				continue
			}
			b.used = b.used.Add(take)
			matched = matched.Add(take)
			need = need.Sub(take)
			replacementDates = append(replacementDates, b.lot.Date)
		}

		if matched.LessThanOrEqual(decimal.Zero) {
			continue
		}

		disallowed := loss.Mul(matched).Div(lot.Shares)
		results = append(results, domain.WashSaleResult{
			Security:         lot.Security,
			SaleDate:         lot.Date,
			SharesSold:       lot.Shares,
			TotalLoss:        loss,
			DisallowedLoss:   disallowed,
			AllowedLoss:      loss.Sub(disallowed),
			MatchedShares:    matched,
			ReplacementDates: replacementDates,
			BasisAdjustment:  disallowed,
		})
	}
	return results
}

// consumeInventory removes sold shares from the oldest held lots.
func consumeInventory(buys []*buyState, shares decimal.Decimal) {
	remaining := shares
	for _, b := range buys {
		if remaining.LessThanOrEqual(decimal.Zero) {
			return
		}
		take := decimal.Min(b.held(), remaining)
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}
		b.soldOff = b.soldOff.Add(take)
		remaining = remaining.Sub(take)
	}
}

// PlanSale is the forward-looking check: given a prospective sale date,
// report whether an existing purchase within the trailing 30 days would
// already create a wash-sale conflict, and the first date a loss sale would
// be clear of every recorded purchase.
func PlanSale(lots []domain.TransactionLot, security string, proposed time.Time) (*domain.SalePlan, error) {
	if security == "" {
		return nil, domain.NewValidationError("security", "security is required")
	}
	if proposed.IsZero() {
		return nil, domain.NewValidationError("proposed_date", "proposed sale date is required")
	}

	plan := &domain.SalePlan{
		Security:     security,
		ProposedDate: proposed,
		ClearDate:    proposed,
	}

	windowStart := proposed.AddDate(0, 0, -windowDays)
	var latestBuy time.Time
	for i := range lots {
		lot := lots[i]
		if lot.Security != security || lot.Side != domain.LotBuy {
			continue
		}
		if lot.Date.Before(windowStart) || lot.Date.After(proposed) {
			continue
		}
		plan.HasConflict = true
		plan.Conflicts = append(plan.Conflicts, lot.Date)
		if lot.Date.After(latestBuy) {
			latestBuy = lot.Date
		}
	}
	if plan.HasConflict {
		plan.ClearDate = latestBuy.AddDate(0, 0, windowDays+1)
	}
	sort.Slice(plan.Conflicts, func(i, j int) bool { return plan.Conflicts[i].Before(plan.Conflicts[j]) })
	return plan, nil
}
