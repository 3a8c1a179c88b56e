package washsale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziziou272/taxlens/internal/domain"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func buy(sec string, date time.Time, shares, price int64) domain.TransactionLot {
	return domain.TransactionLot{
		Security:  sec,
		Side:      domain.LotBuy,
		Date:      date,
		Shares:    decimal.NewFromInt(shares),
		Price:     decimal.NewFromInt(price),
		CostBasis: decimal.NewFromInt(price),
	}
}

func sell(sec string, date time.Time, shares, price, basis int64) domain.TransactionLot {
	return domain.TransactionLot{
		Security:  sec,
		Side:      domain.LotSell,
		Date:      date,
		Shares:    decimal.NewFromInt(shares),
		Price:     decimal.NewFromInt(price),
		CostBasis: decimal.NewFromInt(basis),
	}
}

func TestDetectNoWashWithoutReplacement(t *testing.T) {
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	assert.Empty(t, results, "a loss with no purchase in the window is fully allowed")
}

func TestDetectFullWash(t *testing.T) {
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
		buy("ACME", day(2025, 6, 15), 100, 32),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, decimal.NewFromInt(2000).Equal(r.TotalLoss), "loss %s", r.TotalLoss)
	assert.True(t, decimal.NewFromInt(2000).Equal(r.DisallowedLoss), "disallowed %s", r.DisallowedLoss)
	assert.True(t, r.AllowedLoss.IsZero())
	assert.True(t, r.DisallowedLoss.Equal(r.BasisAdjustment), "disallowed loss defers into replacement basis")
}

func TestDetectPartialWash(t *testing.T) {
	// Only 40 of the 100 sold shares are replaced inside the window.
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
		buy("ACME", day(2025, 6, 20), 40, 35),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, decimal.NewFromInt(800).Equal(r.DisallowedLoss), "disallowed %s", r.DisallowedLoss)
	assert.True(t, decimal.NewFromInt(1200).Equal(r.AllowedLoss), "allowed %s", r.AllowedLoss)
	assert.True(t, r.DisallowedLoss.Add(r.AllowedLoss).Equal(r.TotalLoss),
		"partial matches must sum to the total loss")
}

func TestDetectPurchaseBeforeSale(t *testing.T) {
	// The window reaches 30 days backward too.
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		buy("ACME", day(2025, 5, 20), 50, 40),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(results[0].MatchedShares),
		"matched %s", results[0].MatchedShares)
}

func TestDetectWindowBoundary(t *testing.T) {
	tests := []struct {
		name    string
		buyDate time.Time
		washed  bool
	}{
		{"thirty days after is inside", day(2025, 7, 1), true},
		{"thirty one days after is outside", day(2025, 7, 2), false},
		{"thirty days before is inside", day(2025, 5, 2), true},
		{"thirty one days before is outside", day(2025, 5, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lots := []domain.TransactionLot{
				buy("ACME", day(2024, 6, 1), 100, 50),
				sell("ACME", day(2025, 6, 1), 100, 30, 50),
				buy("ACME", tt.buyDate, 100, 31),
			}
			results, err := Detect(lots)
			require.NoError(t, err)
			if tt.washed {
				assert.Len(t, results, 1)
			} else {
				assert.Empty(t, results)
			}
		})
	}
}

func TestDetectOldestReplacementFirst(t *testing.T) {
	lots := []domain.TransactionLot{
		buy("ACME", day(2024, 6, 1), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
		buy("ACME", day(2025, 6, 10), 60, 31),
		buy("ACME", day(2025, 6, 20), 60, 32),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, decimal.NewFromInt(100).Equal(r.MatchedShares))
	require.Len(t, r.ReplacementDates, 2)
	assert.Equal(t, day(2025, 6, 10), r.ReplacementDates[0], "oldest purchase consumed first")
}

func TestDetectGainsIgnored(t *testing.T) {
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 80, 50),
		buy("ACME", day(2025, 6, 10), 100, 85),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	assert.Empty(t, results, "gains are never washed")
}

func TestDetectSecuritiesIndependent(t *testing.T) {
	// A purchase of a different ticker is not a replacement.
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
		buy("ZORG", day(2025, 6, 10), 100, 30),
	}

	results, err := Detect(lots)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDetectIdempotent(t *testing.T) {
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 1, 10), 100, 50),
		sell("ACME", day(2025, 6, 1), 100, 30, 50),
		buy("ACME", day(2025, 6, 20), 40, 35),
	}

	first, err := Detect(lots)
	require.NoError(t, err)
	second, err := Detect(lots)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].DisallowedLoss.Equal(second[i].DisallowedLoss))
	}
}

func TestDetectRejectsMalformedLot(t *testing.T) {
	lots := []domain.TransactionLot{
		{Security: "", Side: domain.LotBuy, Date: day(2025, 1, 1), Shares: decimal.NewFromInt(10)},
	}
	_, err := Detect(lots)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPlanSale(t *testing.T) {
	lots := []domain.TransactionLot{
		buy("ACME", day(2025, 5, 20), 100, 40),
		buy("ACME", day(2025, 5, 25), 50, 42),
	}

	t.Run("conflict inside trailing window", func(t *testing.T) {
		plan, err := PlanSale(lots, "ACME", day(2025, 6, 1))
		require.NoError(t, err)
		assert.True(t, plan.HasConflict)
		assert.Len(t, plan.Conflicts, 2)
		// Clear 31 days after the latest conflicting purchase.
		assert.Equal(t, day(2025, 6, 25), plan.ClearDate)
	})

	t.Run("clear when purchases are stale", func(t *testing.T) {
		plan, err := PlanSale(lots, "ACME", day(2025, 8, 1))
		require.NoError(t, err)
		assert.False(t, plan.HasConflict)
		assert.Equal(t, day(2025, 8, 1), plan.ClearDate)
	})

	t.Run("other securities ignored", func(t *testing.T) {
		plan, err := PlanSale(lots, "ZORG", day(2025, 6, 1))
		require.NoError(t, err)
		assert.False(t, plan.HasConflict)
	})

	t.Run("requires a security", func(t *testing.T) {
		_, err := PlanSale(lots, "", day(2025, 6, 1))
		assert.Error(t, err)
	})
}
