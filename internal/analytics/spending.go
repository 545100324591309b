package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// uncategorized labels spending with no category.
const uncategorized = "Uncategorized"

// CategorySpend is one category's share of a month's spending.
type CategorySpend struct {
	Category   string
	Amount     decimal.Decimal // spend magnitude, positive
	Percentage decimal.Decimal // share of total, rounded to 2 decimals
}

// SpendingSummary aggregates one calendar month of spending by category.
type SpendingSummary struct {
	Month      time.Time
	Total      decimal.Decimal
	Categories []CategorySpend
}

// SpendingSummary sums negative-signed transactions for the given calendar
// month, grouped by category and sorted by amount descending. Income and
// zero-amount rows are ignored.
func (e *Engine) SpendingSummary(ctx context.Context, year int, month time.Month) (*SpendingSummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	txns, err := e.transactions.List(ctx, domain.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("SpendingSummary: listing transactions: %w", err)
	}

	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, txn := range txns {
		if !txn.Amount.IsNegative() {
			continue
		}
		category := txn.Category
		if category == "" {
			category = uncategorized
		}
		spend := txn.Amount.Abs()
		byCategory[category] = byCategory[category].Add(spend)
		total = total.Add(spend)
	}

	summary := &SpendingSummary{Month: from, Total: total}
	hundred := decimal.NewFromInt(100)
	for category, amount := range byCategory {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amount.Div(total).Mul(hundred).Round(2)
		}
		summary.Categories = append(summary.Categories, CategorySpend{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
		})
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})

	return summary, nil
}
