package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func spendTxn(id string, date time.Time, category, amount string) *domain.Transaction {
	return &domain.Transaction{
		ID:        id,
		AccountID: strPtr("acc-chk"),
		Date:      date,
		Category:  category,
		Amount:    dec(amount),
	}
}

func TestSpendingSummary_GroupsAndPercentages(t *testing.T) {
	e := newTestEngine(engineFakes{
		transactions: &fakeTransactions{txns: []*domain.Transaction{
			spendTxn("t1", day(2025, time.June, 3), "groceries", "-120.50"),
			spendTxn("t2", day(2025, time.June, 10), "groceries", "-79.50"),
			spendTxn("t3", day(2025, time.June, 12), "rent", "-800"),
			spendTxn("t4", day(2025, time.June, 20), "", "-50"),
			spendTxn("t5", day(2025, time.June, 25), "salary", "3000"), // income, ignored
		}},
	})

	summary, err := e.SpendingSummary(context.Background(), 2025, time.June)
	if err != nil {
		t.Fatalf("SpendingSummary failed: %v", err)
	}

	if !summary.Total.Equal(dec("1050")) {
		t.Errorf("Total = %s, want 1050", summary.Total)
	}
	if len(summary.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(summary.Categories))
	}

	// Sorted by amount descending.
	wantOrder := []struct {
		category string
		amount   string
		pct      string
	}{
		{"rent", "800", "76.19"},
		{"groceries", "200", "19.05"},
		{uncategorized, "50", "4.76"},
	}
	for i, want := range wantOrder {
		got := summary.Categories[i]
		if got.Category != want.category {
			t.Errorf("category[%d] = %s, want %s", i, got.Category, want.category)
		}
		if !got.Amount.Equal(dec(want.amount)) {
			t.Errorf("%s amount = %s, want %s", want.category, got.Amount, want.amount)
		}
		if !got.Percentage.Equal(dec(want.pct)) {
			t.Errorf("%s percentage = %s, want %s", want.category, got.Percentage, want.pct)
		}
	}
}

func TestSpendingSummary_MonthBoundaries(t *testing.T) {
	e := newTestEngine(engineFakes{
		transactions: &fakeTransactions{txns: []*domain.Transaction{
			spendTxn("t1", day(2025, time.May, 31), "groceries", "-10"),
			spendTxn("t2", day(2025, time.June, 1), "groceries", "-20"),
			spendTxn("t3", day(2025, time.June, 30), "groceries", "-30"),
			spendTxn("t4", day(2025, time.July, 1), "groceries", "-40"),
		}},
	})

	summary, err := e.SpendingSummary(context.Background(), 2025, time.June)
	if err != nil {
		t.Fatalf("SpendingSummary failed: %v", err)
	}
	if !summary.Total.Equal(dec("50")) {
		t.Errorf("Total = %s, want 50 (June rows only)", summary.Total)
	}
}

func TestSpendingSummary_NoSpending(t *testing.T) {
	e := newTestEngine(engineFakes{
		transactions: &fakeTransactions{txns: []*domain.Transaction{
			spendTxn("t1", day(2025, time.June, 5), "salary", "3000"),
		}},
	})

	summary, err := e.SpendingSummary(context.Background(), 2025, time.June)
	if err != nil {
		t.Fatalf("SpendingSummary failed: %v", err)
	}
	if !summary.Total.IsZero() {
		t.Errorf("Total = %s, want 0", summary.Total)
	}
	if len(summary.Categories) != 0 {
		t.Errorf("got %d categories, want none", len(summary.Categories))
	}
}
