package store

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func TestTransactions_DateRangeIsHalfOpen(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		_, err := s.Transactions.Create(ctx, domain.TransactionInput{
			AccountID:   strPtr("acc-chk"),
			Date:        d,
			Amount:      dec("-10"),
			Category:    "groceries",
			Description: strPtr("weekly shop"),
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	got, err := s.Transactions.List(ctx, domain.TransactionFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want the 2 June ones", len(got))
	}
	// Inclusive start, exclusive end, ascending.
	if !got[0].Date.Equal(dates[1]) || !got[1].Date.Equal(dates[2]) {
		t.Errorf("dates = %v, %v", got[0].Date, got[1].Date)
	}
}

func TestTransactions_RoundTripAndDelete(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	created, err := s.Transactions.Create(ctx, domain.TransactionInput{
		AccountID: strPtr("acc-chk"),
		Date:      time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		Amount:    dec("-42.17"),
		Category:  "dining",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Transactions.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing transaction")
	}
	if !got.Amount.Equal(dec("-42.17")) || got.Category != "dining" {
		t.Errorf("got amount=%s category=%q", got.Amount, got.Category)
	}

	ok, err := s.Transactions.Delete(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	gone, err := s.Transactions.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("Get after delete = %+v, want nil", gone)
	}
}
