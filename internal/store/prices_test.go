package store

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func TestPrices_RecordIsIdempotentPerDay(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	err := s.Prices.Record(ctx, domain.PricePoint{Ticker: "VTI", Date: day, Price: dec("250.10")})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	// Same day, later clock time: replaces rather than duplicates.
	err = s.Prices.Record(ctx, domain.PricePoint{
		Ticker: "VTI", Date: day.Add(15 * time.Hour), Price: dec("251.40"),
	})
	if err != nil {
		t.Fatalf("Record replace: %v", err)
	}

	points, err := s.Prices.History(ctx, "VTI", time.Time{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("got %d points for one day, want 1", len(points))
	}
	if !points[0].Price.Equal(dec("251.40")) {
		t.Errorf("price = %s, want the replacing 251.40", points[0].Price)
	}
}

func TestPrices_HistoryWindowAndOrder(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	days := map[string]string{
		"2025-06-01": "100",
		"2025-06-03": "105",
		"2025-05-20": "95",
	}
	for d, p := range days {
		date, _ := time.Parse("2006-01-02", d)
		if err := s.Prices.Record(ctx, domain.PricePoint{Ticker: "VTI", Date: date, Price: dec(p)}); err != nil {
			t.Fatalf("Record %s: %v", d, err)
		}
	}
	// Another ticker never leaks into the series.
	other, _ := time.Parse("2006-01-02", "2025-06-02")
	if err := s.Prices.Record(ctx, domain.PricePoint{Ticker: "BND", Date: other, Price: dec("70")}); err != nil {
		t.Fatalf("Record BND: %v", err)
	}

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	points, err := s.Prices.History(ctx, "VTI", from)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2 in the window", len(points))
	}
	if !points[0].Price.Equal(dec("100")) || !points[1].Price.Equal(dec("105")) {
		t.Errorf("prices = %s, %s, want ascending 100, 105", points[0].Price, points[1].Price)
	}
}
