package analytics

import (
	"context"
	"testing"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func investmentHolding(id, class, shares, price string) *domain.Holding {
	return &domain.Holding{
		ID:           id,
		AccountID:    "acc-inv",
		Name:         id,
		AssetClass:   class,
		Shares:       decPtr(shares),
		CurrentPrice: decPtr(price),
	}
}

func TestAssetAllocation_PortfolioWideIncludesCash(t *testing.T) {
	e := newTestEngine(engineFakes{
		holdings: &fakeHoldings{holdings: []*domain.Holding{
			investmentHolding("h1", "equity", "10", "120"), // 1200
		}},
		accounts: &fakeAccounts{accounts: []*domain.Account{
			{ID: "acc-sav", Name: "Savings", Type: domain.AccountSavings, CurrentBalance: dec("5000"), IsActive: true},
			{ID: "acc-chk", Name: "Checking", Type: domain.AccountChecking, CurrentBalance: dec("900"), IsActive: true},
		}},
	})

	allocation, err := e.AssetAllocation(context.Background(), nil)
	if err != nil {
		t.Fatalf("AssetAllocation failed: %v", err)
	}

	if !allocation.TotalMarketValue.Equal(dec("6200")) {
		t.Errorf("TotalMarketValue = %s, want 6200", allocation.TotalMarketValue)
	}
	if len(allocation.Slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(allocation.Slices))
	}
	// Sorted by market value descending: cash 5000, equity 1200.
	if allocation.Slices[0].AssetClass != CashAssetClass || !allocation.Slices[0].MarketValue.Equal(dec("5000")) {
		t.Errorf("first slice = %s %s, want cash 5000", allocation.Slices[0].AssetClass, allocation.Slices[0].MarketValue)
	}
	if allocation.Slices[1].AssetClass != "equity" || !allocation.Slices[1].MarketValue.Equal(dec("1200")) {
		t.Errorf("second slice = %s %s, want equity 1200", allocation.Slices[1].AssetClass, allocation.Slices[1].MarketValue)
	}
}

// Account-scoped allocation has no cash slice and must not touch the
// account store at all.
func TestAssetAllocation_AccountScopedSkipsCash(t *testing.T) {
	accounts := &fakeAccounts{accounts: []*domain.Account{
		{ID: "acc-sav", Name: "Savings", Type: domain.AccountSavings, CurrentBalance: dec("5000"), IsActive: true},
	}}
	e := newTestEngine(engineFakes{
		holdings: &fakeHoldings{holdings: []*domain.Holding{
			investmentHolding("h1", "equity", "10", "120"),
		}},
		accounts: accounts,
	})

	allocation, err := e.AssetAllocation(context.Background(), strPtr("acc-inv"))
	if err != nil {
		t.Fatalf("AssetAllocation failed: %v", err)
	}

	if !allocation.TotalMarketValue.Equal(dec("1200")) {
		t.Errorf("TotalMarketValue = %s, want 1200", allocation.TotalMarketValue)
	}
	for _, slice := range allocation.Slices {
		if slice.AssetClass == CashAssetClass {
			t.Error("account-scoped allocation produced a cash slice")
		}
	}
	if accounts.calls != 0 {
		t.Errorf("account store queried %d times, want 0", accounts.calls)
	}
}

// Zero or negative savings cash yields no slice at all, not a zero slice.
func TestAssetAllocation_NoCashSliceWhenNotPositive(t *testing.T) {
	for _, balance := range []string{"0", "-120"} {
		e := newTestEngine(engineFakes{
			holdings: &fakeHoldings{holdings: []*domain.Holding{
				investmentHolding("h1", "equity", "10", "120"),
			}},
			accounts: &fakeAccounts{accounts: []*domain.Account{
				{ID: "acc-sav", Name: "Savings", Type: domain.AccountSavings, CurrentBalance: dec(balance), IsActive: true},
			}},
		})

		allocation, err := e.AssetAllocation(context.Background(), nil)
		if err != nil {
			t.Fatalf("AssetAllocation failed: %v", err)
		}
		for _, slice := range allocation.Slices {
			if slice.AssetClass == CashAssetClass {
				t.Errorf("savings balance %s produced a cash slice", balance)
			}
		}
	}
}

func TestAssetAllocation_TargetOnlyClassAppears(t *testing.T) {
	e := newTestEngine(engineFakes{
		holdings: &fakeHoldings{holdings: []*domain.Holding{
			investmentHolding("h1", "equity", "10", "100"), // 1000
		}},
		allocations: &fakeAllocations{targets: []*domain.TargetAllocation{
			{ID: "t1", AssetClass: "equity", TargetPct: dec("80")},
			{ID: "t2", AssetClass: "bonds", TargetPct: dec("20")},
		}},
	})

	allocation, err := e.AssetAllocation(context.Background(), nil)
	if err != nil {
		t.Fatalf("AssetAllocation failed: %v", err)
	}

	var bonds *AllocationSlice
	for i := range allocation.Slices {
		if allocation.Slices[i].AssetClass == "bonds" {
			bonds = &allocation.Slices[i]
		}
	}
	if bonds == nil {
		t.Fatal("bonds slice missing despite having a target")
	}
	if !bonds.MarketValue.IsZero() || !bonds.ActualPct.IsZero() {
		t.Errorf("bonds = mv %s actual %s, want zeros", bonds.MarketValue, bonds.ActualPct)
	}
	if bonds.TargetPct == nil || !bonds.TargetPct.Equal(dec("20")) {
		t.Errorf("bonds TargetPct = %v, want 20", bonds.TargetPct)
	}
	if bonds.Drift == nil || !bonds.Drift.Equal(dec("-20")) {
		t.Errorf("bonds Drift = %v, want -20", bonds.Drift)
	}

	// Holdings without a market value are skipped, not zeroed.
	if !allocation.TotalMarketValue.Equal(dec("1000")) {
		t.Errorf("TotalMarketValue = %s, want 1000", allocation.TotalMarketValue)
	}
}
