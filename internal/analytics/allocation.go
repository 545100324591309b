package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// CashAssetClass labels the synthetic slice holding savings balances in
// portfolio-wide allocations.
const CashAssetClass = "cash"

// AllocationSlice is one asset class's actual position, with target and
// drift filled in when a target exists for the scope.
type AllocationSlice struct {
	AssetClass  string
	MarketValue decimal.Decimal
	ActualPct   decimal.Decimal
	TargetPct   *decimal.Decimal
	Drift       *decimal.Decimal // actual − target, percentage points
}

// AssetAllocation is the portfolio (or single account) grouped by asset
// class, sorted by market value descending.
type AssetAllocation struct {
	TotalMarketValue decimal.Decimal
	Slices           []AllocationSlice
}

// AssetAllocation groups holdings' market value by asset class. With no
// account filter the result also carries a synthetic cash slice equal to
// the summed balances of savings accounts, but only when that sum is
// strictly positive; zero cash produces no slice at all. Account-scoped
// queries never touch the account store. Target allocations for the same
// scope are merged in for drift, and classes that have a target but no
// holdings still appear at zero actual.
func (e *Engine) AssetAllocation(ctx context.Context, accountID *string) (*AssetAllocation, error) {
	holdings, err := e.holdings.List(ctx, domain.HoldingFilter{AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("AssetAllocation: listing holdings: %w", err)
	}

	values := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, h := range holdings {
		mv := h.MarketValue()
		if mv == nil {
			continue
		}
		values[h.AssetClass] = values[h.AssetClass].Add(*mv)
		total = total.Add(*mv)
	}

	if accountID == nil {
		cash, err := e.savingsCash(ctx)
		if err != nil {
			return nil, fmt.Errorf("AssetAllocation: %w", err)
		}
		if cash.IsPositive() {
			values[CashAssetClass] = values[CashAssetClass].Add(cash)
			total = total.Add(cash)
		}
	}

	targets, err := e.allocations.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("AssetAllocation: listing targets: %w", err)
	}
	targetByClass := make(map[string]decimal.Decimal, len(targets))
	for _, t := range targets {
		targetByClass[t.AssetClass] = t.TargetPct
	}

	// Classes present in targets but absent from holdings still get a
	// slice, at zero market value.
	for class := range targetByClass {
		if _, ok := values[class]; !ok {
			values[class] = decimal.Zero
		}
	}

	out := &AssetAllocation{TotalMarketValue: total}
	hundred := decimal.NewFromInt(100)
	for class, mv := range values {
		slice := AllocationSlice{AssetClass: class, MarketValue: mv}
		if total.IsPositive() {
			slice.ActualPct = mv.Div(total).Mul(hundred).Round(2)
		}
		if target, ok := targetByClass[class]; ok {
			t := target
			drift := slice.ActualPct.Sub(target)
			slice.TargetPct = &t
			slice.Drift = &drift
		}
		out.Slices = append(out.Slices, slice)
	}

	sort.Slice(out.Slices, func(i, j int) bool {
		a, b := out.Slices[i], out.Slices[j]
		if !a.MarketValue.Equal(b.MarketValue) {
			return a.MarketValue.GreaterThan(b.MarketValue)
		}
		return a.AssetClass < b.AssetClass
	})

	return out, nil
}

// savingsCash sums current balances of savings and high-yield-savings
// accounts.
func (e *Engine) savingsCash(ctx context.Context) (decimal.Decimal, error) {
	active := true
	accounts, err := e.accounts.List(ctx, domain.AccountFilter{IsActive: &active})
	if err != nil {
		return decimal.Zero, fmt.Errorf("savingsCash: listing accounts: %w", err)
	}

	cash := decimal.Zero
	for _, acc := range accounts {
		if acc.Type == domain.AccountSavings || acc.Type == domain.AccountHighYieldSavings {
			cash = cash.Add(acc.CurrentBalance)
		}
	}
	return cash, nil
}
