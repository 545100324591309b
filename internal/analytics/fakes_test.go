package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// Hand-rolled fakes over in-memory slices. Each fake counts calls so tests
// can assert which stores a computation touched.

type fakeAccounts struct {
	accounts []*domain.Account
	calls    int
}

func (f *fakeAccounts) List(_ context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	f.calls++
	var out []*domain.Account
	for _, acc := range f.accounts {
		if filter.IsActive != nil && acc.IsActive != *filter.IsActive {
			continue
		}
		if filter.Type != nil && acc.Type != *filter.Type {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

type fakeBalances struct {
	snapshots []*domain.Balance // kept in ascending date order
}

func (f *fakeBalances) LatestOnOrBefore(_ context.Context, accountID string, cutoff time.Time) (*domain.Balance, error) {
	var latest *domain.Balance
	for _, snap := range f.snapshots {
		if snap.AccountID != accountID || snap.Date.After(cutoff) {
			continue
		}
		if latest == nil || snap.Date.After(latest.Date) {
			latest = snap
		}
	}
	return latest, nil
}

func (f *fakeBalances) ListThrough(_ context.Context, cutoff time.Time) ([]*domain.Balance, error) {
	var out []*domain.Balance
	for _, snap := range f.snapshots {
		if !snap.Date.After(cutoff) {
			out = append(out, snap)
		}
	}
	return out, nil
}

type fakeTransactions struct {
	txns []*domain.Transaction
}

func (f *fakeTransactions) List(_ context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, txn := range f.txns {
		if filter.From != nil && txn.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !txn.Date.Before(*filter.To) {
			continue
		}
		if filter.Category != nil && txn.Category != *filter.Category {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

type fakeHoldings struct {
	holdings []*domain.Holding
}

func (f *fakeHoldings) List(_ context.Context, filter domain.HoldingFilter) ([]*domain.Holding, error) {
	var out []*domain.Holding
	for _, h := range f.holdings {
		if filter.AccountID != nil && h.AccountID != *filter.AccountID {
			continue
		}
		if filter.AssetClass != nil && h.AssetClass != *filter.AssetClass {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

type fakeAllocations struct {
	targets []*domain.TargetAllocation
}

func (f *fakeAllocations) List(_ context.Context, accountID *string) ([]*domain.TargetAllocation, error) {
	var out []*domain.TargetAllocation
	for _, t := range f.targets {
		switch {
		case accountID == nil && t.AccountID == nil:
			out = append(out, t)
		case accountID != nil && t.AccountID != nil && *t.AccountID == *accountID:
			out = append(out, t)
		}
	}
	return out, nil
}

type fakePrices struct {
	series map[string][]domain.PricePoint // ascending date order per ticker
}

func (f *fakePrices) History(_ context.Context, ticker string, from time.Time) ([]domain.PricePoint, error) {
	var out []domain.PricePoint
	for _, p := range f.series[ticker] {
		if !p.Date.Before(from) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fixedNow is the reference instant for every engine test.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type engineFakes struct {
	accounts     *fakeAccounts
	balances     *fakeBalances
	transactions *fakeTransactions
	holdings     *fakeHoldings
	allocations  *fakeAllocations
	prices       *fakePrices
}

func newTestEngine(f engineFakes) *Engine {
	if f.accounts == nil {
		f.accounts = &fakeAccounts{}
	}
	if f.balances == nil {
		f.balances = &fakeBalances{}
	}
	if f.transactions == nil {
		f.transactions = &fakeTransactions{}
	}
	if f.holdings == nil {
		f.holdings = &fakeHoldings{}
	}
	if f.allocations == nil {
		f.allocations = &fakeAllocations{}
	}
	if f.prices == nil {
		f.prices = &fakePrices{}
	}
	e := New(f.accounts, f.balances, f.transactions, f.holdings, f.allocations, f.prices, "SPY", zerolog.Nop())
	e.now = func() time.Time { return fixedNow }
	return e
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
