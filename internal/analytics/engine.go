// Package analytics derives financial summaries from the entity stores.
// Every function is a pure read over current store state: nothing here
// mutates, caches, or persists a derived value. Computations receive
// decrypted domain objects from the stores and do all aggregation in
// memory, since encrypted columns cannot be summed or ordered in the
// repository.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// AccountSource lists decrypted accounts.
type AccountSource interface {
	List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
}

// BalanceSource reads the decrypted snapshot history.
type BalanceSource interface {
	LatestOnOrBefore(ctx context.Context, accountID string, cutoff time.Time) (*domain.Balance, error)
	ListThrough(ctx context.Context, cutoff time.Time) ([]*domain.Balance, error)
}

// TransactionSource lists decrypted transactions.
type TransactionSource interface {
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

// HoldingSource lists decrypted holdings.
type HoldingSource interface {
	List(ctx context.Context, filter domain.HoldingFilter) ([]*domain.Holding, error)
}

// AllocationSource lists target allocations for a scope.
type AllocationSource interface {
	List(ctx context.Context, accountID *string) ([]*domain.TargetAllocation, error)
}

// PriceSource reads per-ticker price history.
type PriceSource interface {
	History(ctx context.Context, ticker string, from time.Time) ([]domain.PricePoint, error)
}

// Engine computes summaries over the stores. It holds no state beyond its
// wiring, so calls are safe to run concurrently.
type Engine struct {
	accounts     AccountSource
	balances     BalanceSource
	transactions TransactionSource
	holdings     HoldingSource
	allocations  AllocationSource
	prices       PriceSource
	benchmark    string
	log          zerolog.Logger
	now          func() time.Time
}

// New wires an Engine. benchmarkTicker names the index series performance
// charts are compared against.
func New(
	accounts AccountSource,
	balances BalanceSource,
	transactions TransactionSource,
	holdings HoldingSource,
	allocations AllocationSource,
	prices PriceSource,
	benchmarkTicker string,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		accounts:     accounts,
		balances:     balances,
		transactions: transactions,
		holdings:     holdings,
		allocations:  allocations,
		prices:       prices,
		benchmark:    benchmarkTicker,
		log:          log,
		now:          time.Now,
	}
}

// startOfMonth returns midnight UTC on the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// endOfMonth returns the last instant of t's month.
func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
