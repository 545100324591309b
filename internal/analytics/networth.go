package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// AccountNetWorth is one account's contribution to the current net worth.
// PreviousBalance is the balance as of the end of the prior calendar month,
// and is omitted (nil) when the account has no snapshot that early —
// defaulting it to zero would fabricate a trend that never happened.
type AccountNetWorth struct {
	AccountID       string
	Name            string
	Type            domain.AccountType
	Value           decimal.Decimal
	IsLiability     bool
	PreviousBalance *decimal.Decimal
}

// NetWorthSummary is the current net worth with per-account detail.
type NetWorthSummary struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
	Accounts         []AccountNetWorth
}

// NetWorthPoint is one month of reconstructed net worth history.
type NetWorthPoint struct {
	Month       time.Time // first day of the month, UTC
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

// NetWorthSummary computes current net worth across active accounts.
// Credit and loan balances count as liabilities at absolute value; real
// estate contributes equity, estimated value minus what is still owed.
func (e *Engine) NetWorthSummary(ctx context.Context) (*NetWorthSummary, error) {
	active := true
	accounts, err := e.accounts.List(ctx, domain.AccountFilter{IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("NetWorthSummary: listing accounts: %w", err)
	}

	priorMonthEnd := startOfMonth(e.now()).Add(-time.Nanosecond)

	summary := &NetWorthSummary{}
	for _, acc := range accounts {
		value := accountValue(acc, acc.CurrentBalance)

		prev, err := e.balances.LatestOnOrBefore(ctx, acc.ID, priorMonthEnd)
		if err != nil {
			return nil, fmt.Errorf("NetWorthSummary: previous balance for %s: %w", acc.ID, err)
		}
		var prevBalance *decimal.Decimal
		if prev != nil {
			b := prev.Balance
			prevBalance = &b
		}

		entry := AccountNetWorth{
			AccountID:       acc.ID,
			Name:            acc.Name,
			Type:            acc.Type,
			Value:           value,
			IsLiability:     acc.Type.IsLiability(),
			PreviousBalance: prevBalance,
		}
		summary.Accounts = append(summary.Accounts, entry)

		if entry.IsLiability {
			summary.TotalLiabilities = summary.TotalLiabilities.Add(value)
		} else {
			summary.TotalAssets = summary.TotalAssets.Add(value)
		}
	}

	summary.NetWorth = summary.TotalAssets.Sub(summary.TotalLiabilities)
	return summary, nil
}

// NetWorthHistory reconstructs one net-worth point per month for the last
// months months, newest last. Each account contributes its latest snapshot
// within the month, else the last known value carried forward from an
// earlier month; values are never interpolated and never read backward from
// later months. An account with no snapshot yet contributes nothing to that
// month.
func (e *Engine) NetWorthHistory(ctx context.Context, months int) ([]NetWorthPoint, error) {
	if months < 1 {
		return nil, fmt.Errorf("NetWorthHistory: months must be positive, got %d", months)
	}

	active := true
	accounts, err := e.accounts.List(ctx, domain.AccountFilter{IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("NetWorthHistory: listing accounts: %w", err)
	}

	now := e.now()
	snapshots, err := e.balances.ListThrough(ctx, endOfMonth(now))
	if err != nil {
		return nil, fmt.Errorf("NetWorthHistory: listing snapshots: %w", err)
	}

	// Snapshots arrive in ascending date order; group per account and walk
	// each list once with a per-account cursor.
	byAccount := make(map[string][]*domain.Balance)
	for _, snap := range snapshots {
		byAccount[snap.AccountID] = append(byAccount[snap.AccountID], snap)
	}
	cursor := make(map[string]int, len(byAccount))
	lastKnown := make(map[string]*decimal.Decimal, len(byAccount))

	points := make([]NetWorthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := startOfMonth(now).AddDate(0, -i, 0)
		cutoff := endOfMonth(month)

		point := NetWorthPoint{Month: month}
		for _, acc := range accounts {
			snaps := byAccount[acc.ID]
			for cursor[acc.ID] < len(snaps) && !snaps[cursor[acc.ID]].Date.After(cutoff) {
				b := snaps[cursor[acc.ID]].Balance
				lastKnown[acc.ID] = &b
				cursor[acc.ID]++
			}

			balance := lastKnown[acc.ID]
			if balance == nil {
				continue
			}

			value := accountValue(acc, *balance)
			if acc.Type.IsLiability() {
				point.Liabilities = point.Liabilities.Add(value)
			} else {
				point.Assets = point.Assets.Add(value)
			}
		}
		point.NetWorth = point.Assets.Sub(point.Liabilities)
		points = append(points, point)
	}

	return points, nil
}

// accountValue converts a raw balance into the account's net-worth
// contribution. Liabilities are sign-agnostic: they sum as magnitude
// regardless of how the balance was signed. Real-estate accounts contribute
// equity against the current estimated value; estimated value has no
// history of its own, so historical months reuse the current one.
func accountValue(acc *domain.Account, balance decimal.Decimal) decimal.Decimal {
	if acc.Type.IsLiability() {
		return balance.Abs()
	}
	if acc.Type == domain.AccountRealEstate {
		est := decimal.Zero
		if acc.EstimatedValue != nil {
			est = *acc.EstimatedValue
		}
		return est.Sub(balance)
	}
	return balance
}
