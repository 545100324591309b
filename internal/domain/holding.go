package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the decrypted domain view of an investment position. Name,
// ticker, shares, cost basis, current price and notes are stored encrypted;
// AssetClass stays plaintext so allocations can group without decrypting.
type Holding struct {
	ID           string
	AccountID    string
	Name         string
	Ticker       *string
	Shares       *decimal.Decimal
	CostBasis    *decimal.Decimal
	CurrentPrice *decimal.Decimal
	AssetClass   string
	Notes        *string
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MarketValue returns shares × current price, or nil when either input is
// missing. Derived values are never persisted.
func (h *Holding) MarketValue() *decimal.Decimal {
	if h.Shares == nil || h.CurrentPrice == nil {
		return nil
	}
	v := h.Shares.Mul(*h.CurrentPrice)
	return &v
}

// GainLoss returns market value minus total cost, or nil when shares,
// current price or cost basis is missing.
func (h *Holding) GainLoss() *decimal.Decimal {
	mv := h.MarketValue()
	if mv == nil || h.CostBasis == nil {
		return nil
	}
	v := mv.Sub(h.Shares.Mul(*h.CostBasis))
	return &v
}

// GainLossPct returns the gain/loss as a percentage of total cost, or nil
// when the gain/loss is undefined or the cost is zero.
func (h *Holding) GainLossPct() *decimal.Decimal {
	gl := h.GainLoss()
	if gl == nil {
		return nil
	}
	cost := h.Shares.Mul(*h.CostBasis)
	if cost.IsZero() {
		return nil
	}
	v := gl.Div(cost).Mul(decimal.NewFromInt(100))
	return &v
}

// HoldingInput is the validated plaintext payload for creating a holding.
type HoldingInput struct {
	AccountID    string
	Name         string
	Ticker       *string
	Shares       *decimal.Decimal
	CostBasis    *decimal.Decimal
	CurrentPrice *decimal.Decimal
	AssetClass   string
	Notes        *string
}

// HoldingPatch is a partial update for a holding.
type HoldingPatch struct {
	Name         Field[string]
	Ticker       Field[string]
	Shares       Field[decimal.Decimal]
	CostBasis    Field[decimal.Decimal]
	CurrentPrice Field[decimal.Decimal]
	AssetClass   Field[string]
	Notes        Field[string]
}

// HoldingFilter narrows holding listings on plaintext columns.
type HoldingFilter struct {
	AccountID  *string
	AssetClass *string
}

// TargetAllocation is one target percentage for an asset class, either
// portfolio-wide (nil AccountID) or scoped to a single account. The target
// percentage is stored encrypted. Callers own the invariant that targets
// within a scope sum to 100.
type TargetAllocation struct {
	ID         string
	AccountID  *string
	AssetClass string
	TargetPct  decimal.Decimal
}

// TargetAllocationInput is the payload for creating or replacing a target.
type TargetAllocationInput struct {
	AccountID  *string
	AssetClass string
	TargetPct  decimal.Decimal
}

// PricePoint is one dated price observation for a ticker. Market prices of
// public instruments are not personal data, so they persist in plaintext and
// can be range-queried by date.
type PricePoint struct {
	Ticker string
	Date   time.Time
	Price  decimal.Decimal
}
