package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RebalanceAction is the suggested direction for one asset class.
type RebalanceAction string

const (
	ActionHold RebalanceAction = "hold"
	ActionBuy  RebalanceAction = "buy"
	ActionSell RebalanceAction = "sell"
)

// driftThreshold is the band, in percentage points, within which an asset
// class is left alone.
var driftThreshold = decimal.NewFromInt(1)

// RebalanceSuggestion is one asset class's suggested trade toward its
// target.
type RebalanceSuggestion struct {
	AssetClass string
	ActualPct  decimal.Decimal
	TargetPct  decimal.Decimal
	Drift      decimal.Decimal
	Action     RebalanceAction
	Amount     decimal.Decimal // suggested trade size; zero for hold
}

// RebalanceSuggestions compares actual allocation against targets and
// suggests trades, sorted by absolute drift descending. A drift inside
// (−1, 1) holds; at or beyond one percentage point the overweight side
// sells and the underweight side buys |drift|% of the total market value.
// Asset classes without a target are excluded entirely.
func (e *Engine) RebalanceSuggestions(ctx context.Context, accountID *string) ([]RebalanceSuggestion, error) {
	allocation, err := e.AssetAllocation(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("RebalanceSuggestions: %w", err)
	}

	var suggestions []RebalanceSuggestion
	hundred := decimal.NewFromInt(100)
	for _, slice := range allocation.Slices {
		if slice.TargetPct == nil || slice.Drift == nil {
			continue
		}
		drift := *slice.Drift

		s := RebalanceSuggestion{
			AssetClass: slice.AssetClass,
			ActualPct:  slice.ActualPct,
			TargetPct:  *slice.TargetPct,
			Drift:      drift,
			Action:     ActionHold,
		}
		if drift.Abs().GreaterThanOrEqual(driftThreshold) {
			s.Amount = drift.Abs().Div(hundred).Mul(allocation.TotalMarketValue).Round(2)
			if drift.IsPositive() {
				s.Action = ActionSell
			} else {
				s.Action = ActionBuy
			}
		}
		suggestions = append(suggestions, s)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.Drift.Abs().Equal(b.Drift.Abs()) {
			return a.Drift.Abs().GreaterThan(b.Drift.Abs())
		}
		return a.AssetClass < b.AssetClass
	})

	return suggestions, nil
}
