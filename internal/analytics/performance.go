package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/domain"
)

// PerformancePeriod selects the lookback window of a performance series.
type PerformancePeriod string

const (
	Period1M  PerformancePeriod = "1m"
	Period3M  PerformancePeriod = "3m"
	Period6M  PerformancePeriod = "6m"
	Period12M PerformancePeriod = "12m"
	PeriodAll PerformancePeriod = "all"
)

// PerformancePoint is one dated sample of the reconstructed portfolio value
// and the rescaled benchmark. Benchmark is nil on dates before the
// benchmark series has data.
type PerformancePoint struct {
	Date      time.Time
	Portfolio decimal.Decimal
	Benchmark *decimal.Decimal
}

// PerformanceReport is the reconstructed portfolio series with the overall
// return against cost basis.
type PerformanceReport struct {
	Period         PerformancePeriod
	Points         []PerformancePoint
	CurrentValue   decimal.Decimal
	TotalCost      decimal.Decimal
	TotalReturnPct decimal.Decimal
}

// Performance reconstructs the portfolio value series over the lookback
// period. Each ticker contributes shares × its last known price on or
// before the date, carried forward across dates where the ticker has no
// point of its own; a date is never dropped because one ticker is stale.
// Holdings without a ticker contribute their current market value flatly,
// and savings cash joins the series the same way. The benchmark series is
// rescaled so its first point equals the portfolio's first point, making
// the two lines comparable growth curves rather than absolute prices.
func (e *Engine) Performance(ctx context.Context, period PerformancePeriod) (*PerformanceReport, error) {
	from, err := periodStart(period, e.now())
	if err != nil {
		return nil, fmt.Errorf("Performance: %w", err)
	}

	holdings, err := e.holdings.List(ctx, domain.HoldingFilter{})
	if err != nil {
		return nil, fmt.Errorf("Performance: listing holdings: %w", err)
	}

	// Shares per ticker, plus the flat contribution of everything without a
	// usable price series.
	sharesByTicker := make(map[string]decimal.Decimal)
	flat := decimal.Zero
	for _, h := range holdings {
		if h.Ticker != nil && h.Shares != nil {
			sharesByTicker[*h.Ticker] = sharesByTicker[*h.Ticker].Add(*h.Shares)
			continue
		}
		if mv := h.MarketValue(); mv != nil {
			flat = flat.Add(*mv)
		}
	}

	cash, err := e.savingsCash(ctx)
	if err != nil {
		return nil, fmt.Errorf("Performance: %w", err)
	}
	if cash.IsNegative() {
		cash = decimal.Zero
	}
	flat = flat.Add(cash)

	series := make(map[string][]domain.PricePoint, len(sharesByTicker))
	dateSet := make(map[time.Time]struct{})
	for ticker := range sharesByTicker {
		points, err := e.prices.History(ctx, ticker, from)
		if err != nil {
			return nil, fmt.Errorf("Performance: history for %s: %w", ticker, err)
		}
		series[ticker] = points
		for _, p := range points {
			dateSet[p.Date] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	report := &PerformanceReport{Period: period}
	cursor := make(map[string]int, len(series))
	lastPrice := make(map[string]*decimal.Decimal, len(series))
	for _, d := range dates {
		value := flat
		for ticker, points := range series {
			for cursor[ticker] < len(points) && !points[cursor[ticker]].Date.After(d) {
				p := points[cursor[ticker]].Price
				lastPrice[ticker] = &p
				cursor[ticker]++
			}
			if price := lastPrice[ticker]; price != nil {
				value = value.Add(sharesByTicker[ticker].Mul(*price))
			}
		}
		report.Points = append(report.Points, PerformancePoint{Date: d, Portfolio: value})
	}

	if err := e.overlayBenchmark(ctx, report, from); err != nil {
		return nil, fmt.Errorf("Performance: %w", err)
	}

	// Return against cost: current market value of everything plus cash,
	// over total cost basis plus cash.
	current := cash
	cost := cash
	for _, h := range holdings {
		if mv := h.MarketValue(); mv != nil {
			current = current.Add(*mv)
		}
		if h.Shares != nil && h.CostBasis != nil {
			cost = cost.Add(h.Shares.Mul(*h.CostBasis))
		}
	}
	report.CurrentValue = current
	report.TotalCost = cost
	if cost.IsPositive() {
		report.TotalReturnPct = current.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return report, nil
}

// overlayBenchmark fills in the benchmark value for each portfolio point,
// scaled to start at parity with the portfolio's first point.
func (e *Engine) overlayBenchmark(ctx context.Context, report *PerformanceReport, from time.Time) error {
	if e.benchmark == "" || len(report.Points) == 0 {
		return nil
	}

	points, err := e.prices.History(ctx, e.benchmark, from)
	if err != nil {
		return fmt.Errorf("overlayBenchmark: history for %s: %w", e.benchmark, err)
	}
	if len(points) == 0 {
		return nil
	}

	// Scale factor anchors the benchmark's first known price to the
	// portfolio's first value.
	firstValue := report.Points[0].Portfolio
	basePrice := points[0].Price
	cursor := 0
	var last *decimal.Decimal
	for i := range report.Points {
		d := report.Points[i].Date
		for cursor < len(points) && !points[cursor].Date.After(d) {
			p := points[cursor].Price
			last = &p
			cursor++
		}
		if last == nil {
			continue // before the benchmark's first point
		}
		if basePrice.IsZero() || firstValue.IsZero() {
			continue
		}
		scaled := last.Div(basePrice).Mul(firstValue)
		report.Points[i].Benchmark = &scaled
	}
	return nil
}

// periodStart converts a lookback period into its window start. PeriodAll
// yields the zero time, which every stored point postdates.
func periodStart(period PerformancePeriod, now time.Time) (time.Time, error) {
	switch period {
	case Period1M:
		return now.AddDate(0, -1, 0), nil
	case Period3M:
		return now.AddDate(0, -3, 0), nil
	case Period6M:
		return now.AddDate(0, -6, 0), nil
	case Period12M:
		return now.AddDate(0, -12, 0), nil
	case PeriodAll:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("periodStart: unknown period %q", period)
	}
}
