package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/analytics"
	"github.com/dvloznov/finance-vault/internal/api/middleware"
)

// AnalyticsHandler exposes the derived computations. Everything here is
// read-only; the engine recomputes from store state on every call.
type AnalyticsHandler struct {
	engine *analytics.Engine
	log    zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(engine *analytics.Engine, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine, log: log}
}

// NetWorth handles GET /api/analytics/net-worth
func (h *AnalyticsHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.NetWorthSummary(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute net worth")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute net worth")
		return
	}

	type entry struct {
		AccountID       string           `json:"accountId"`
		Name            string           `json:"name"`
		Type            string           `json:"type"`
		Value           decimal.Decimal  `json:"value"`
		IsLiability     bool             `json:"isLiability"`
		PreviousBalance *decimal.Decimal `json:"previousBalance,omitempty"`
	}
	entries := make([]entry, len(summary.Accounts))
	for i, a := range summary.Accounts {
		entries[i] = entry{
			AccountID:       a.AccountID,
			Name:            a.Name,
			Type:            string(a.Type),
			Value:           a.Value,
			IsLiability:     a.IsLiability,
			PreviousBalance: a.PreviousBalance,
		}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"totalAssets":      summary.TotalAssets,
		"totalLiabilities": summary.TotalLiabilities,
		"netWorth":         summary.NetWorth,
		"accounts":         entries,
	})
}

// NetWorthHistory handles GET /api/analytics/net-worth/history?months=
func (h *AnalyticsHandler) NetWorthHistory(w http.ResponseWriter, r *http.Request) {
	months := 12
	if v := r.URL.Query().Get("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			middleware.WriteError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		months = parsed
	}

	points, err := h.engine.NetWorthHistory(r.Context(), months)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute net worth history")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute net worth history")
		return
	}

	type point struct {
		Month       time.Time       `json:"month"`
		Assets      decimal.Decimal `json:"assets"`
		Liabilities decimal.Decimal `json:"liabilities"`
		NetWorth    decimal.Decimal `json:"netWorth"`
	}
	views := make([]point, len(points))
	for i, p := range points {
		views[i] = point{Month: p.Month, Assets: p.Assets, Liabilities: p.Liabilities, NetWorth: p.NetWorth}
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// Spending handles GET /api/analytics/spending?year=&month=
func (h *AnalyticsHandler) Spending(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			middleware.WriteError(w, http.StatusBadRequest, "month must be 1-12")
			return
		}
		month = time.Month(parsed)
	}

	summary, err := h.engine.SpendingSummary(r.Context(), year, month)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute spending summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute spending summary")
		return
	}

	type category struct {
		Category   string          `json:"category"`
		Amount     decimal.Decimal `json:"amount"`
		Percentage decimal.Decimal `json:"percentage"`
	}
	categories := make([]category, len(summary.Categories))
	for i, c := range summary.Categories {
		categories[i] = category{Category: c.Category, Amount: c.Amount, Percentage: c.Percentage}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"month":      summary.Month,
		"total":      summary.Total,
		"categories": categories,
	})
}

// Allocation handles GET /api/analytics/allocation?accountId=
func (h *AnalyticsHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.engine.AssetAllocation(r.Context(), scopeParam(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute asset allocation")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute asset allocation")
		return
	}

	type slice struct {
		AssetClass  string           `json:"assetClass"`
		MarketValue decimal.Decimal  `json:"marketValue"`
		ActualPct   decimal.Decimal  `json:"actualPct"`
		TargetPct   *decimal.Decimal `json:"targetPct,omitempty"`
		Drift       *decimal.Decimal `json:"drift,omitempty"`
	}
	slices := make([]slice, len(allocation.Slices))
	for i, s := range allocation.Slices {
		slices[i] = slice{
			AssetClass:  s.AssetClass,
			MarketValue: s.MarketValue,
			ActualPct:   s.ActualPct,
			TargetPct:   s.TargetPct,
			Drift:       s.Drift,
		}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"totalMarketValue": allocation.TotalMarketValue,
		"slices":           slices,
	})
}

// Rebalance handles GET /api/analytics/rebalance?accountId=
func (h *AnalyticsHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.engine.RebalanceSuggestions(r.Context(), scopeParam(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute rebalance suggestions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute rebalance suggestions")
		return
	}

	type suggestion struct {
		AssetClass string          `json:"assetClass"`
		ActualPct  decimal.Decimal `json:"actualPct"`
		TargetPct  decimal.Decimal `json:"targetPct"`
		Drift      decimal.Decimal `json:"drift"`
		Action     string          `json:"action"`
		Amount     decimal.Decimal `json:"amount"`
	}
	views := make([]suggestion, len(suggestions))
	for i, s := range suggestions {
		views[i] = suggestion{
			AssetClass: s.AssetClass,
			ActualPct:  s.ActualPct,
			TargetPct:  s.TargetPct,
			Drift:      s.Drift,
			Action:     string(s.Action),
			Amount:     s.Amount,
		}
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// Performance handles GET /api/analytics/performance?period=
func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	period := analytics.Period12M
	if v := r.URL.Query().Get("period"); v != "" {
		period = analytics.PerformancePeriod(v)
		switch period {
		case analytics.Period1M, analytics.Period3M, analytics.Period6M, analytics.Period12M, analytics.PeriodAll:
		default:
			middleware.WriteError(w, http.StatusBadRequest, "period must be one of 1m, 3m, 6m, 12m, all")
			return
		}
	}

	report, err := h.engine.Performance(r.Context(), period)
	if err != nil {
		h.log.Error().Err(err).Str("period", string(period)).Msg("Failed to compute performance")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute performance")
		return
	}

	type point struct {
		Date      time.Time        `json:"date"`
		Portfolio decimal.Decimal  `json:"portfolio"`
		Benchmark *decimal.Decimal `json:"benchmark,omitempty"`
	}
	points := make([]point, len(report.Points))
	for i, p := range report.Points {
		points[i] = point{Date: p.Date, Portfolio: p.Portfolio, Benchmark: p.Benchmark}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"period":         string(report.Period),
		"points":         points,
		"currentValue":   report.CurrentValue,
		"totalCost":      report.TotalCost,
		"totalReturnPct": report.TotalReturnPct,
	})
}
