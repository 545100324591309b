package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

// PricesHandler handles market price endpoints.
type PricesHandler struct {
	prices *store.Prices
	log    zerolog.Logger
}

// NewPricesHandler creates a new prices handler.
func NewPricesHandler(prices *store.Prices, log zerolog.Logger) *PricesHandler {
	return &PricesHandler{prices: prices, log: log}
}

// Record handles POST /api/prices
func (h *PricesHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string          `json:"ticker"`
		Date   time.Time       `json:"date"`
		Price  decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Ticker == "" || req.Date.IsZero() {
		middleware.WriteError(w, http.StatusBadRequest, "ticker and date are required")
		return
	}

	err := h.prices.Record(r.Context(), domain.PricePoint{
		Ticker: req.Ticker,
		Date:   req.Date,
		Price:  req.Price,
	})
	if err != nil {
		h.log.Error().Err(err).Str("ticker", req.Ticker).Msg("Failed to record price")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to record price")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /api/prices/:ticker?from=
func (h *PricesHandler) History(w http.ResponseWriter, r *http.Request, ticker string) {
	var from time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "from must be RFC3339")
			return
		}
		from = parsed
	}

	points, err := h.prices.History(r.Context(), ticker, from)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to load price history")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load price history")
		return
	}

	type priceView struct {
		Ticker string          `json:"ticker"`
		Date   time.Time       `json:"date"`
		Price  decimal.Decimal `json:"price"`
	}
	views := make([]priceView, len(points))
	for i, p := range points {
		views[i] = priceView{Ticker: p.Ticker, Date: p.Date, Price: p.Price}
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}
