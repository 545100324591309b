package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

// HoldingsHandler handles holding and target allocation endpoints.
type HoldingsHandler struct {
	holdings    *store.Holdings
	allocations *store.Allocations
	log         zerolog.Logger
}

// NewHoldingsHandler creates a new holdings handler.
func NewHoldingsHandler(holdings *store.Holdings, allocations *store.Allocations, log zerolog.Logger) *HoldingsHandler {
	return &HoldingsHandler{holdings: holdings, allocations: allocations, log: log}
}

// List handles GET /api/holdings
func (h *HoldingsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.HoldingFilter
	q := r.URL.Query()
	if v := q.Get("accountId"); v != "" {
		filter.AccountID = &v
	}
	if v := q.Get("assetClass"); v != "" {
		filter.AssetClass = &v
	}

	holdings, err := h.holdings.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list holdings")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list holdings")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, holdingsToViews(holdings))
}

// Create handles POST /api/holdings
func (h *HoldingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.HoldingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.AccountID == "" || in.Name == "" || in.AssetClass == "" {
		middleware.WriteError(w, http.StatusBadRequest, "accountId, name and assetClass are required")
		return
	}

	holding, err := h.holdings.Create(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create holding")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create holding")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, holdingToView(holding))
}

// Get handles GET /api/holdings/:id
func (h *HoldingsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	holding, err := h.holdings.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("holding_id", id).Msg("Failed to get holding")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get holding")
		return
	}
	if holding == nil {
		middleware.WriteError(w, http.StatusNotFound, "Holding not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, holdingToView(holding))
}

// Patch handles PATCH /api/holdings/:id
func (h *HoldingsHandler) Patch(w http.ResponseWriter, r *http.Request, id string) {
	var patch domain.HoldingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	holding, err := h.holdings.Update(r.Context(), id, patch)
	if err != nil {
		h.log.Error().Err(err).Str("holding_id", id).Msg("Failed to update holding")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update holding")
		return
	}
	if holding == nil {
		middleware.WriteError(w, http.StatusNotFound, "Holding not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, holdingToView(holding))
}

// Delete handles DELETE /api/holdings/:id
func (h *HoldingsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ok, err := h.holdings.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("holding_id", id).Msg("Failed to delete holding")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete holding")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Holding not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /api/holdings/reorder
func (h *HoldingsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var order []domain.SortUpdate
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(order) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Empty reorder batch")
		return
	}

	if err := h.holdings.Reorder(r.Context(), order); err != nil {
		h.log.Error().Err(err).Msg("Failed to reorder holdings")
		middleware.WriteError(w, http.StatusConflict, "Reorder failed; no positions changed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTargets handles GET /api/allocations?accountId=
func (h *HoldingsHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.allocations.List(r.Context(), scopeParam(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list allocation targets")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list allocation targets")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, allocationTargetsToViews(targets))
}

// SetTarget handles PUT /api/allocations
func (h *HoldingsHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID  *string         `json:"accountId"`
		AssetClass string          `json:"assetClass"`
		TargetPct  decimal.Decimal `json:"targetPct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AssetClass == "" {
		middleware.WriteError(w, http.StatusBadRequest, "assetClass is required")
		return
	}
	if req.TargetPct.IsNegative() || req.TargetPct.GreaterThan(decimal.NewFromInt(100)) {
		middleware.WriteError(w, http.StatusBadRequest, "targetPct must be between 0 and 100")
		return
	}

	target, err := h.allocations.Set(r.Context(), domain.TargetAllocationInput{
		AccountID:  req.AccountID,
		AssetClass: req.AssetClass,
		TargetPct:  req.TargetPct,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to set allocation target")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to set allocation target")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, allocationTargetView{
		ID:         target.ID,
		AccountID:  target.AccountID,
		AssetClass: target.AssetClass,
		TargetPct:  target.TargetPct,
	})
}

// DeleteTarget handles DELETE /api/allocations/:assetClass?accountId=
func (h *HoldingsHandler) DeleteTarget(w http.ResponseWriter, r *http.Request, assetClass string) {
	ok, err := h.allocations.Delete(r.Context(), scopeParam(r), assetClass)
	if err != nil {
		h.log.Error().Err(err).Str("asset_class", assetClass).Msg("Failed to delete allocation target")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete allocation target")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Allocation target not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// scopeParam reads the optional accountId query parameter; absent means the
// portfolio-wide scope.
func scopeParam(r *http.Request) *string {
	if v := r.URL.Query().Get("accountId"); v != "" {
		return &v
	}
	return nil
}
