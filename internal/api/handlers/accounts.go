// Package handlers exposes the entity stores and the analytics engine over
// JSON HTTP. Handlers stay thin: decode, call the store, map the nil
// not-found sentinel to 404, encode.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

// AccountsHandler handles account endpoints.
type AccountsHandler struct {
	accounts *store.Accounts
	balances *store.Balances
	log      zerolog.Logger
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(accounts *store.Accounts, balances *store.Balances, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, balances: balances, log: log}
}

// List handles GET /api/accounts
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.AccountFilter
	q := r.URL.Query()
	if v := q.Get("active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := q.Get("type"); v != "" {
		typ := domain.AccountType(v)
		filter.Type = &typ
	}

	accounts, err := h.accounts.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, accountsToViews(accounts))
}

// Create handles POST /api/accounts
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.Type == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name and type are required")
		return
	}

	account, err := h.accounts.Create(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, accountToView(account))
}

// Get handles GET /api/accounts/:id
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", id).Msg("Failed to get account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get account")
		return
	}
	if account == nil {
		middleware.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, accountToView(account))
}

// Patch handles PATCH /api/accounts/:id
func (h *AccountsHandler) Patch(w http.ResponseWriter, r *http.Request, id string) {
	var patch domain.AccountPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accounts.Update(r.Context(), id, patch)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", id).Msg("Failed to update account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update account")
		return
	}
	if account == nil {
		middleware.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, accountToView(account))
}

// Delete handles DELETE /api/accounts/:id
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ok, err := h.accounts.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", id).Msg("Failed to delete account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /api/accounts/reorder
func (h *AccountsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var order []domain.SortUpdate
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(order) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Empty reorder batch")
		return
	}

	if err := h.accounts.Reorder(r.Context(), order); err != nil {
		h.log.Error().Err(err).Msg("Failed to reorder accounts")
		middleware.WriteError(w, http.StatusConflict, "Reorder failed; no positions changed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBalances handles GET /api/accounts/:id/balances
func (h *AccountsHandler) ListBalances(w http.ResponseWriter, r *http.Request, id string) {
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", id).Msg("Failed to get account")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list balances")
		return
	}
	if account == nil {
		middleware.WriteError(w, http.StatusNotFound, "Account not found")
		return
	}

	snaps, err := h.balances.ListForAccount(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("account_id", id).Msg("Failed to list balances")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list balances")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, balancesToViews(snaps))
}
