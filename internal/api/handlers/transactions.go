package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

// TransactionsHandler handles transaction endpoints.
type TransactionsHandler struct {
	transactions *store.Transactions
	log          zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(transactions *store.Transactions, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, log: log}
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.TransactionFilter
	q := r.URL.Query()
	if v := q.Get("accountId"); v != "" {
		filter.AccountID = &v
	}
	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "from must be RFC3339")
			return
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "to must be RFC3339")
			return
		}
		filter.To = &to
	}

	txns, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	views := make([]transactionView, len(txns))
	for i, t := range txns {
		views[i] = transactionToView(t)
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// Create handles POST /api/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Date.IsZero() {
		middleware.WriteError(w, http.StatusBadRequest, "date is required")
		return
	}

	txn, err := h.transactions.Create(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, transactionToView(txn))
}

// Get handles GET /api/transactions/:id
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	txn, err := h.transactions.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}
	if txn == nil {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, transactionToView(txn))
}

// Delete handles DELETE /api/transactions/:id
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ok, err := h.transactions.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
