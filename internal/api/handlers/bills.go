package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

// BillsHandler handles bill and bill payment endpoints.
type BillsHandler struct {
	bills       *store.Bills
	horizonDays int
	log         zerolog.Logger
}

// NewBillsHandler creates a new bills handler. horizonDays is the default
// upcoming-bills window.
func NewBillsHandler(bills *store.Bills, horizonDays int, log zerolog.Logger) *BillsHandler {
	return &BillsHandler{bills: bills, horizonDays: horizonDays, log: log}
}

// List handles GET /api/bills
func (h *BillsHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	bills, err := h.bills.List(r.Context(), activeOnly)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list bills")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list bills")
		return
	}
	views := make([]billView, len(bills))
	for i, b := range bills {
		views[i] = billToView(b)
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// Create handles POST /api/bills
func (h *BillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.BillInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.Frequency == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name and frequency are required")
		return
	}

	bill, err := h.bills.Create(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create bill")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, billToView(bill))
}

// Get handles GET /api/bills/:id
func (h *BillsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.bills.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", id).Msg("Failed to get bill")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get bill")
		return
	}
	if bill == nil {
		middleware.WriteError(w, http.StatusNotFound, "Bill not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, billToView(bill))
}

// Patch handles PATCH /api/bills/:id
func (h *BillsHandler) Patch(w http.ResponseWriter, r *http.Request, id string) {
	var patch domain.BillPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.bills.Update(r.Context(), id, patch)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", id).Msg("Failed to update bill")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update bill")
		return
	}
	if bill == nil {
		middleware.WriteError(w, http.StatusNotFound, "Bill not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, billToView(bill))
}

// Delete handles DELETE /api/bills/:id
func (h *BillsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ok, err := h.bills.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", id).Msg("Failed to delete bill")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete bill")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Bill not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPayment handles PUT /api/bills/:id/payments
func (h *BillsHandler) SetPayment(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		DueDate time.Time        `json:"dueDate"`
		Paid    bool             `json:"paid"`
		Amount  *decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DueDate.IsZero() {
		middleware.WriteError(w, http.StatusBadRequest, "dueDate is required")
		return
	}

	payment, err := h.bills.SetPaymentPaid(r.Context(), id, req.DueDate, req.Paid, req.Amount)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", id).Msg("Failed to record bill payment")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to record bill payment")
		return
	}
	if payment == nil {
		middleware.WriteError(w, http.StatusNotFound, "Bill not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, billPaymentToView(payment))
}

// ListPayments handles GET /api/bills/:id/payments
func (h *BillsHandler) ListPayments(w http.ResponseWriter, r *http.Request, id string) {
	bill, err := h.bills.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", id).Msg("Failed to get bill")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	if bill == nil {
		middleware.WriteError(w, http.StatusNotFound, "Bill not found")
		return
	}

	payments, err := h.bills.ListPayments(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", id).Msg("Failed to list payments")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	views := make([]billPaymentView, len(payments))
	for i, p := range payments {
		views[i] = billPaymentToView(p)
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// Upcoming handles GET /api/bills/upcoming?days=
func (h *BillsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := h.horizonDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			middleware.WriteError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	upcoming, err := h.bills.UpcomingDue(r.Context(), time.Now().UTC(), days)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list upcoming bills")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list upcoming bills")
		return
	}
	views := make([]upcomingBillView, len(upcoming))
	for i, u := range upcoming {
		views[i] = upcomingBillView{Bill: billToView(&u.Bill), DueDate: u.DueDate, Paid: u.Paid}
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}
