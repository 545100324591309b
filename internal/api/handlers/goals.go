package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

// GoalsHandler handles goal endpoints.
type GoalsHandler struct {
	goals *store.Goals
	log   zerolog.Logger
}

// NewGoalsHandler creates a new goals handler.
func NewGoalsHandler(goals *store.Goals, log zerolog.Logger) *GoalsHandler {
	return &GoalsHandler{goals: goals, log: log}
}

// List handles GET /api/goals
func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.GoalFilter
	q := r.URL.Query()
	if v := q.Get("active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := q.Get("completed"); v != "" {
		completed := v == "true"
		filter.IsCompleted = &completed
	}
	if v := q.Get("type"); v != "" {
		typ := domain.GoalType(v)
		filter.Type = &typ
	}

	goals, err := h.goals.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list goals")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, goalsToViews(goals))
}

// Create handles POST /api/goals
func (h *GoalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.Type == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name and type are required")
		return
	}

	goal, err := h.goals.Create(r.Context(), in)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, goalToView(goal))
}

// Get handles GET /api/goals/:id
func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	goal, err := h.goals.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", id).Msg("Failed to get goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get goal")
		return
	}
	if goal == nil {
		middleware.WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, goalToView(goal))
}

// Patch handles PATCH /api/goals/:id
func (h *GoalsHandler) Patch(w http.ResponseWriter, r *http.Request, id string) {
	var patch domain.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goals.Update(r.Context(), id, patch)
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", id).Msg("Failed to update goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}
	if goal == nil {
		middleware.WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, goalToView(goal))
}

// Delete handles DELETE /api/goals/:id
func (h *GoalsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ok, err := h.goals.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("goal_id", id).Msg("Failed to delete goal")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /api/goals/reorder
func (h *GoalsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var order []domain.SortUpdate
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(order) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Empty reorder batch")
		return
	}

	if err := h.goals.Reorder(r.Context(), order); err != nil {
		h.log.Error().Err(err).Msg("Failed to reorder goals")
		middleware.WriteError(w, http.StatusConflict, "Reorder failed; no positions changed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
