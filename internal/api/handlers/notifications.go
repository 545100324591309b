package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/store"
)

var (
	errInvalidConfig = errors.New("config does not match the notification type")
	errUnknownType   = errors.New("unknown notification type")
)

// NotificationsHandler handles notification rule endpoints.
type NotificationsHandler struct {
	notifications *store.Notifications
	log           zerolog.Logger
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(notifications *store.Notifications, log zerolog.Logger) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications, log: log}
}

// List handles GET /api/notifications
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.NotificationFilter
	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		typ := domain.NotificationType(v)
		filter.Type = &typ
	}
	if v := q.Get("enabled"); v != "" {
		enabled := v == "true"
		filter.Enabled = &enabled
	}

	rules, err := h.notifications.List(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list notifications")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	views := make([]notificationView, len(rules))
	for i, n := range rules {
		views[i] = notificationToView(n)
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// Create handles POST /api/notifications
func (h *NotificationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    domain.NotificationType `json:"type"`
		Enabled bool                    `json:"enabled"`
		Config  json.RawMessage         `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Config) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "config is required")
		return
	}

	config, err := decodeConfig(req.Type, req.Config)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rule, err := h.notifications.Create(r.Context(), domain.NotificationInput{
		Type:    req.Type,
		Enabled: req.Enabled,
		Config:  config,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create notification")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, notificationToView(rule))
}

// Get handles GET /api/notifications/:id
func (h *NotificationsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	rule, err := h.notifications.Get(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("notification_id", id).Msg("Failed to get notification")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get notification")
		return
	}
	if rule == nil {
		middleware.WriteError(w, http.StatusNotFound, "Notification not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, notificationToView(rule))
}

// SetEnabled handles PUT /api/notifications/:id/enabled
func (h *NotificationsHandler) SetEnabled(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ok, err := h.notifications.SetEnabled(r.Context(), id, req.Enabled)
	if err != nil {
		h.log.Error().Err(err).Str("notification_id", id).Msg("Failed to toggle notification")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to toggle notification")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ok, err := h.notifications.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("notification_id", id).Msg("Failed to delete notification")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "Notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeConfig parses the config payload into the variant the type demands.
func decodeConfig(typ domain.NotificationType, raw json.RawMessage) (domain.NotificationConfig, error) {
	switch typ {
	case domain.NotificationBillReminder:
		var cfg domain.BillReminderConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, errInvalidConfig
		}
		return cfg, nil
	case domain.NotificationGoalMilestone:
		var cfg domain.GoalMilestoneConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, errInvalidConfig
		}
		return cfg, nil
	case domain.NotificationBalanceAlert:
		var cfg domain.BalanceAlertConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, errInvalidConfig
		}
		return cfg, nil
	default:
		return nil, errUnknownType
	}
}
