package handlers

import (
	"log/slog"
	"net/http"

	"stratium/internal/middleware"
	"stratium/internal/models"
	"stratium/internal/store"
)

// Analytics groups the tracking and dashboard handlers.
type Analytics struct {
	analytics store.AnalyticsRepo
}

// NewAnalytics creates a new Analytics handler group.
func NewAnalytics(analytics store.AnalyticsRepo) *Analytics {
	return &Analytics{analytics: analytics}
}

// Track records an event (POST /api/analytics/track). The endpoint is
// public and best-effort: a storage failure is logged and the client
// still gets 202, because tracking must never break a page.
func (h *Analytics) Track(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventType string         `json:"event_type"`
		EventData map[string]any `json:"event_data"`
		SessionID *string        `json:"session_id"`
		Page      string         `json:"page"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.EventType == "" {
		req.EventType = models.EventPageView
	}

	event := &models.AnalyticsEvent{
		EventType: req.EventType,
		EventData: req.EventData,
		SessionID: req.SessionID,
		Page:      req.Page,
	}
	if identity := middleware.IdentityFromCtx(r.Context()); identity != nil {
		userID := identity.UserID
		event.UserID = &userID
	}

	if _, err := h.analytics.Track(event); err != nil {
		slog.Debug("analytics track failed", "error", err)
	}
	w.WriteHeader(http.StatusAccepted)
}

// Events lists recent events (GET /api/analytics/events?type=&limit=, admin).
func (h *Analytics) Events(w http.ResponseWriter, r *http.Request) {
	eventType := r.URL.Query().Get("type")
	limit := intParam(r, "limit", 100)

	items, err := h.analytics.Events(eventType, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.AnalyticsEvent{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Summary returns the dashboard aggregates (GET /api/analytics/summary, admin).
func (h *Analytics) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.analytics.Summary()
	if err != nil {
		respondError(w, err)
		return
	}
	if sum.RecentEvents == nil {
		sum.RecentEvents = []models.AnalyticsEvent{}
	}
	respondJSON(w, http.StatusOK, sum)
}
