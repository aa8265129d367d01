package handlers

import (
	"net/http"

	"stratium/internal/activity"
)

// Activity exposes the admin activity log.
type Activity struct {
	log *activity.Log
}

// NewActivity creates a new Activity handler group.
func NewActivity(log *activity.Log) *Activity {
	return &Activity{log: log}
}

// List returns the recorded entries, newest first
// (GET /api/admin/activity).
func (h *Activity) List(w http.ResponseWriter, r *http.Request) {
	entries := h.log.List()
	if entries == nil {
		entries = []activity.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Clear empties the log (DELETE /api/admin/activity).
func (h *Activity) Clear(w http.ResponseWriter, r *http.Request) {
	h.log.Clear()
	w.WriteHeader(http.StatusNoContent)
}
