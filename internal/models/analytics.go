package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is an append-only tracking record. Events are never
// updated or deleted by the application.
type AnalyticsEvent struct {
	ID        uuid.UUID      `json:"id"`
	EventType string         `json:"event_type"`
	EventData map[string]any `json:"event_data"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	SessionID *string        `json:"session_id,omitempty"`
	Page      string         `json:"page"`
	CreatedAt time.Time      `json:"created_at"`
}

// EventPageView is the event type counted by the dashboard summary.
const EventPageView = "page_view"

// AnalyticsSummary holds the dashboard aggregates, computed by full scans.
// Fine at this data scale.
type AnalyticsSummary struct {
	TotalPageViews   int              `json:"total_page_views"`
	TotalContacts    int              `json:"total_contacts"`
	TotalEnrollments int              `json:"total_enrollments"`
	RecentEvents     []AnalyticsEvent `json:"recent_events"`
}
