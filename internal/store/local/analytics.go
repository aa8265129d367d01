package local

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stratium/internal/models"
)

// AnalyticsStore implements store.AnalyticsRepo on the local document.
type AnalyticsStore struct {
	db *DB
}

// NewAnalyticsStore creates an AnalyticsStore over the given document store.
func NewAnalyticsStore(db *DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// Track appends an event with an assigned id and timestamp.
func (s *AnalyticsStore) Track(e *models.AnalyticsEvent) (*models.AnalyticsEvent, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec := *e
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	if rec.EventData == nil {
		rec.EventData = map[string]any{}
	}

	s.db.doc.AnalyticsEvents = prepend(s.db.doc.AnalyticsEvents, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("track event: %w", err)
	}
	return &rec, nil
}

// Events returns events newest first, optionally filtered by type.
func (s *AnalyticsStore) Events(eventType string, limit int) ([]models.AnalyticsEvent, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := filtered(s.db.doc.AnalyticsEvents, func(e models.AnalyticsEvent) bool {
		return eventType == "" || e.EventType == eventType
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Summary computes the dashboard aggregates by scanning the document.
func (s *AnalyticsStore) Summary() (*models.AnalyticsSummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	summary := &models.AnalyticsSummary{
		TotalContacts:    len(s.db.doc.Contacts),
		TotalEnrollments: len(s.db.doc.Enrollments),
	}
	for _, e := range s.db.doc.AnalyticsEvents {
		if e.EventType == models.EventPageView {
			summary.TotalPageViews++
		}
	}

	recent := s.db.doc.AnalyticsEvents
	if len(recent) > 10 {
		recent = recent[:10]
	}
	summary.RecentEvents = make([]models.AnalyticsEvent, len(recent))
	copy(summary.RecentEvents, recent)

	return summary, nil
}
