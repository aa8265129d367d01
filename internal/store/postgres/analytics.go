package postgres

import (
	"database/sql"
	"fmt"

	"stratium/internal/models"
)

// AnalyticsStore handles tracking events. Events are append-only; the
// dashboard summary is computed with plain aggregate queries.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore with the given database connection.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

const analyticsColumns = `id, event_type, event_data, user_id, session_id, page, created_at`

func scanAnalyticsEvent(row interface{ Scan(...any) error }, e *models.AnalyticsEvent) error {
	var data []byte
	if err := row.Scan(
		&e.ID, &e.EventType, &data, &e.UserID, &e.SessionID, &e.Page, &e.CreatedAt,
	); err != nil {
		return err
	}
	return jsonbScan(data, &e.EventData)
}

// Track records a new event and returns it with the generated id.
func (s *AnalyticsStore) Track(e *models.AnalyticsEvent) (*models.AnalyticsEvent, error) {
	data, err := jsonbValue(e.EventData)
	if err != nil {
		return nil, fmt.Errorf("track event: %w", err)
	}

	result := &models.AnalyticsEvent{}
	err = scanAnalyticsEvent(s.db.QueryRow(`
		INSERT INTO analytics_events (event_type, event_data, user_id, session_id, page)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+analyticsColumns,
		e.EventType, data, e.UserID, e.SessionID, e.Page,
	), result)
	if err != nil {
		return nil, fmt.Errorf("track event: %w", err)
	}
	return result, nil
}

// Events returns recent events newest first, optionally filtered by type.
// A limit of 0 means no limit.
func (s *AnalyticsStore) Events(eventType string, limit int) ([]models.AnalyticsEvent, error) {
	query := `SELECT ` + analyticsColumns + ` FROM analytics_events`
	args := []any{}
	if eventType != "" {
		query += ` WHERE event_type = $1`
		args = append(args, eventType)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []models.AnalyticsEvent
	for rows.Next() {
		var e models.AnalyticsEvent
		if err := scanAnalyticsEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Summary computes the dashboard aggregates.
func (s *AnalyticsStore) Summary() (*models.AnalyticsSummary, error) {
	sum := &models.AnalyticsSummary{}

	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM analytics_events WHERE event_type = $1),
			(SELECT COUNT(*) FROM contact_submissions),
			(SELECT COUNT(*) FROM enrollments)
	`, models.EventPageView).Scan(&sum.TotalPageViews, &sum.TotalContacts, &sum.TotalEnrollments)
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}

	recent, err := s.Events("", 10)
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	sum.RecentEvents = recent
	return sum, nil
}
