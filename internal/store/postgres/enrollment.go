// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stratium/internal/models"
)

// EnrollmentStore handles all enrollment database operations.
type EnrollmentStore struct {
	db *sql.DB
}

// NewEnrollmentStore creates a new EnrollmentStore with the given database connection.
func NewEnrollmentStore(db *sql.DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

const enrollmentColumns = `id, user_id, course_id, progress, completed_lessons, enrolled_at, completed_at`

func scanEnrollment(row interface{ Scan(...any) error }, e *models.Enrollment) error {
	var lessons []byte
	if err := row.Scan(
		&e.ID, &e.UserID, &e.CourseID, &e.Progress, &lessons,
		&e.EnrolledAt, &e.CompletedAt,
	); err != nil {
		return err
	}
	e.CompletedLessons = []string{}
	return jsonbScan(lessons, &e.CompletedLessons)
}

// Get retrieves an enrollment by id. Returns nil if not found.
func (s *EnrollmentStore) Get(id uuid.UUID) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := scanEnrollment(s.db.QueryRow(
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id), e)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return e, nil
}

// GetByUserAndCourse retrieves the enrollment for a user and course pair.
// Returns nil if the user is not enrolled.
func (s *EnrollmentStore) GetByUserAndCourse(userID, courseID uuid.UUID) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := scanEnrollment(s.db.QueryRow(
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID), e)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment by user and course: %w", err)
	}
	return e, nil
}

// ListByUser returns a user's enrollments, newest first.
func (s *EnrollmentStore) ListByUser(userID uuid.UUID) ([]models.Enrollment, error) {
	rows, err := s.db.Query(
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var items []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := scanEnrollment(rows, &e); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Create inserts a new enrollment. A second enrollment for the same user
// and course surfaces as errs.ErrConflict.
func (s *EnrollmentStore) Create(e *models.Enrollment) (*models.Enrollment, error) {
	lessons, err := jsonbValue([]string{})
	if err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	result := &models.Enrollment{}
	err = scanEnrollment(s.db.QueryRow(`
		INSERT INTO enrollments (user_id, course_id, progress, completed_lessons)
		VALUES ($1, $2, 0, $3)
		RETURNING `+enrollmentColumns,
		e.UserID, e.CourseID, lessons,
	), result)
	if err != nil {
		return nil, conflictOr("create enrollment", err)
	}
	return result, nil
}

// UpdateProgress stores the new progress and completed lessons, setting
// completed_at the first time progress reaches 100. Returns (nil, nil)
// when the id is gone.
func (s *EnrollmentStore) UpdateProgress(id uuid.UUID, progress int, completedLessons []string) (*models.Enrollment, error) {
	lessons, err := jsonbValue(completedLessons)
	if err != nil {
		return nil, fmt.Errorf("update enrollment progress: %w", err)
	}

	result := &models.Enrollment{}
	err = scanEnrollment(s.db.QueryRow(`
		UPDATE enrollments SET
			progress = $1,
			completed_lessons = $2,
			completed_at = CASE WHEN $1 >= 100 THEN COALESCE(completed_at, NOW()) ELSE NULL END
		WHERE id = $3
		RETURNING `+enrollmentColumns,
		progress, lessons, id,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update enrollment progress: %w", err)
	}
	return result, nil
}
