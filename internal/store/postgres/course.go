// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stratium/internal/models"
	"stratium/internal/store"
)

// CourseStore handles all course database operations. Lessons are stored
// as a jsonb column, preserving their order.
type CourseStore struct {
	db *sql.DB
}

// NewCourseStore creates a new CourseStore with the given database connection.
func NewCourseStore(db *sql.DB) *CourseStore {
	return &CourseStore{db: db}
}

const courseColumns = `id, title, slug, description, price, duration, level,
	instructor, cover_image, lessons, published, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }, c *models.Course) error {
	var lessons []byte
	if err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.Price, &c.Duration,
		&c.Level, &c.Instructor, &c.CoverImage, &lessons, &c.Published,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return err
	}
	c.Lessons = []models.Lesson{}
	return jsonbScan(lessons, &c.Lessons)
}

// List returns courses newest first, optionally filtered by published state.
func (s *CourseStore) List(f store.CourseFilter) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	args := []any{}
	if f.Published != nil {
		query += ` WHERE published = $1`
		args = append(args, *f.Published)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var items []models.Course
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Get retrieves a course by id. Returns nil if not found.
func (s *CourseStore) Get(id uuid.UUID) (*models.Course, error) {
	c := &models.Course{}
	err := scanCourse(s.db.QueryRow(
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

// GetBySlug retrieves a course by slug. Returns nil if not found.
func (s *CourseStore) GetBySlug(slug string) (*models.Course, error) {
	c := &models.Course{}
	err := scanCourse(s.db.QueryRow(
		`SELECT `+courseColumns+` FROM courses WHERE slug = $1`, slug), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new course. A duplicate slug surfaces as errs.ErrConflict.
func (s *CourseStore) Create(c *models.Course) (*models.Course, error) {
	lessons, err := jsonbValue(c.Lessons)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	result := &models.Course{}
	err = scanCourse(s.db.QueryRow(`
		INSERT INTO courses (title, slug, description, price, duration, level, instructor, cover_image, lessons, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+courseColumns,
		c.Title, c.Slug, c.Description, c.Price, c.Duration, c.Level,
		c.Instructor, c.CoverImage, lessons, c.Published,
	), result)
	if err != nil {
		return nil, conflictOr("create course", err)
	}
	return result, nil
}

// Update modifies an existing course, refreshing updated_at. Returns
// (nil, nil) when the id is gone.
func (s *CourseStore) Update(c *models.Course) (*models.Course, error) {
	lessons, err := jsonbValue(c.Lessons)
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}

	result := &models.Course{}
	err = scanCourse(s.db.QueryRow(`
		UPDATE courses SET
			title = $1, slug = $2, description = $3, price = $4, duration = $5,
			level = $6, instructor = $7, cover_image = $8, lessons = $9,
			published = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+courseColumns,
		c.Title, c.Slug, c.Description, c.Price, c.Duration, c.Level,
		c.Instructor, c.CoverImage, lessons, c.Published, c.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, conflictOr("update course", err)
	}
	return result, nil
}

// Delete removes a course by id. Deleting a missing id is not an error.
func (s *CourseStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
