// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package local

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stratium/internal/errs"
	"stratium/internal/models"
	"stratium/internal/store"
)

// CourseStore implements store.CourseRepo on the local document.
type CourseStore struct {
	db *DB
}

// NewCourseStore creates a CourseStore over the given document store.
func NewCourseStore(db *DB) *CourseStore {
	return &CourseStore{db: db}
}

// List returns courses newest first, optionally filtered by published state.
func (s *CourseStore) List(f store.CourseFilter) ([]models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return filtered(s.db.doc.Courses, func(c models.Course) bool {
		return f.Published == nil || c.Published == *f.Published
	}), nil
}

// Get returns a course by id, or nil if absent.
func (s *CourseStore) Get(id uuid.UUID) (*models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Courses, func(c models.Course) bool { return c.ID == id }); ok {
		c := s.db.doc.Courses[i]
		return &c, nil
	}
	return nil, nil
}

// GetBySlug returns a course by slug, or nil if absent.
func (s *CourseStore) GetBySlug(slug string) (*models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Courses, func(c models.Course) bool { return c.Slug == slug }); ok {
		c := s.db.doc.Courses[i]
		return &c, nil
	}
	return nil, nil
}

// Create stores a new course. A duplicate slug is a conflict.
func (s *CourseStore) Create(c *models.Course) (*models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, taken := locate(s.db.doc.Courses, func(e models.Course) bool { return e.Slug == c.Slug }); taken {
		return nil, fmt.Errorf("course slug %q: %w", c.Slug, errs.ErrConflict)
	}

	rec := *c
	rec.ID = uuid.New()
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.db.doc.Courses = prepend(s.db.doc.Courses, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &rec, nil
}

// Update replaces a course in place, refreshing UpdatedAt. Returns
// (nil, nil) when the id is gone.
func (s *CourseStore) Update(c *models.Course) (*models.Course, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := locate(s.db.doc.Courses, func(e models.Course) bool { return e.ID == c.ID })
	if !ok {
		return nil, nil
	}
	if _, taken := locate(s.db.doc.Courses, func(e models.Course) bool {
		return e.Slug == c.Slug && e.ID != c.ID
	}); taken {
		return nil, fmt.Errorf("course slug %q: %w", c.Slug, errs.ErrConflict)
	}

	rec := *c
	rec.CreatedAt = s.db.doc.Courses[i].CreatedAt
	rec.UpdatedAt = time.Now()

	s.db.doc.Courses[i] = rec
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &rec, nil
}

// Delete removes a course. Deleting a missing id is not an error.
func (s *CourseStore) Delete(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Courses, func(c models.Course) bool { return c.ID == id }); ok {
		s.db.doc.Courses = removeAt(s.db.doc.Courses, i)
		if err := s.db.persist(); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
	}
	return nil
}
