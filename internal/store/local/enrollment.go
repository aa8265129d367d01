package local

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stratium/internal/errs"
	"stratium/internal/models"
)

// EnrollmentStore implements store.EnrollmentRepo on the local document.
type EnrollmentStore struct {
	db *DB
}

// NewEnrollmentStore creates an EnrollmentStore over the given document store.
func NewEnrollmentStore(db *DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

// Get returns an enrollment by id, or nil if absent.
func (s *EnrollmentStore) Get(id uuid.UUID) (*models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Enrollments, func(e models.Enrollment) bool { return e.ID == id }); ok {
		e := s.db.doc.Enrollments[i]
		return &e, nil
	}
	return nil, nil
}

// GetByUserAndCourse returns the enrollment for a user/course pair, or nil.
func (s *EnrollmentStore) GetByUserAndCourse(userID, courseID uuid.UUID) (*models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Enrollments, func(e models.Enrollment) bool {
		return e.UserID == userID && e.CourseID == courseID
	}); ok {
		e := s.db.doc.Enrollments[i]
		return &e, nil
	}
	return nil, nil
}

// ListByUser returns a user's enrollments, newest first.
func (s *EnrollmentStore) ListByUser(userID uuid.UUID) ([]models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return filtered(s.db.doc.Enrollments, func(e models.Enrollment) bool {
		return e.UserID == userID
	}), nil
}

// Create stores a new enrollment. A second enrollment for the same user
// and course is a conflict.
func (s *EnrollmentStore) Create(e *models.Enrollment) (*models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, dup := locate(s.db.doc.Enrollments, func(x models.Enrollment) bool {
		return x.UserID == e.UserID && x.CourseID == e.CourseID
	}); dup {
		return nil, fmt.Errorf("enrollment for user %s in course %s: %w", e.UserID, e.CourseID, errs.ErrConflict)
	}

	rec := *e
	rec.ID = uuid.New()
	rec.EnrolledAt = time.Now()
	if rec.CompletedLessons == nil {
		rec.CompletedLessons = []string{}
	}

	s.db.doc.Enrollments = prepend(s.db.doc.Enrollments, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return &rec, nil
}

// UpdateProgress stores a progress update, setting CompletedAt when the
// enrollment reaches 100. Returns (nil, nil) when the id is gone.
func (s *EnrollmentStore) UpdateProgress(id uuid.UUID, progress int, completedLessons []string) (*models.Enrollment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := locate(s.db.doc.Enrollments, func(e models.Enrollment) bool { return e.ID == id })
	if !ok {
		return nil, nil
	}

	e := &s.db.doc.Enrollments[i]
	e.Progress = progress
	e.CompletedLessons = completedLessons
	if progress >= 100 {
		now := time.Now()
		e.CompletedAt = &now
	} else {
		e.CompletedAt = nil
	}

	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("update enrollment progress: %w", err)
	}
	rec := *e
	return &rec, nil
}
