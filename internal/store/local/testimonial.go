package local

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stratium/internal/models"
	"stratium/internal/store"
)

// TestimonialStore implements store.TestimonialRepo on the local document.
type TestimonialStore struct {
	db *DB
}

// NewTestimonialStore creates a TestimonialStore over the given document store.
func NewTestimonialStore(db *DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

// List returns testimonials newest first, optionally filtered by featured.
func (s *TestimonialStore) List(f store.FeaturedFilter) ([]models.Testimonial, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return filtered(s.db.doc.Testimonials, func(t models.Testimonial) bool {
		return f.Featured == nil || t.Featured == *f.Featured
	}), nil
}

// Get returns a testimonial by id, or nil if absent.
func (s *TestimonialStore) Get(id uuid.UUID) (*models.Testimonial, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Testimonials, func(t models.Testimonial) bool { return t.ID == id }); ok {
		t := s.db.doc.Testimonials[i]
		return &t, nil
	}
	return nil, nil
}

// Create stores a new testimonial with an assigned id and timestamp.
func (s *TestimonialStore) Create(t *models.Testimonial) (*models.Testimonial, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec := *t
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()

	s.db.doc.Testimonials = prepend(s.db.doc.Testimonials, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return &rec, nil
}

// Update replaces a testimonial in place. Returns (nil, nil) when the id
// is gone.
func (s *TestimonialStore) Update(t *models.Testimonial) (*models.Testimonial, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := locate(s.db.doc.Testimonials, func(e models.Testimonial) bool { return e.ID == t.ID })
	if !ok {
		return nil, nil
	}

	rec := *t
	rec.CreatedAt = s.db.doc.Testimonials[i].CreatedAt

	s.db.doc.Testimonials[i] = rec
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return &rec, nil
}

// Delete removes a testimonial. Deleting a missing id is not an error.
func (s *TestimonialStore) Delete(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Testimonials, func(t models.Testimonial) bool { return t.ID == id }); ok {
		s.db.doc.Testimonials = removeAt(s.db.doc.Testimonials, i)
		if err := s.db.persist(); err != nil {
			return fmt.Errorf("delete testimonial: %w", err)
		}
	}
	return nil
}
