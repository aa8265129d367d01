package local

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stratium/internal/errs"
	"stratium/internal/models"
	"stratium/internal/store"
)

// CaseStudyStore implements store.CaseStudyRepo on the local document.
type CaseStudyStore struct {
	db *DB
}

// NewCaseStudyStore creates a CaseStudyStore over the given document store.
func NewCaseStudyStore(db *DB) *CaseStudyStore {
	return &CaseStudyStore{db: db}
}

// List returns case studies newest first, optionally filtered by featured.
func (s *CaseStudyStore) List(f store.FeaturedFilter) ([]models.CaseStudy, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return filtered(s.db.doc.CaseStudies, func(cs models.CaseStudy) bool {
		return f.Featured == nil || cs.Featured == *f.Featured
	}), nil
}

// Get returns a case study by id, or nil if absent.
func (s *CaseStudyStore) Get(id uuid.UUID) (*models.CaseStudy, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.CaseStudies, func(cs models.CaseStudy) bool { return cs.ID == id }); ok {
		cs := s.db.doc.CaseStudies[i]
		return &cs, nil
	}
	return nil, nil
}

// GetBySlug returns a case study by slug, or nil if absent.
func (s *CaseStudyStore) GetBySlug(slug string) (*models.CaseStudy, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.CaseStudies, func(cs models.CaseStudy) bool { return cs.Slug == slug }); ok {
		cs := s.db.doc.CaseStudies[i]
		return &cs, nil
	}
	return nil, nil
}

// Create stores a new case study. A duplicate slug is a conflict.
func (s *CaseStudyStore) Create(cs *models.CaseStudy) (*models.CaseStudy, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, taken := locate(s.db.doc.CaseStudies, func(e models.CaseStudy) bool { return e.Slug == cs.Slug }); taken {
		return nil, fmt.Errorf("case study slug %q: %w", cs.Slug, errs.ErrConflict)
	}

	rec := *cs
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()

	s.db.doc.CaseStudies = prepend(s.db.doc.CaseStudies, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("create case study: %w", err)
	}
	return &rec, nil
}

// Update replaces a case study in place. Returns (nil, nil) when the id
// is gone.
func (s *CaseStudyStore) Update(cs *models.CaseStudy) (*models.CaseStudy, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := locate(s.db.doc.CaseStudies, func(e models.CaseStudy) bool { return e.ID == cs.ID })
	if !ok {
		return nil, nil
	}
	if _, taken := locate(s.db.doc.CaseStudies, func(e models.CaseStudy) bool {
		return e.Slug == cs.Slug && e.ID != cs.ID
	}); taken {
		return nil, fmt.Errorf("case study slug %q: %w", cs.Slug, errs.ErrConflict)
	}

	rec := *cs
	rec.CreatedAt = s.db.doc.CaseStudies[i].CreatedAt

	s.db.doc.CaseStudies[i] = rec
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("update case study: %w", err)
	}
	return &rec, nil
}

// Delete removes a case study. Deleting a missing id is not an error.
func (s *CaseStudyStore) Delete(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.CaseStudies, func(cs models.CaseStudy) bool { return cs.ID == id }); ok {
		s.db.doc.CaseStudies = removeAt(s.db.doc.CaseStudies, i)
		if err := s.db.persist(); err != nil {
			return fmt.Errorf("delete case study: %w", err)
		}
	}
	return nil
}
