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

// BlogStore implements store.BlogRepo on the local document.
type BlogStore struct {
	db *DB
}

// NewBlogStore creates a BlogStore over the given document store.
func NewBlogStore(db *DB) *BlogStore {
	return &BlogStore{db: db}
}

// List returns posts newest first, optionally filtered by published state.
func (s *BlogStore) List(f store.BlogFilter) ([]models.BlogPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return filtered(s.db.doc.BlogPosts, func(p models.BlogPost) bool {
		return f.Published == nil || p.Published == *f.Published
	}), nil
}

// Get returns a post by id, or nil if absent.
func (s *BlogStore) Get(id uuid.UUID) (*models.BlogPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.BlogPosts, func(p models.BlogPost) bool { return p.ID == id }); ok {
		p := s.db.doc.BlogPosts[i]
		return &p, nil
	}
	return nil, nil
}

// GetBySlug returns a post by slug, or nil if absent.
func (s *BlogStore) GetBySlug(slug string) (*models.BlogPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.BlogPosts, func(p models.BlogPost) bool { return p.Slug == slug }); ok {
		p := s.db.doc.BlogPosts[i]
		return &p, nil
	}
	return nil, nil
}

// Create stores a new post. A duplicate slug is a conflict, never a
// silent overwrite.
func (s *BlogStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, taken := locate(s.db.doc.BlogPosts, func(e models.BlogPost) bool { return e.Slug == p.Slug }); taken {
		return nil, fmt.Errorf("blog slug %q: %w", p.Slug, errs.ErrConflict)
	}

	rec := *p
	rec.ID = uuid.New()
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	s.db.doc.BlogPosts = prepend(s.db.doc.BlogPosts, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return &rec, nil
}

// Update replaces a post in place, refreshing UpdatedAt. Returns
// (nil, nil) when the id is gone.
func (s *BlogStore) Update(p *models.BlogPost) (*models.BlogPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := locate(s.db.doc.BlogPosts, func(e models.BlogPost) bool { return e.ID == p.ID })
	if !ok {
		return nil, nil
	}
	if _, taken := locate(s.db.doc.BlogPosts, func(e models.BlogPost) bool {
		return e.Slug == p.Slug && e.ID != p.ID
	}); taken {
		return nil, fmt.Errorf("blog slug %q: %w", p.Slug, errs.ErrConflict)
	}

	rec := *p
	rec.CreatedAt = s.db.doc.BlogPosts[i].CreatedAt
	rec.UpdatedAt = time.Now()

	s.db.doc.BlogPosts[i] = rec
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return &rec, nil
}

// Delete removes a post. Deleting a missing id is not an error.
func (s *BlogStore) Delete(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.BlogPosts, func(p models.BlogPost) bool { return p.ID == id }); ok {
		s.db.doc.BlogPosts = removeAt(s.db.doc.BlogPosts, i)
		if err := s.db.persist(); err != nil {
			return fmt.Errorf("delete blog post: %w", err)
		}
	}
	return nil
}
