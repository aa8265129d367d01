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

// BlogStore handles all blog post database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `id, title, slug, excerpt, body, category, cover_image,
	published, author_id, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }, p *models.BlogPost) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.Category,
		&p.CoverImage, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
}

// List returns posts newest first, optionally filtered by published state.
func (s *BlogStore) List(f store.BlogFilter) ([]models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts`
	args := []any{}
	if f.Published != nil {
		query += ` WHERE published = $1`
		args = append(args, *f.Published)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := scanBlogPost(rows, &p); err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Get retrieves a post by id. Returns nil if not found.
func (s *BlogStore) Get(id uuid.UUID) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := scanBlogPost(s.db.QueryRow(
		`SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return p, nil
}

// GetBySlug retrieves a post by slug. Returns nil if not found.
func (s *BlogStore) GetBySlug(slug string) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := scanBlogPost(s.db.QueryRow(
		`SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1`, slug), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blog post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated id and
// timestamps. A duplicate slug surfaces as errs.ErrConflict.
func (s *BlogStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	result := &models.BlogPost{}
	err := scanBlogPost(s.db.QueryRow(`
		INSERT INTO blog_posts (title, slug, excerpt, body, category, cover_image, published, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+blogColumns,
		p.Title, p.Slug, p.Excerpt, p.Body, p.Category, p.CoverImage, p.Published, p.AuthorID,
	), result)
	if err != nil {
		return nil, conflictOr("create blog post", err)
	}
	return result, nil
}

// Update modifies an existing post, refreshing updated_at. Returns
// (nil, nil) when the id is gone.
func (s *BlogStore) Update(p *models.BlogPost) (*models.BlogPost, error) {
	result := &models.BlogPost{}
	err := scanBlogPost(s.db.QueryRow(`
		UPDATE blog_posts SET
			title = $1, slug = $2, excerpt = $3, body = $4, category = $5,
			cover_image = $6, published = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+blogColumns,
		p.Title, p.Slug, p.Excerpt, p.Body, p.Category, p.CoverImage, p.Published, p.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, conflictOr("update blog post", err)
	}
	return result, nil
}

// Delete removes a post by id. Deleting a missing id is not an error.
func (s *BlogStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	return nil
}
