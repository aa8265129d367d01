// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"stratium/internal/errs"
	"stratium/internal/slug"
)

// BlogPost represents an article on the marketing site. Body holds Markdown
// source; the public API renders it to HTML on read.
// Lifecycle: draft, published, optionally unpublished, deleted.
type BlogPost struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Excerpt    string     `json:"excerpt"`
	Body       string     `json:"body"`
	Category   string     `json:"category"`
	CoverImage *string    `json:"cover_image,omitempty"`
	Published  bool       `json:"published"`
	AuthorID   *uuid.UUID `json:"author_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Validate checks the post fields. The slug must already be set; callers
// derive it from the title when the client did not supply one.
func (p *BlogPost) Validate() error {
	v := errs.NewValidation()

	if strings.TrimSpace(p.Title) == "" {
		v.Add("title", "Title is required")
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		v.Add("title", "Title is too long (max 300 characters)")
	}
	if !slug.Valid(p.Slug) {
		v.Add("slug", "Slug must be a non-empty URL-safe string")
	}
	if utf8.RuneCountInString(p.Slug) > maxSlugLen {
		v.Add("slug", "Slug is too long (max 300 characters)")
	}
	if utf8.RuneCountInString(p.Body) > maxBodyLen {
		v.Add("body", "Body is too long (max 100,000 characters)")
	}
	if utf8.RuneCountInString(p.Excerpt) > maxExcerptLen {
		v.Add("excerpt", "Excerpt is too long (max 1,000 characters)")
	}
	if strings.TrimSpace(p.Category) == "" {
		v.Add("category", "Category is required")
	}

	return v.Err()
}
