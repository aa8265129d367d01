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

// CaseStudy represents a client success story with the classic
// challenge/solution/results structure.
type CaseStudy struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Client     string    `json:"client"`
	Industry   string    `json:"industry"`
	Challenge  string    `json:"challenge"`
	Solution   string    `json:"solution"`
	Results    string    `json:"results"`
	CoverImage *string   `json:"cover_image,omitempty"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the case study fields.
func (cs *CaseStudy) Validate() error {
	v := errs.NewValidation()

	if strings.TrimSpace(cs.Title) == "" {
		v.Add("title", "Title is required")
	}
	if utf8.RuneCountInString(cs.Title) > maxTitleLen {
		v.Add("title", "Title is too long (max 300 characters)")
	}
	if !slug.Valid(cs.Slug) {
		v.Add("slug", "Slug must be a non-empty URL-safe string")
	}
	if strings.TrimSpace(cs.Client) == "" {
		v.Add("client", "Client is required")
	}
	for _, f := range []struct{ name, value string }{
		{"challenge", cs.Challenge},
		{"solution", cs.Solution},
		{"results", cs.Results},
	} {
		if utf8.RuneCountInString(f.value) > maxFieldLen {
			v.Add(f.name, "Field is too long (max 5,000 characters)")
		}
	}

	return v.Err()
}
