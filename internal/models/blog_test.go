package models

import (
	"errors"
	"strings"
	"testing"

	"stratium/internal/errs"
)

// validBlogPost returns a post that passes validation.
func validBlogPost() *BlogPost {
	return &BlogPost{
		Title:    "Shipping a Go Service",
		Slug:     "shipping-a-go-service",
		Excerpt:  "Lessons from our latest launch.",
		Body:     "## Context\n\nWe shipped it.",
		Category: "engineering",
	}
}

// TestBlogPostValidate checks blog post field validation.
func TestBlogPostValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*BlogPost)
		wantField string
	}{
		{
			name:   "valid post",
			mutate: func(p *BlogPost) {},
		},
		{
			name:      "missing title",
			mutate:    func(p *BlogPost) { p.Title = "" },
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(p *BlogPost) { p.Title = strings.Repeat("x", maxTitleLen+1) },
			wantField: "title",
		},
		{
			name:      "empty slug",
			mutate:    func(p *BlogPost) { p.Slug = "" },
			wantField: "slug",
		},
		{
			name:      "malformed slug",
			mutate:    func(p *BlogPost) { p.Slug = "With Spaces" },
			wantField: "slug",
		},
		{
			name:      "body too long",
			mutate:    func(p *BlogPost) { p.Body = strings.Repeat("x", maxBodyLen+1) },
			wantField: "body",
		},
		{
			name:      "excerpt too long",
			mutate:    func(p *BlogPost) { p.Excerpt = strings.Repeat("x", maxExcerptLen+1) },
			wantField: "excerpt",
		},
		{
			name:      "missing category",
			mutate:    func(p *BlogPost) { p.Category = " " },
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validBlogPost()
			tt.mutate(p)
			err := p.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *errs.ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("expected a message for field %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}
}

// TestCaseStudyValidate checks case study validation alongside the post
// tests since both share the slug rules.
func TestCaseStudyValidate(t *testing.T) {
	cs := &CaseStudy{
		Title:    "Migrating Acme to the Cloud",
		Slug:     "migrating-acme-to-the-cloud",
		Client:   "Acme Corp",
		Industry: "Logistics",
	}
	if err := cs.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	cs.Client = ""
	cs.Slug = "BAD SLUG"
	var verr *errs.ValidationError
	if !errors.As(cs.Validate(), &verr) {
		t.Fatal("expected a ValidationError")
	}
	for _, field := range []string{"client", "slug"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing message for field %q", field)
		}
	}
}
