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

// CourseLevel is the difficulty tier of a course.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// Lesson is a single unit inside a course. Lessons are ordered by their
// position in the slice.
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Course represents a sellable course in the catalog.
// Price is in minor currency units (cents), never fractional.
type Course struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Price       int         `json:"price"`
	Duration    string      `json:"duration"`
	Level       CourseLevel `json:"level"`
	Instructor  string      `json:"instructor"`
	CoverImage  *string     `json:"cover_image,omitempty"`
	Lessons     []Lesson    `json:"lessons"`
	Published   bool        `json:"published"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// LessonIDs returns the ids of all lessons in order.
func (c *Course) LessonIDs() []string {
	ids := make([]string, 0, len(c.Lessons))
	for _, l := range c.Lessons {
		ids = append(ids, l.ID)
	}
	return ids
}

// HasLesson reports whether the course contains a lesson with the given id.
func (c *Course) HasLesson(id string) bool {
	for _, l := range c.Lessons {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Validate checks the course fields.
func (c *Course) Validate() error {
	v := errs.NewValidation()

	if strings.TrimSpace(c.Title) == "" {
		v.Add("title", "Title is required")
	}
	if utf8.RuneCountInString(c.Title) > maxTitleLen {
		v.Add("title", "Title is too long (max 300 characters)")
	}
	if !slug.Valid(c.Slug) {
		v.Add("slug", "Slug must be a non-empty URL-safe string")
	}
	if c.Price < 0 {
		v.Add("price", "Price must not be negative")
	}
	switch c.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		v.Add("level", "Level must be beginner, intermediate, or advanced")
	}
	seen := make(map[string]bool, len(c.Lessons))
	for _, l := range c.Lessons {
		if strings.TrimSpace(l.Title) == "" {
			v.Add("lessons", "Every lesson needs a title")
			break
		}
		if l.ID != "" && seen[l.ID] {
			v.Add("lessons", "Lesson ids must be unique")
			break
		}
		seen[l.ID] = true
	}

	return v.Err()
}
