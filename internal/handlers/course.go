// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stratium/internal/activity"
	"stratium/internal/cache"
	"stratium/internal/models"
	"stratium/internal/slug"
	"stratium/internal/store"
)

// Course groups the course catalog handlers.
type Course struct {
	courses store.CourseRepo
	log     *activity.Log
	cache   *cache.ContentCache
}

// NewCourse creates a new Course handler group.
func NewCourse(courses store.CourseRepo, log *activity.Log, cc *cache.ContentCache) *Course {
	return &Course{courses: courses, log: log, cache: cc}
}

type courseRequest struct {
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Price       *int             `json:"price"`
	Duration    *string          `json:"duration"`
	Level       *string          `json:"level"`
	Instructor  *string          `json:"instructor"`
	CoverImage  *string          `json:"cover_image"`
	Lessons     *[]models.Lesson `json:"lessons"`
	Published   *bool            `json:"published"`
}

// List returns courses, optionally filtered by published
// (GET /api/courses?published=bool).
func (h *Course) List(w http.ResponseWriter, r *http.Request) {
	published := boolParam(r, "published")

	key := cache.Key("courses", "list:"+filterPart(published))
	if serveCached(h.cache, w, r, key) {
		return
	}

	items, err := h.courses.List(store.CourseFilter{Published: published})
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Course{}
	}

	storeCached(h.cache, r, key, items)
	respondJSON(w, http.StatusOK, items)
}

// GetBySlug returns a single course (GET /api/courses/{slug}).
func (h *Course) GetBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	key := cache.Key("courses", "slug:"+s)
	if serveCached(h.cache, w, r, key) {
		return
	}

	c, err := h.courses.GetBySlug(s)
	if err != nil {
		respondError(w, err)
		return
	}
	if c == nil {
		respondNotFound(w)
		return
	}

	storeCached(h.cache, r, key, c)
	respondJSON(w, http.StatusOK, c)
}

// Create adds a course (POST /api/courses, admin). Lessons without an id
// get one assigned; a missing slug is derived from the title.
func (h *Course) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	c := &models.Course{Level: models.LevelBeginner}
	applyCourseRequest(c, &req)

	if c.Slug == "" {
		c.Slug = slug.Uniquify(slug.Generate(c.Title), func(s string) bool {
			existing, err := h.courses.GetBySlug(s)
			return err == nil && existing != nil
		})
	}
	assignLessonIDs(c)
	if err := c.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.courses.Create(c)
	if err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeCreate, "course", created.Title)
	if created.Published {
		h.log.Record(activity.TypePublish, "course", created.Title)
	}
	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update merges the provided fields (PATCH /api/courses/{id}, admin).
// A lessons field replaces the whole lesson list.
func (h *Course) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req courseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.courses.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	wasPublished := existing.Published
	applyCourseRequest(existing, &req)
	assignLessonIDs(existing)
	if err := existing.Validate(); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.courses.Update(existing)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}

	if !wasPublished && updated.Published {
		h.log.Record(activity.TypePublish, "course", updated.Title)
	} else {
		h.log.Record(activity.TypeUpdate, "course", updated.Title)
	}
	h.invalidate(r)
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a course (DELETE /api/courses/{id}, admin).
func (h *Course) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.courses.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	if err := h.courses.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeDelete, "course", existing.Title)
	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Course) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateKind(r.Context(), "courses")
	}
}

// assignLessonIDs gives every lesson without an id a fresh one. Existing
// ids are kept so enrollment completed-lesson references stay valid.
func assignLessonIDs(c *models.Course) {
	for i := range c.Lessons {
		if c.Lessons[i].ID == "" {
			c.Lessons[i].ID = uuid.NewString()
		}
	}
}

func applyCourseRequest(c *models.Course, req *courseRequest) {
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Price != nil {
		c.Price = *req.Price
	}
	if req.Duration != nil {
		c.Duration = *req.Duration
	}
	if req.Level != nil {
		c.Level = models.CourseLevel(*req.Level)
	}
	if req.Instructor != nil {
		c.Instructor = *req.Instructor
	}
	if req.CoverImage != nil {
		c.CoverImage = req.CoverImage
	}
	if req.Lessons != nil {
		c.Lessons = *req.Lessons
	}
	if req.Published != nil {
		c.Published = *req.Published
	}
}
