// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stratium/internal/activity"
	"stratium/internal/cache"
	"stratium/internal/markdown"
	"stratium/internal/models"
	"stratium/internal/slug"
	"stratium/internal/store"
)

// Blog groups the blog post handlers.
type Blog struct {
	blog  store.BlogRepo
	log   *activity.Log
	cache *cache.ContentCache // nil when running without Valkey
}

// NewBlog creates a new Blog handler group.
func NewBlog(blog store.BlogRepo, log *activity.Log, cc *cache.ContentCache) *Blog {
	return &Blog{blog: blog, log: log, cache: cc}
}

// blogPostView is a post enriched with rendered HTML for public reads.
type blogPostView struct {
	models.BlogPost
	BodyHTML string `json:"body_html"`
}

type blogRequest struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	Category   *string `json:"category"`
	CoverImage *string `json:"cover_image"`
	Published  *bool   `json:"published"`
}

// List returns posts, optionally filtered by published state
// (GET /api/blog?published=bool).
func (h *Blog) List(w http.ResponseWriter, r *http.Request) {
	published := boolParam(r, "published")

	key := cache.Key("blog", "list:"+filterPart(published))
	if serveCached(h.cache, w, r, key) {
		return
	}

	items, err := h.blog.List(store.BlogFilter{Published: published})
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.BlogPost{}
	}

	storeCached(h.cache, r, key, items)
	respondJSON(w, http.StatusOK, items)
}

// GetBySlug returns a single post with its body rendered to HTML
// (GET /api/blog/{slug}).
func (h *Blog) GetBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	key := cache.Key("blog", "slug:"+s)
	if serveCached(h.cache, w, r, key) {
		return
	}

	post, err := h.blog.GetBySlug(s)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		respondNotFound(w)
		return
	}

	html, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Warn("markdown render failed", "slug", s, "error", err)
	}
	view := blogPostView{BlogPost: *post, BodyHTML: html}

	storeCached(h.cache, r, key, view)
	respondJSON(w, http.StatusOK, view)
}

// Get returns a single post by id, raw Markdown body included
// (GET /api/blog/id/{id}, admin).
func (h *Blog) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	post, err := h.blog.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create adds a new post (POST /api/blog, admin). A missing slug is
// derived from the title and disambiguated against existing posts.
func (h *Blog) Create(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	post := &models.BlogPost{}
	applyBlogRequest(post, &req)

	if post.Slug == "" {
		post.Slug = slug.Uniquify(slug.Generate(post.Title), func(s string) bool {
			existing, err := h.blog.GetBySlug(s)
			return err == nil && existing != nil
		})
	}
	if err := post.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.blog.Create(post)
	if err != nil {
		respondError(w, err)
		return
	}

	h.log.Record(activity.TypeCreate, "blog", created.Title)
	if created.Published {
		h.log.Record(activity.TypePublish, "blog", created.Title)
	}
	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update merges the provided fields into an existing post
// (PATCH /api/blog/{id}, admin).
func (h *Blog) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req blogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.blog.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	wasPublished := existing.Published
	applyBlogRequest(existing, &req)
	if err := existing.Validate(); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.blog.Update(existing)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}

	if !wasPublished && updated.Published {
		h.log.Record(activity.TypePublish, "blog", updated.Title)
	} else {
		h.log.Record(activity.TypeUpdate, "blog", updated.Title)
	}
	h.invalidate(r)
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a post (DELETE /api/blog/{id}, admin).
func (h *Blog) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.blog.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	if err := h.blog.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeDelete, "blog", existing.Title)
	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Blog) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateKind(r.Context(), "blog")
	}
}

// applyBlogRequest copies the set fields of the request onto the post.
func applyBlogRequest(post *models.BlogPost, req *blogRequest) {
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil {
		post.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.CoverImage != nil {
		post.CoverImage = req.CoverImage
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
}
