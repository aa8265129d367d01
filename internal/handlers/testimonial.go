package handlers

import (
	"net/http"

	"stratium/internal/activity"
	"stratium/internal/cache"
	"stratium/internal/models"
	"stratium/internal/store"
)

// Testimonial groups the testimonial handlers.
type Testimonial struct {
	testimonials store.TestimonialRepo
	log          *activity.Log
	cache        *cache.ContentCache
}

// NewTestimonial creates a new Testimonial handler group.
func NewTestimonial(testimonials store.TestimonialRepo, log *activity.Log, cc *cache.ContentCache) *Testimonial {
	return &Testimonial{testimonials: testimonials, log: log, cache: cc}
}

type testimonialRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Company   *string `json:"company"`
	Content   *string `json:"content"`
	AvatarURL *string `json:"avatar_url"`
	Rating    *int    `json:"rating"`
	Featured  *bool   `json:"featured"`
}

// List returns testimonials, optionally filtered by featured
// (GET /api/testimonials?featured=bool).
func (h *Testimonial) List(w http.ResponseWriter, r *http.Request) {
	featured := boolParam(r, "featured")

	key := cache.Key("testimonials", "list:"+filterPart(featured))
	if serveCached(h.cache, w, r, key) {
		return
	}

	items, err := h.testimonials.List(store.FeaturedFilter{Featured: featured})
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Testimonial{}
	}

	storeCached(h.cache, r, key, items)
	respondJSON(w, http.StatusOK, items)
}

// Create adds a testimonial (POST /api/testimonials, admin).
func (h *Testimonial) Create(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	t := &models.Testimonial{}
	applyTestimonialRequest(t, &req)
	if err := t.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.testimonials.Create(t)
	if err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeCreate, "testimonial", created.Name)
	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update merges the provided fields (PATCH /api/testimonials/{id}, admin).
func (h *Testimonial) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req testimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.testimonials.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	applyTestimonialRequest(existing, &req)
	if err := existing.Validate(); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.testimonials.Update(existing)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}
	h.log.Record(activity.TypeUpdate, "testimonial", updated.Name)
	h.invalidate(r)
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a testimonial (DELETE /api/testimonials/{id}, admin).
func (h *Testimonial) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.testimonials.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	if err := h.testimonials.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeDelete, "testimonial", existing.Name)
	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Testimonial) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateKind(r.Context(), "testimonials")
	}
}

func applyTestimonialRequest(t *models.Testimonial, req *testimonialRequest) {
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Role != nil {
		t.Role = *req.Role
	}
	if req.Company != nil {
		t.Company = *req.Company
	}
	if req.Content != nil {
		t.Content = *req.Content
	}
	if req.AvatarURL != nil {
		t.AvatarURL = req.AvatarURL
	}
	if req.Rating != nil {
		t.Rating = *req.Rating
	}
	if req.Featured != nil {
		t.Featured = *req.Featured
	}
}
