package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stratium/internal/activity"
	"stratium/internal/cache"
	"stratium/internal/models"
	"stratium/internal/slug"
	"stratium/internal/store"
)

// CaseStudy groups the case study handlers.
type CaseStudy struct {
	caseStudies store.CaseStudyRepo
	log         *activity.Log
	cache       *cache.ContentCache
}

// NewCaseStudy creates a new CaseStudy handler group.
func NewCaseStudy(caseStudies store.CaseStudyRepo, log *activity.Log, cc *cache.ContentCache) *CaseStudy {
	return &CaseStudy{caseStudies: caseStudies, log: log, cache: cc}
}

type caseStudyRequest struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Client     *string `json:"client"`
	Industry   *string `json:"industry"`
	Challenge  *string `json:"challenge"`
	Solution   *string `json:"solution"`
	Results    *string `json:"results"`
	CoverImage *string `json:"cover_image"`
	Featured   *bool   `json:"featured"`
}

// List returns case studies, optionally filtered by featured
// (GET /api/case-studies?featured=bool).
func (h *CaseStudy) List(w http.ResponseWriter, r *http.Request) {
	featured := boolParam(r, "featured")

	key := cache.Key("case-studies", "list:"+filterPart(featured))
	if serveCached(h.cache, w, r, key) {
		return
	}

	items, err := h.caseStudies.List(store.FeaturedFilter{Featured: featured})
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.CaseStudy{}
	}

	storeCached(h.cache, r, key, items)
	respondJSON(w, http.StatusOK, items)
}

// GetBySlug returns a single case study (GET /api/case-studies/{slug}).
func (h *CaseStudy) GetBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	key := cache.Key("case-studies", "slug:"+s)
	if serveCached(h.cache, w, r, key) {
		return
	}

	cs, err := h.caseStudies.GetBySlug(s)
	if err != nil {
		respondError(w, err)
		return
	}
	if cs == nil {
		respondNotFound(w)
		return
	}

	storeCached(h.cache, r, key, cs)
	respondJSON(w, http.StatusOK, cs)
}

// Create adds a case study (POST /api/case-studies, admin). A missing
// slug is derived from the title.
func (h *CaseStudy) Create(w http.ResponseWriter, r *http.Request) {
	var req caseStudyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	cs := &models.CaseStudy{}
	applyCaseStudyRequest(cs, &req)

	if cs.Slug == "" {
		cs.Slug = slug.Uniquify(slug.Generate(cs.Title), func(s string) bool {
			existing, err := h.caseStudies.GetBySlug(s)
			return err == nil && existing != nil
		})
	}
	if err := cs.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.caseStudies.Create(cs)
	if err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeCreate, "case-study", created.Title)
	h.invalidate(r)
	respondJSON(w, http.StatusCreated, created)
}

// Update merges the provided fields (PATCH /api/case-studies/{id}, admin).
func (h *CaseStudy) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req caseStudyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.caseStudies.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	applyCaseStudyRequest(existing, &req)
	if err := existing.Validate(); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.caseStudies.Update(existing)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}
	h.log.Record(activity.TypeUpdate, "case-study", updated.Title)
	h.invalidate(r)
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a case study (DELETE /api/case-studies/{id}, admin).
func (h *CaseStudy) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.caseStudies.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	if err := h.caseStudies.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeDelete, "case-study", existing.Title)
	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CaseStudy) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateKind(r.Context(), "case-studies")
	}
}

func applyCaseStudyRequest(cs *models.CaseStudy, req *caseStudyRequest) {
	if req.Title != nil {
		cs.Title = *req.Title
	}
	if req.Slug != nil {
		cs.Slug = *req.Slug
	}
	if req.Client != nil {
		cs.Client = *req.Client
	}
	if req.Industry != nil {
		cs.Industry = *req.Industry
	}
	if req.Challenge != nil {
		cs.Challenge = *req.Challenge
	}
	if req.Solution != nil {
		cs.Solution = *req.Solution
	}
	if req.Results != nil {
		cs.Results = *req.Results
	}
	if req.CoverImage != nil {
		cs.CoverImage = req.CoverImage
	}
	if req.Featured != nil {
		cs.Featured = *req.Featured
	}
}
