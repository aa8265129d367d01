package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stratium/internal/models"
)

// TestCourseCreateDefaults verifies level defaulting, slug derivation,
// and lesson id assignment on create.
func TestCourseCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	h := NewCourse(env.backend.Courses, env.log, nil)

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/courses", map[string]any{
		"title":      "Intro to Testing",
		"instructor": "Dana Smith",
		"lessons": []map[string]any{
			{"title": "Why test", "duration": "30m"},
			{"id": "keep-me", "title": "Table tests", "duration": "45m"},
		},
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var course models.Course
	decodeBody(t, rr, &course)
	if course.Level != models.LevelBeginner {
		t.Errorf("default level = %q, want beginner", course.Level)
	}
	if course.Slug != "intro-to-testing" {
		t.Errorf("derived slug = %q, want intro-to-testing", course.Slug)
	}
	if course.Lessons[0].ID == "" {
		t.Error("lesson without id did not get one assigned")
	}
	if course.Lessons[1].ID != "keep-me" {
		t.Errorf("existing lesson id = %q, want keep-me preserved", course.Lessons[1].ID)
	}
}

// TestCourseUpdateReplacesLessons verifies that a lessons field replaces
// the whole list while other fields merge.
func TestCourseUpdateReplacesLessons(t *testing.T) {
	env := newTestEnv(t)
	h := NewCourse(env.backend.Courses, env.log, nil)
	course := seedCourse(t, env)

	rr := httptest.NewRecorder()
	req := withChiURLParam(jsonRequest(t, http.MethodPatch, "/x", map[string]any{
		"lessons": []map[string]any{
			{"id": "l1", "title": "Getting started", "duration": "45m"},
		},
	}), "id", course.ID.String())
	h.Update(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Update status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var updated models.Course
	decodeBody(t, rr, &updated)
	if len(updated.Lessons) != 1 {
		t.Errorf("lessons after replace = %d, want 1", len(updated.Lessons))
	}
	if updated.Title != course.Title || updated.Price != course.Price {
		t.Errorf("merge clobbered untouched fields: %+v", updated)
	}
}

// TestCourseRejectsInvalidLevel verifies validation at the HTTP layer.
func TestCourseRejectsInvalidLevel(t *testing.T) {
	env := newTestEnv(t)
	h := NewCourse(env.backend.Courses, env.log, nil)

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/courses", map[string]any{
		"title": "Broken",
		"level": "ninja",
	}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid level status = %d, want 400", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/courses", map[string]any{
		"title": "Negative",
		"price": -50,
	}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("negative price status = %d, want 400", rr.Code)
	}
}

// TestTestimonialRatingBounds verifies testimonial create validation and
// the featured filter on the public list.
func TestTestimonialRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	h := NewTestimonial(env.backend.Testimonials, env.log, nil)

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/testimonials", map[string]any{
		"name":    "Grace Hopper",
		"content": "Superb delivery.",
		"rating":  6,
	}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("rating 6 status = %d, want 400", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/testimonials", map[string]any{
		"name":     "Grace Hopper",
		"content":  "Superb delivery.",
		"rating":   5,
		"featured": true,
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("rating 5 status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/testimonials?featured=true", nil))
	var featured []models.Testimonial
	decodeBody(t, rr, &featured)
	if len(featured) != 1 {
		t.Errorf("featured listing = %d items, want 1", len(featured))
	}
}

// TestCaseStudySlugFromTitle verifies slug derivation for case studies.
func TestCaseStudySlugFromTitle(t *testing.T) {
	env := newTestEnv(t)
	h := NewCaseStudy(env.backend.CaseStudies, env.log, nil)

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/case-studies", map[string]any{
		"title":  "Scaling Acme's Checkout",
		"client": "Acme Corp",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var cs models.CaseStudy
	decodeBody(t, rr, &cs)
	if cs.Slug != "scaling-acmes-checkout" {
		t.Errorf("derived slug = %q, want scaling-acmes-checkout", cs.Slug)
	}

	rr = httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/x", nil), "slug", cs.Slug)
	h.GetBySlug(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("GetBySlug status = %d, want 200", rr.Code)
	}
}
