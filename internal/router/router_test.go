// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"

	"stratium/internal/activity"
	"stratium/internal/auth"
	"stratium/internal/handlers"
	"stratium/internal/middleware"
	"stratium/internal/store/local"
)

// headerProvider resolves the identity from a test header, standing in
// for the session provider: "admin", "user", or absent.
type headerProvider struct{}

func (headerProvider) Identity(ctx context.Context, r *http.Request) (*auth.Identity, error) {
	switch r.Header.Get("X-Test-Identity") {
	case "admin":
		return &auth.Identity{
			UserID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("admin")),
			Email:  "admin@stratium.local", IsAdmin: true, TwoFADone: true,
		}, nil
	case "user":
		return &auth.Identity{
			UserID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("user")),
			Email:  "user@example.com",
		}, nil
	}
	return nil, nil
}

func (headerProvider) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*auth.Identity, error) {
	return nil, nil
}

func (headerProvider) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return nil
}

// newTestRouter builds the full router over the local backend with the
// header-driven auth provider.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	db, err := local.Open(dir)
	if err != nil {
		t.Fatalf("local.Open() failed: %v", err)
	}
	backend := local.NewBackend(db)
	log := activity.Open(filepath.Join(dir, "activity.json"))
	provider := headerProvider{}

	return New(Deps{
		Provider:     provider,
		Auth:         handlers.NewAuth(provider, nil, nil),
		Contact:      handlers.NewContact(backend.Contacts, log),
		Blog:         handlers.NewBlog(backend.Blog, log, nil),
		Testimonials: handlers.NewTestimonial(backend.Testimonials, log, nil),
		CaseStudies:  handlers.NewCaseStudy(backend.CaseStudies, log, nil),
		Courses:      handlers.NewCourse(backend.Courses, log, nil),
		Enrollments:  handlers.NewEnrollment(backend.Enrollments, backend.Courses),
		Analytics:    handlers.NewAnalytics(backend.Analytics),
		Activity:     handlers.NewActivity(log),
		Drafts:       handlers.NewDrafts(),
		Media:        handlers.NewMedia(nil),
		SPA: fstest.MapFS{
			"index.html": &fstest.MapFile{Data: []byte("<html>shell</html>")},
			"app.js":     &fstest.MapFile{Data: []byte("console.log('hi')")},
		},
	})
}

// doJSON performs a request with optional identity and CSRF material.
func doJSON(t *testing.T, h http.Handler, method, target, identity, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if identity != "" {
		req.Header.Set("X-Test-Identity", identity)
	}
	// Mutating requests carry a matched CSRF pair so the tests exercise
	// the auth gates, not the CSRF check.
	const token = "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: token})
	req.Header.Set(middleware.CSRFHeaderName, token)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// TestAdminGate verifies the status-code ladder on an admin mutation:
// 401 unauthenticated, 403 authenticated non-admin, 201 admin.
func TestAdminGate(t *testing.T) {
	r := newTestRouter(t)
	body := `{"title":"Post","category":"news"}`

	tests := []struct {
		name       string
		identity   string
		wantStatus int
	}{
		{name: "unauthenticated", identity: "", wantStatus: http.StatusUnauthorized},
		{name: "non-admin", identity: "user", wantStatus: http.StatusForbidden},
		{name: "admin", identity: "admin", wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, r, http.MethodPost, "/api/blog", tt.identity, body)
			if rr.Code != tt.wantStatus {
				t.Errorf("POST /api/blog as %q = %d, want %d: %s",
					tt.identity, rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

// TestPublicEndpoints verifies that reads and the contact form need no
// authentication.
func TestPublicEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{
		"/api/blog", "/api/testimonials", "/api/case-studies", "/api/courses",
	} {
		rr := doJSON(t, r, http.MethodGet, target, "", "")
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", target, rr.Code)
		}
	}

	rr := doJSON(t, r, http.MethodPost, "/api/contact", "",
		`{"name":"Ada Lovelace","email":"ada@example.com","subject":"Project inquiry","message":"We would like to talk."}`)
	if rr.Code != http.StatusCreated {
		t.Errorf("POST /api/contact = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, http.MethodPost, "/api/analytics/track", "", `{"page":"/"}`)
	if rr.Code != http.StatusAccepted {
		t.Errorf("POST /api/analytics/track = %d, want 202", rr.Code)
	}
}

// TestAuthenticatedEndpoints verifies that enrollments need a login but
// not admin rights.
func TestAuthenticatedEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/api/enrollments", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous GET /api/enrollments = %d, want 401", rr.Code)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/enrollments", "user", "")
	if rr.Code != http.StatusOK {
		t.Errorf("user GET /api/enrollments = %d, want 200", rr.Code)
	}

	// Admin-only reads stay closed to regular users.
	rr = doJSON(t, r, http.MethodGet, "/api/contacts", "user", "")
	if rr.Code != http.StatusForbidden {
		t.Errorf("user GET /api/contacts = %d, want 403", rr.Code)
	}
	rr = doJSON(t, r, http.MethodGet, "/api/analytics/summary", "admin", "")
	if rr.Code != http.StatusOK {
		t.Errorf("admin GET /api/analytics/summary = %d, want 200", rr.Code)
	}
}

// TestAPINotFoundIsJSON verifies unknown API paths never fall through to
// the SPA shell.
func TestAPINotFoundIsJSON(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/api/nope", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET /api/nope = %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("API 404 Content-Type = %q, want application/json", ct)
	}
}

// TestSPAFallback verifies static files are served directly and client
// routes get the index shell.
func TestSPAFallback(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/app.js", "", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "console.log") {
		t.Errorf("GET /app.js = %d %q, want the asset", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, http.MethodGet, "/courses/some-course", "", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "shell") {
		t.Errorf("client route = %d %q, want the index shell", rr.Code, rr.Body.String())
	}
}

// TestHealth verifies the health endpoint.
func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "ok") {
		t.Errorf("GET /health = %d %q", rr.Code, rr.Body.String())
	}
}

// TestMediaUnconfigured verifies the 503 when object storage is not set
// up, for uploads and deletions alike.
func TestMediaUnconfigured(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/api/admin/media", "admin", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("POST /api/admin/media without storage = %d, want 503", rr.Code)
	}

	rr = doJSON(t, r, http.MethodDelete, "/api/admin/media", "admin", `{"url":"https://s3.example.com/media/x.jpg"}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("DELETE /api/admin/media without storage = %d, want 503", rr.Code)
	}
}
