// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stratium/internal/activity"
	"stratium/internal/auth"
	"stratium/internal/middleware"
	"stratium/internal/store"
	"stratium/internal/store/local"
)

// testEnv bundles a local backend, an activity log, and handler groups
// for tests. The local JSON store means handler tests need no external
// services.
type testEnv struct {
	backend *store.Backend
	log     *activity.Log
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := local.Open(dir)
	if err != nil {
		t.Fatalf("local.Open() failed: %v", err)
	}
	return &testEnv{
		backend: local.NewBackend(db),
		log:     activity.Open(filepath.Join(dir, "activity.json")),
	}
}

// jsonRequest builds a request carrying a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withChiURLParam injects a chi URL parameter into the request context,
// standing in for the router.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withIdentity injects an authenticated identity, standing in for the
// session middleware.
func withIdentity(r *http.Request, id *auth.Identity) *http.Request {
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), id))
}

func testAdmin() *auth.Identity {
	return &auth.Identity{
		UserID:    uuid.New(),
		Email:     "admin@stratium.local",
		FirstName: "Admin",
		IsAdmin:   true,
		TwoFADone: true,
	}
}

func testUser() *auth.Identity {
	return &auth.Identity{
		UserID: uuid.New(),
		Email:  "student@example.com",
	}
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}
