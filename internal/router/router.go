// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Stratium server. It organizes the JSON API into public, authenticated,
// and admin groups; everything outside /api falls through to the SPA.
package router

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"stratium/internal/auth"
	"stratium/internal/handlers"
	"stratium/internal/middleware"
)

// Deps bundles the handler groups and services the router wires together.
type Deps struct {
	Provider auth.Provider

	Auth         *handlers.Auth
	Contact      *handlers.Contact
	Blog         *handlers.Blog
	Testimonials *handlers.Testimonial
	CaseStudies  *handlers.CaseStudy
	Courses      *handlers.Course
	Enrollments  *handlers.Enrollment
	Analytics    *handlers.Analytics
	Activity     *handlers.Activity
	Drafts       *handlers.Drafts
	Media        *handlers.Media

	// TwoFA controls whether the TOTP endpoints are registered. Demo mode
	// has no user table and therefore no 2FA.
	TwoFA bool

	// SPA is the embedded frontend filesystem rooted at the directory
	// containing index.html. Nil disables SPA serving.
	SPA fs.FS
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.WithIdentity(d.Provider))

	// Public write endpoints get their own rate limiters so abuse of one
	// does not starve the others.
	contactLimit := middleware.NewRateLimiter(5, time.Minute)
	trackLimit := middleware.NewRateLimiter(60, time.Minute)
	loginLimit := middleware.NewRateLimiter(10, time.Minute)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth.
		r.With(loginLimit.Middleware).Post("/auth/login", d.Auth.Login)
		r.Post("/auth/logout", d.Auth.Logout)
		r.Get("/auth/user", d.Auth.User)
		if d.TwoFA {
			r.Post("/auth/2fa/setup", d.Auth.TwoFASetup)
			r.Get("/auth/2fa/qr", d.Auth.TwoFAQR)
			r.Post("/auth/2fa/verify", d.Auth.TwoFAVerify)
		}

		// Public reads and rate-limited public writes.
		r.With(contactLimit.Middleware).Post("/contact", d.Contact.Submit)
		r.With(trackLimit.Middleware).Post("/analytics/track", d.Analytics.Track)

		r.Get("/blog", d.Blog.List)
		r.Get("/blog/{slug}", d.Blog.GetBySlug)
		r.Get("/testimonials", d.Testimonials.List)
		r.Get("/case-studies", d.CaseStudies.List)
		r.Get("/case-studies/{slug}", d.CaseStudies.GetBySlug)
		r.Get("/courses", d.Courses.List)
		r.Get("/courses/{slug}", d.Courses.GetBySlug)

		// Authenticated (non-admin) endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.CSRF)

			r.Get("/enrollments", d.Enrollments.List)
			r.Post("/enrollments", d.Enrollments.Create)
			r.Patch("/enrollments/{id}/progress", d.Enrollments.UpdateProgress)
		})

		// Admin endpoints. RequireAuth runs first so an unauthenticated
		// caller sees 401, an authenticated non-admin 403. CSRF comes
		// after both, keeping those status codes stable.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Use(middleware.CSRF)

			r.Get("/contacts", d.Contact.List)
			r.Patch("/contacts/{id}/read", d.Contact.MarkRead)
			r.Delete("/contacts/{id}", d.Contact.Delete)

			r.Get("/blog/id/{id}", d.Blog.Get)
			r.Post("/blog", d.Blog.Create)
			r.Patch("/blog/{id}", d.Blog.Update)
			r.Delete("/blog/{id}", d.Blog.Delete)

			r.Post("/testimonials", d.Testimonials.Create)
			r.Patch("/testimonials/{id}", d.Testimonials.Update)
			r.Delete("/testimonials/{id}", d.Testimonials.Delete)

			r.Post("/case-studies", d.CaseStudies.Create)
			r.Patch("/case-studies/{id}", d.CaseStudies.Update)
			r.Delete("/case-studies/{id}", d.CaseStudies.Delete)

			r.Post("/courses", d.Courses.Create)
			r.Patch("/courses/{id}", d.Courses.Update)
			r.Delete("/courses/{id}", d.Courses.Delete)

			r.Get("/analytics/summary", d.Analytics.Summary)
			r.Get("/analytics/events", d.Analytics.Events)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/activity", d.Activity.List)
				r.Delete("/activity", d.Activity.Clear)

				r.Route("/drafts/{key}", func(r chi.Router) {
					r.Get("/", d.Drafts.Get)
					r.Post("/", d.Drafts.Push)
					r.Post("/undo", d.Drafts.Undo)
					r.Post("/redo", d.Drafts.Redo)
					r.Delete("/", d.Drafts.Discard)
				})

				r.Post("/media", d.Media.Upload)
				r.Delete("/media", d.Media.Delete)
			})
		})

		// Unknown API paths are 404, never the SPA shell.
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not Found"}`))
		})
	})

	// Everything else serves the SPA: real files directly, any other
	// path the index.html shell for client-side routing.
	if d.SPA != nil {
		r.NotFound(spaHandler(d.SPA))
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// spaHandler serves static assets from the embedded frontend build, with
// index.html as the fallback for client-routed paths.
func spaHandler(assets fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(assets))

	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if f, err := assets.Open(path); err == nil {
				f.Close()
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		index, err := fs.ReadFile(assets, "index.html")
		if err != nil {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(index)
	}
}
