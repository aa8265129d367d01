// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store defines the repository contracts shared by the two storage
// backends: PostgreSQL (production) and the local JSON document store
// (demo/offline mode). Handlers depend only on these interfaces, so the
// persistence strategy is chosen once, at composition time in main.
//
// Conventions, common to both backends:
//   - Lookups return (nil, nil) when the id or slug is absent; the HTTP
//     layer translates that into 404.
//   - Creates assign the id and timestamps and return the persisted record.
//   - Updates take the full record and return the stored result, or
//     (nil, nil) when the id is gone.
//   - Deletes are idempotent.
//   - Unique-constraint violations (slug, email, one enrollment per user
//     and course) wrap errs.ErrConflict.
package store

import (
	"github.com/google/uuid"

	"stratium/internal/models"
)

// BlogFilter restricts blog post listings. Nil fields match everything.
type BlogFilter struct {
	Published *bool
}

// FeaturedFilter restricts testimonial and case study listings.
type FeaturedFilter struct {
	Featured *bool
}

// CourseFilter restricts course listings.
type CourseFilter struct {
	Published *bool
}

// ContactRepo stores contact form submissions.
type ContactRepo interface {
	List() ([]models.Contact, error)
	Get(id uuid.UUID) (*models.Contact, error)
	Create(c *models.Contact) (*models.Contact, error)
	MarkRead(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

// BlogRepo stores blog posts. Listings are ordered by creation time
// descending.
type BlogRepo interface {
	List(f BlogFilter) ([]models.BlogPost, error)
	Get(id uuid.UUID) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	Create(p *models.BlogPost) (*models.BlogPost, error)
	Update(p *models.BlogPost) (*models.BlogPost, error)
	Delete(id uuid.UUID) error
}

// TestimonialRepo stores testimonials.
type TestimonialRepo interface {
	List(f FeaturedFilter) ([]models.Testimonial, error)
	Get(id uuid.UUID) (*models.Testimonial, error)
	Create(t *models.Testimonial) (*models.Testimonial, error)
	Update(t *models.Testimonial) (*models.Testimonial, error)
	Delete(id uuid.UUID) error
}

// CaseStudyRepo stores case studies.
type CaseStudyRepo interface {
	List(f FeaturedFilter) ([]models.CaseStudy, error)
	Get(id uuid.UUID) (*models.CaseStudy, error)
	GetBySlug(slug string) (*models.CaseStudy, error)
	Create(cs *models.CaseStudy) (*models.CaseStudy, error)
	Update(cs *models.CaseStudy) (*models.CaseStudy, error)
	Delete(id uuid.UUID) error
}

// CourseRepo stores courses.
type CourseRepo interface {
	List(f CourseFilter) ([]models.Course, error)
	Get(id uuid.UUID) (*models.Course, error)
	GetBySlug(slug string) (*models.Course, error)
	Create(c *models.Course) (*models.Course, error)
	Update(c *models.Course) (*models.Course, error)
	Delete(id uuid.UUID) error
}

// EnrollmentRepo stores enrollments. Listings are ordered by enrollment
// time descending.
type EnrollmentRepo interface {
	Get(id uuid.UUID) (*models.Enrollment, error)
	GetByUserAndCourse(userID, courseID uuid.UUID) (*models.Enrollment, error)
	ListByUser(userID uuid.UUID) ([]models.Enrollment, error)
	Create(e *models.Enrollment) (*models.Enrollment, error)
	UpdateProgress(id uuid.UUID, progress int, completedLessons []string) (*models.Enrollment, error)
}

// AnalyticsRepo stores tracking events. Events are append-only.
type AnalyticsRepo interface {
	Track(e *models.AnalyticsEvent) (*models.AnalyticsEvent, error)
	Events(eventType string, limit int) ([]models.AnalyticsEvent, error)
	Summary() (*models.AnalyticsSummary, error)
}

// UserRepo stores accounts. Only the PostgreSQL backend implements it;
// demo mode authenticates against a fixed identity instead.
type UserRepo interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	Create(email, password, firstName, lastName string, isAdmin bool) (*models.User, error)
	SetTOTPSecret(userID uuid.UUID, secret string) error
	EnableTOTP(userID uuid.UUID) error
}

// Backend bundles the content repositories a composition provides.
type Backend struct {
	Contacts     ContactRepo
	Blog         BlogRepo
	Testimonials TestimonialRepo
	CaseStudies  CaseStudyRepo
	Courses      CourseRepo
	Enrollments  EnrollmentRepo
	Analytics    AnalyticsRepo
}
