package postgres

import (
	"database/sql"

	"stratium/internal/store"
)

// NewBackend wires every content repository to the given connection pool.
func NewBackend(db *sql.DB) *store.Backend {
	return &store.Backend{
		Contacts:     NewContactStore(db),
		Blog:         NewBlogStore(db),
		Testimonials: NewTestimonialStore(db),
		CaseStudies:  NewCaseStudyStore(db),
		Courses:      NewCourseStore(db),
		Enrollments:  NewEnrollmentStore(db),
		Analytics:    NewAnalyticsStore(db),
	}
}
