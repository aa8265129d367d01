package local

import (
	"stratium/internal/store"
)

// NewBackend wires every content repository to the shared document store.
func NewBackend(db *DB) *store.Backend {
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
