// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"stratium/internal/errs"
	"stratium/internal/middleware"
	"stratium/internal/models"
	"stratium/internal/store"
)

// Enrollment groups the course enrollment handlers. All of them require
// an authenticated identity.
type Enrollment struct {
	enrollments store.EnrollmentRepo
	courses     store.CourseRepo
}

// NewEnrollment creates a new Enrollment handler group.
func NewEnrollment(enrollments store.EnrollmentRepo, courses store.CourseRepo) *Enrollment {
	return &Enrollment{enrollments: enrollments, courses: courses}
}

// List returns the caller's enrollments (GET /api/enrollments).
func (h *Enrollment) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	items, err := h.enrollments.ListByUser(id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Enrollment{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Create enrolls the caller in a course (POST /api/enrollments).
// Enrolling twice in the same course yields 409.
func (h *Enrollment) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	var req struct {
		CourseID uuid.UUID `json:"course_id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	course, err := h.courses.Get(req.CourseID)
	if err != nil {
		respondError(w, err)
		return
	}
	if course == nil {
		respondError(w, errs.Validationf("course_id", "Course does not exist"))
		return
	}

	// Report a duplicate before attempting the insert; the store's
	// unique pair constraint stays as the backstop for races.
	existing, err := h.enrollments.GetByUserAndCourse(id.UserID, course.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing != nil {
		respondError(w, errs.ErrConflict)
		return
	}

	created, err := h.enrollments.Create(&models.Enrollment{
		UserID:   id.UserID,
		CourseID: course.ID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateProgress stores new progress for an enrollment
// (PATCH /api/enrollments/{id}/progress). Progress never decreases and
// completed lessons must belong to the course; violations yield 400.
func (h *Enrollment) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())

	enrollmentID, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Progress         int      `json:"progress"`
		CompletedLessons []string `json:"completed_lessons"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	enrollment, err := h.enrollments.Get(enrollmentID)
	if err != nil {
		respondError(w, err)
		return
	}
	if enrollment == nil {
		respondNotFound(w)
		return
	}

	// Only the enrolled user (or an admin) may update progress.
	if enrollment.UserID != identity.UserID && !identity.IsAdmin {
		respondError(w, errs.ErrForbidden)
		return
	}

	course, err := h.courses.Get(enrollment.CourseID)
	if err != nil {
		respondError(w, err)
		return
	}
	if course == nil {
		respondNotFound(w)
		return
	}

	if err := enrollment.ValidateProgress(req.Progress, req.CompletedLessons, course); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.enrollments.UpdateProgress(enrollmentID, req.Progress, req.CompletedLessons)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
