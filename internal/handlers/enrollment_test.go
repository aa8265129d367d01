// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stratium/internal/models"
)

// seedCourse inserts a published course with two lessons.
func seedCourse(t *testing.T, env *testEnv) *models.Course {
	t.Helper()

	course, err := env.backend.Courses.Create(&models.Course{
		Title:      "Go for Backend Engineers",
		Slug:       "go-for-backend-engineers",
		Price:      19900,
		Level:      models.LevelBeginner,
		Instructor: "Dana Smith",
		Lessons: []models.Lesson{
			{ID: "l1", Title: "Getting started", Duration: "45m"},
			{ID: "l2", Title: "Interfaces", Duration: "60m"},
		},
		Published: true,
	})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

// TestEnrollmentLifecycle covers enroll, duplicate enroll, list, and
// progress updates through to completion.
func TestEnrollmentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	course := seedCourse(t, env)
	h := NewEnrollment(env.backend.Enrollments, env.backend.Courses)
	student := testUser()

	// Enroll.
	rr := httptest.NewRecorder()
	h.Create(rr, withIdentity(jsonRequest(t, http.MethodPost, "/api/enrollments", map[string]any{
		"course_id": course.ID,
	}), student))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var enrollment models.Enrollment
	decodeBody(t, rr, &enrollment)
	if enrollment.Progress != 0 {
		t.Errorf("new enrollment progress = %d, want 0", enrollment.Progress)
	}

	// Enrolling twice is a conflict.
	rr = httptest.NewRecorder()
	h.Create(rr, withIdentity(jsonRequest(t, http.MethodPost, "/api/enrollments", map[string]any{
		"course_id": course.ID,
	}), student))
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate enrollment status = %d, want 409", rr.Code)
	}

	// A nonexistent course is a validation error.
	rr = httptest.NewRecorder()
	h.Create(rr, withIdentity(jsonRequest(t, http.MethodPost, "/api/enrollments", map[string]any{
		"course_id": "9f7b7a84-94e9-4a3b-9387-0a3bb1a2bb0e",
	}), student))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown course status = %d, want 400", rr.Code)
	}

	// The student sees their enrollment.
	rr = httptest.NewRecorder()
	h.List(rr, withIdentity(httptest.NewRequest(http.MethodGet, "/api/enrollments", nil), student))
	var mine []models.Enrollment
	decodeBody(t, rr, &mine)
	if len(mine) != 1 {
		t.Fatalf("List = %d enrollments, want 1", len(mine))
	}

	// Another user sees none.
	rr = httptest.NewRecorder()
	h.List(rr, withIdentity(httptest.NewRequest(http.MethodGet, "/api/enrollments", nil), testUser()))
	var others []models.Enrollment
	decodeBody(t, rr, &others)
	if len(others) != 0 {
		t.Errorf("other user's List = %d enrollments, want 0", len(others))
	}

	// Progress to 50, then to completion.
	rr = httptest.NewRecorder()
	req := withChiURLParam(jsonRequest(t, http.MethodPatch, "/x", map[string]any{
		"progress":          50,
		"completed_lessons": []string{"l1"},
	}), "id", enrollment.ID.String())
	h.UpdateProgress(rr, withIdentity(req, student))
	if rr.Code != http.StatusOK {
		t.Fatalf("UpdateProgress status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req = withChiURLParam(jsonRequest(t, http.MethodPatch, "/x", map[string]any{
		"progress":          100,
		"completed_lessons": []string{"l1", "l2"},
	}), "id", enrollment.ID.String())
	h.UpdateProgress(rr, withIdentity(req, student))
	if rr.Code != http.StatusOK {
		t.Fatalf("completion status = %d, want 200", rr.Code)
	}
	var done models.Enrollment
	decodeBody(t, rr, &done)
	if done.CompletedAt == nil {
		t.Error("CompletedAt not set at 100% progress")
	}
}

// TestEnrollmentProgressRules verifies the monotonicity and lesson
// membership rules at the HTTP layer.
func TestEnrollmentProgressRules(t *testing.T) {
	env := newTestEnv(t)
	course := seedCourse(t, env)
	h := NewEnrollment(env.backend.Enrollments, env.backend.Courses)
	student := testUser()

	enrollment, err := env.backend.Enrollments.Create(&models.Enrollment{
		UserID: student.UserID, CourseID: course.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.backend.Enrollments.UpdateProgress(enrollment.ID, 60, []string{"l1"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "progress decreases",
			body:       map[string]any{"progress": 30},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "progress above 100",
			body:       map[string]any{"progress": 150},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "foreign lesson id",
			body:       map[string]any{"progress": 70, "completed_lessons": []string{"ghost"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid increase",
			body:       map[string]any{"progress": 70, "completed_lessons": []string{"l1", "l2"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := withChiURLParam(jsonRequest(t, http.MethodPatch, "/x", tt.body), "id", enrollment.ID.String())
			h.UpdateProgress(rr, withIdentity(req, student))
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

// TestEnrollmentOwnership verifies that only the enrolled user or an
// admin may update progress.
func TestEnrollmentOwnership(t *testing.T) {
	env := newTestEnv(t)
	course := seedCourse(t, env)
	h := NewEnrollment(env.backend.Enrollments, env.backend.Courses)
	owner := testUser()

	enrollment, err := env.backend.Enrollments.Create(&models.Enrollment{
		UserID: owner.UserID, CourseID: course.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	// A stranger is forbidden.
	rr := httptest.NewRecorder()
	req := withChiURLParam(jsonRequest(t, http.MethodPatch, "/x", map[string]any{
		"progress": 10,
	}), "id", enrollment.ID.String())
	h.UpdateProgress(rr, withIdentity(req, testUser()))
	if rr.Code != http.StatusForbidden {
		t.Errorf("stranger update status = %d, want 403", rr.Code)
	}

	// An admin may update on the user's behalf.
	rr = httptest.NewRecorder()
	req = withChiURLParam(jsonRequest(t, http.MethodPatch, "/x", map[string]any{
		"progress": 10,
	}), "id", enrollment.ID.String())
	h.UpdateProgress(rr, withIdentity(req, testAdmin()))
	if rr.Code != http.StatusOK {
		t.Errorf("admin update status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
}
