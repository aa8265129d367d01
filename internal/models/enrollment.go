package models

import (
	"time"

	"github.com/google/uuid"

	"stratium/internal/errs"
)

// Enrollment links a user to a course. At most one enrollment exists per
// user and course pair. CompletedAt is set when progress reaches 100.
type Enrollment struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	CourseID         uuid.UUID  `json:"course_id"`
	Progress         int        `json:"progress"`
	CompletedLessons []string   `json:"completed_lessons"`
	EnrolledAt       time.Time  `json:"enrolled_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// ValidateProgress checks a progress update against the current enrollment
// state and the owning course. Progress is 0-100 and never decreases;
// completed lessons must belong to the course.
func (e *Enrollment) ValidateProgress(progress int, completedLessons []string, course *Course) error {
	v := errs.NewValidation()

	if progress < 0 || progress > 100 {
		v.Add("progress", "Progress must be between 0 and 100")
	}
	if progress < e.Progress {
		v.Add("progress", "Progress cannot decrease")
	}
	for _, id := range completedLessons {
		if !course.HasLesson(id) {
			v.Add("completed_lessons", "Unknown lesson id: "+id)
			break
		}
	}

	return v.Err()
}
