package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stratium/internal/errs"
)

// Testimonial represents a customer quote shown on the marketing site.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Rating    int       `json:"rating"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the testimonial fields. Ratings outside 1-5 are rejected,
// never clamped.
func (t *Testimonial) Validate() error {
	v := errs.NewValidation()

	if strings.TrimSpace(t.Name) == "" {
		v.Add("name", "Name is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		v.Add("content", "Content is required")
	}
	if t.Rating < 1 || t.Rating > 5 {
		v.Add("rating", "Rating must be between 1 and 5")
	}

	return v.Err()
}
