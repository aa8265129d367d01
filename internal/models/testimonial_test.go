package models

import (
	"errors"
	"testing"

	"stratium/internal/errs"
)

// TestTestimonialValidateRating verifies the rating bounds: 1 through 5
// inclusive, out-of-range values rejected rather than clamped.
func TestTestimonialValidateRating(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		wantOK bool
	}{
		{name: "rating 0", rating: 0, wantOK: false},
		{name: "rating 1", rating: 1, wantOK: true},
		{name: "rating 3", rating: 3, wantOK: true},
		{name: "rating 5", rating: 5, wantOK: true},
		{name: "rating 6", rating: 6, wantOK: false},
		{name: "negative rating", rating: -1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := &Testimonial{
				Name:    "Grace Hopper",
				Content: "Outstanding work, delivered on time.",
				Rating:  tt.rating,
			}
			err := tm.Validate()

			if tt.wantOK {
				if err != nil {
					t.Errorf("Validate() with rating %d = %v, want nil", tt.rating, err)
				}
				return
			}

			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() with rating %d = %v, want *errs.ValidationError", tt.rating, err)
			}
			if _, ok := verr.Fields["rating"]; !ok {
				t.Errorf("expected a rating message, got %v", verr.Fields)
			}
		})
	}
}

// TestTestimonialValidateRequiredFields verifies name and content are
// required.
func TestTestimonialValidateRequiredFields(t *testing.T) {
	tm := &Testimonial{Rating: 4}

	var verr *errs.ValidationError
	if !errors.As(tm.Validate(), &verr) {
		t.Fatal("expected a ValidationError")
	}
	for _, field := range []string{"name", "content"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing message for field %q", field)
		}
	}
}
