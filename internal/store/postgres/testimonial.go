package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stratium/internal/models"
	"stratium/internal/store"
)

// TestimonialStore handles all testimonial database operations.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore creates a new TestimonialStore with the given database connection.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

const testimonialColumns = `id, name, role, company, content, avatar_url, rating, featured, created_at`

func scanTestimonial(row interface{ Scan(...any) error }, t *models.Testimonial) error {
	return row.Scan(
		&t.ID, &t.Name, &t.Role, &t.Company, &t.Content,
		&t.AvatarURL, &t.Rating, &t.Featured, &t.CreatedAt,
	)
}

// List returns testimonials newest first, optionally filtered by featured.
func (s *TestimonialStore) List(f store.FeaturedFilter) ([]models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	args := []any{}
	if f.Featured != nil {
		query += ` WHERE featured = $1`
		args = append(args, *f.Featured)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var items []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := scanTestimonial(rows, &t); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// Get retrieves a testimonial by id. Returns nil if not found.
func (s *TestimonialStore) Get(id uuid.UUID) (*models.Testimonial, error) {
	t := &models.Testimonial{}
	err := scanTestimonial(s.db.QueryRow(
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id), t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return t, nil
}

// Create inserts a new testimonial and returns it with the generated id.
func (s *TestimonialStore) Create(t *models.Testimonial) (*models.Testimonial, error) {
	result := &models.Testimonial{}
	err := scanTestimonial(s.db.QueryRow(`
		INSERT INTO testimonials (name, role, company, content, avatar_url, rating, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+testimonialColumns,
		t.Name, t.Role, t.Company, t.Content, t.AvatarURL, t.Rating, t.Featured,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return result, nil
}

// Update modifies an existing testimonial. Returns (nil, nil) when the
// id is gone.
func (s *TestimonialStore) Update(t *models.Testimonial) (*models.Testimonial, error) {
	result := &models.Testimonial{}
	err := scanTestimonial(s.db.QueryRow(`
		UPDATE testimonials SET
			name = $1, role = $2, company = $3, content = $4,
			avatar_url = $5, rating = $6, featured = $7
		WHERE id = $8
		RETURNING `+testimonialColumns,
		t.Name, t.Role, t.Company, t.Content, t.AvatarURL, t.Rating, t.Featured, t.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return result, nil
}

// Delete removes a testimonial by id. Deleting a missing id is not an error.
func (s *TestimonialStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}
