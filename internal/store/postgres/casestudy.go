package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stratium/internal/models"
	"stratium/internal/store"
)

// CaseStudyStore handles all case study database operations.
type CaseStudyStore struct {
	db *sql.DB
}

// NewCaseStudyStore creates a new CaseStudyStore with the given database connection.
func NewCaseStudyStore(db *sql.DB) *CaseStudyStore {
	return &CaseStudyStore{db: db}
}

const caseStudyColumns = `id, title, slug, client, industry, challenge,
	solution, results, cover_image, featured, created_at`

func scanCaseStudy(row interface{ Scan(...any) error }, cs *models.CaseStudy) error {
	return row.Scan(
		&cs.ID, &cs.Title, &cs.Slug, &cs.Client, &cs.Industry, &cs.Challenge,
		&cs.Solution, &cs.Results, &cs.CoverImage, &cs.Featured, &cs.CreatedAt,
	)
}

// List returns case studies newest first, optionally filtered by featured.
func (s *CaseStudyStore) List(f store.FeaturedFilter) ([]models.CaseStudy, error) {
	query := `SELECT ` + caseStudyColumns + ` FROM case_studies`
	args := []any{}
	if f.Featured != nil {
		query += ` WHERE featured = $1`
		args = append(args, *f.Featured)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	defer rows.Close()

	var items []models.CaseStudy
	for rows.Next() {
		var cs models.CaseStudy
		if err := scanCaseStudy(rows, &cs); err != nil {
			return nil, fmt.Errorf("scan case study: %w", err)
		}
		items = append(items, cs)
	}
	return items, rows.Err()
}

// Get retrieves a case study by id. Returns nil if not found.
func (s *CaseStudyStore) Get(id uuid.UUID) (*models.CaseStudy, error) {
	cs := &models.CaseStudy{}
	err := scanCaseStudy(s.db.QueryRow(
		`SELECT `+caseStudyColumns+` FROM case_studies WHERE id = $1`, id), cs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get case study: %w", err)
	}
	return cs, nil
}

// GetBySlug retrieves a case study by slug. Returns nil if not found.
func (s *CaseStudyStore) GetBySlug(slug string) (*models.CaseStudy, error) {
	cs := &models.CaseStudy{}
	err := scanCaseStudy(s.db.QueryRow(
		`SELECT `+caseStudyColumns+` FROM case_studies WHERE slug = $1`, slug), cs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get case study by slug: %w", err)
	}
	return cs, nil
}

// Create inserts a new case study. A duplicate slug surfaces as
// errs.ErrConflict.
func (s *CaseStudyStore) Create(cs *models.CaseStudy) (*models.CaseStudy, error) {
	result := &models.CaseStudy{}
	err := scanCaseStudy(s.db.QueryRow(`
		INSERT INTO case_studies (title, slug, client, industry, challenge, solution, results, cover_image, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+caseStudyColumns,
		cs.Title, cs.Slug, cs.Client, cs.Industry, cs.Challenge,
		cs.Solution, cs.Results, cs.CoverImage, cs.Featured,
	), result)
	if err != nil {
		return nil, conflictOr("create case study", err)
	}
	return result, nil
}

// Update modifies an existing case study. Returns (nil, nil) when the
// id is gone.
func (s *CaseStudyStore) Update(cs *models.CaseStudy) (*models.CaseStudy, error) {
	result := &models.CaseStudy{}
	err := scanCaseStudy(s.db.QueryRow(`
		UPDATE case_studies SET
			title = $1, slug = $2, client = $3, industry = $4, challenge = $5,
			solution = $6, results = $7, cover_image = $8, featured = $9
		WHERE id = $10
		RETURNING `+caseStudyColumns,
		cs.Title, cs.Slug, cs.Client, cs.Industry, cs.Challenge,
		cs.Solution, cs.Results, cs.CoverImage, cs.Featured, cs.ID,
	), result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, conflictOr("update case study", err)
	}
	return result, nil
}

// Delete removes a case study by id. Deleting a missing id is not an error.
func (s *CaseStudyStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM case_studies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete case study: %w", err)
	}
	return nil
}
