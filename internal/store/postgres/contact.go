// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stratium/internal/models"
)

// ContactStore handles all contact-submission database operations.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// List returns all submissions, newest first.
func (s *ContactStore) List() ([]models.Contact, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, company, subject, message, is_read, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var items []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Company, &c.Subject,
			&c.Message, &c.IsRead, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Get retrieves a submission by id. Returns nil if not found.
func (s *ContactStore) Get(id uuid.UUID) (*models.Contact, error) {
	c := &models.Contact{}
	err := s.db.QueryRow(`
		SELECT id, name, email, company, subject, message, is_read, created_at
		FROM contact_submissions WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Company, &c.Subject,
		&c.Message, &c.IsRead, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// Create inserts a new submission and returns it with the generated id.
func (s *ContactStore) Create(c *models.Contact) (*models.Contact, error) {
	result := &models.Contact{}
	err := s.db.QueryRow(`
		INSERT INTO contact_submissions (name, email, company, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, company, subject, message, is_read, created_at
	`, c.Name, c.Email, c.Company, c.Subject, c.Message).Scan(
		&result.ID, &result.Name, &result.Email, &result.Company,
		&result.Subject, &result.Message, &result.IsRead, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return result, nil
}

// MarkRead flags a submission as read. Unknown ids are ignored.
func (s *ContactStore) MarkRead(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE contact_submissions SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark contact read: %w", err)
	}
	return nil
}

// Delete removes a submission by id. Deleting a missing id is not an error.
func (s *ContactStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
