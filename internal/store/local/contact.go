package local

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stratium/internal/models"
)

// ContactStore implements store.ContactRepo on the local document.
type ContactStore struct {
	db *DB
}

// NewContactStore creates a ContactStore over the given document store.
func NewContactStore(db *DB) *ContactStore {
	return &ContactStore{db: db}
}

// List returns all submissions, newest first.
func (s *ContactStore) List() ([]models.Contact, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return filtered(s.db.doc.Contacts, func(models.Contact) bool { return true }), nil
}

// Get returns a submission by id, or nil if absent.
func (s *ContactStore) Get(id uuid.UUID) (*models.Contact, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Contacts, func(c models.Contact) bool { return c.ID == id }); ok {
		c := s.db.doc.Contacts[i]
		return &c, nil
	}
	return nil, nil
}

// Create stores a new submission with an assigned id and timestamp.
func (s *ContactStore) Create(c *models.Contact) (*models.Contact, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec := *c
	rec.ID = uuid.New()
	rec.IsRead = false
	rec.CreatedAt = time.Now()

	s.db.doc.Contacts = prepend(s.db.doc.Contacts, rec)
	if err := s.db.persist(); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return &rec, nil
}

// MarkRead flags a submission as read. Unknown ids are ignored.
func (s *ContactStore) MarkRead(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Contacts, func(c models.Contact) bool { return c.ID == id }); ok {
		s.db.doc.Contacts[i].IsRead = true
		if err := s.db.persist(); err != nil {
			return fmt.Errorf("mark contact read: %w", err)
		}
	}
	return nil
}

// Delete removes a submission. Deleting a missing id is not an error.
func (s *ContactStore) Delete(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if i, ok := locate(s.db.doc.Contacts, func(c models.Contact) bool { return c.ID == id }); ok {
		s.db.doc.Contacts = removeAt(s.db.doc.Contacts, i)
		if err := s.db.persist(); err != nil {
			return fmt.Errorf("delete contact: %w", err)
		}
	}
	return nil
}
