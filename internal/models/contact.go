// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"stratium/internal/errs"
)

// Contact represents a contact form submission. Created by the public site,
// mutated only to flip IsRead, deleted only by an explicit admin action.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the submission fields and returns a field-level
// ValidationError, or nil when everything is acceptable.
func (c *Contact) Validate() error {
	v := errs.NewValidation()

	if utf8.RuneCountInString(strings.TrimSpace(c.Name)) < 2 {
		v.Add("name", "Name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		v.Add("email", "Please enter a valid email address")
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Subject)) < 5 {
		v.Add("subject", "Subject must be at least 5 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Message)) < 10 {
		v.Add("message", "Message must be at least 10 characters")
	}
	if utf8.RuneCountInString(c.Message) > maxBodyLen {
		v.Add("message", "Message is too long")
	}

	return v.Err()
}
