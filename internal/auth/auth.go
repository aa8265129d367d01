// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth resolves who is making a request. Two providers exist:
// SessionProvider authenticates against the user table and keeps state
// in Valkey sessions, and DemoProvider keeps a single identity in a
// local file for offline demo deployments.
package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Identity describes the authenticated caller of a request.
type Identity struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	TwoFADone bool      `json:"two_fa_done"`
}

// DisplayName returns the identity's full name, falling back to the email.
func (i *Identity) DisplayName() string {
	name := i.FirstName
	if i.LastName != "" {
		if name != "" {
			name += " "
		}
		name += i.LastName
	}
	if name == "" {
		return i.Email
	}
	return name
}

// Provider authenticates requests. Identity returns nil when the request
// carries no valid credentials; Login returns errs.ErrUnauthorized for a
// bad email/password pair.
type Provider interface {
	Identity(ctx context.Context, r *http.Request) (*Identity, error)
	Login(ctx context.Context, w http.ResponseWriter, email, password string) (*Identity, error)
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}
