package auth

import (
	"context"
	"fmt"
	"net/http"

	"stratium/internal/errs"
	"stratium/internal/session"
	"stratium/internal/store"
	"stratium/internal/store/postgres"
)

// SessionProvider authenticates against the user table and tracks login
// state in Valkey-backed sessions.
type SessionProvider struct {
	users    store.UserRepo
	sessions *session.Store
}

// NewSessionProvider creates a provider over the given user repository
// and session store.
func NewSessionProvider(users store.UserRepo, sessions *session.Store) *SessionProvider {
	return &SessionProvider{users: users, sessions: sessions}
}

// Identity resolves the request's session into an identity. Sessions that
// have not completed 2FA do not count as authenticated.
func (p *SessionProvider) Identity(ctx context.Context, r *http.Request) (*Identity, error) {
	data, err := p.sessions.Get(ctx, r)
	if err != nil {
		return nil, err
	}
	if data == nil || !data.TwoFADone {
		return nil, nil
	}
	return &Identity{
		UserID:    data.UserID,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsAdmin:   data.IsAdmin,
		TwoFADone: data.TwoFADone,
	}, nil
}

// Login verifies the email/password pair and opens a session. When the
// user has 2FA enabled the session starts with TwoFADone false and must
// be completed with a TOTP code before it authenticates requests.
func (p *SessionProvider) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*Identity, error) {
	user, err := p.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !postgres.CheckPassword(user, password) {
		return nil, errs.ErrUnauthorized
	}

	data := &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsAdmin:   user.IsAdmin,
		TwoFADone: !user.TOTPEnabled,
	}
	if _, err := p.sessions.Create(ctx, w, data); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &Identity{
		UserID:    data.UserID,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsAdmin:   data.IsAdmin,
		TwoFADone: data.TwoFADone,
	}, nil
}

// Logout destroys the request's session.
func (p *SessionProvider) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return p.sessions.Destroy(ctx, w, r)
}

// Pending returns the session data for a login that has not yet completed
// 2FA. Returns nil when there is no session at all.
func (p *SessionProvider) Pending(ctx context.Context, r *http.Request) (*session.Data, error) {
	return p.sessions.Get(ctx, r)
}

// CompleteTwoFA marks the request's session as fully authenticated after
// a successful TOTP verification.
func (p *SessionProvider) CompleteTwoFA(ctx context.Context, r *http.Request, data *session.Data) error {
	data.TwoFADone = true
	return p.sessions.Update(ctx, r, data)
}
