package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"stratium/internal/errs"
)

// DemoProvider authenticates a single fixed admin identity for offline
// demo deployments. Login state is a JSON file in the data directory, so
// it survives restarts the same way the document store does. Never used
// in production; config rejects that combination.
type DemoProvider struct {
	path     string
	email    string
	password string
	identity Identity
}

// NewDemoProvider creates a provider whose only valid credentials are the
// given email and password. The logged-in identity is persisted under dir.
func NewDemoProvider(dir, email, password string) *DemoProvider {
	return &DemoProvider{
		path:     filepath.Join(dir, "identity.json"),
		email:    email,
		password: password,
		identity: Identity{
			UserID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)),
			Email:     email,
			FirstName: "Demo",
			LastName:  "Admin",
			IsAdmin:   true,
			TwoFADone: true,
		},
	}
}

// Identity returns the persisted identity, or nil when nobody is logged in.
func (p *DemoProvider) Identity(ctx context.Context, r *http.Request) (*Identity, error) {
	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("demo identity read: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		// Treat a corrupt identity file as logged out.
		return nil, nil
	}
	return &id, nil
}

// Login checks the fixed credentials and persists the demo identity.
func (p *DemoProvider) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*Identity, error) {
	if email != p.email || password != p.password {
		return nil, errs.ErrUnauthorized
	}

	raw, err := json.MarshalIndent(&p.identity, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("demo identity marshal: %w", err)
	}
	if err := os.WriteFile(p.path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("demo identity write: %w", err)
	}

	id := p.identity
	return &id, nil
}

// Logout removes the identity file. Logging out while logged out is fine.
func (p *DemoProvider) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("demo identity remove: %w", err)
	}
	return nil
}
