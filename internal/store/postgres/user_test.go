package postgres

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"stratium/internal/errs"
)

// TestUserCreateAndFind verifies account creation, lookups, and password
// verification against the real database.
func TestUserCreateAndFind(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	const email = "itest-user@stratium.test"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	created, err := users.Create(email, "hunter2!", "Integration", "Test", false)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Create() did not assign an id")
	}
	if created.PasswordHash == "hunter2!" {
		t.Error("password stored in plaintext")
	}

	// Duplicate email is a conflict.
	if _, err := users.Create(email, "other", "Dup", "User", false); !errors.Is(err, errs.ErrConflict) {
		t.Errorf("duplicate email Create() = %v, want ErrConflict", err)
	}

	byEmail, err := users.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail() failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != created.ID {
		t.Errorf("FindByEmail() = %+v, want the created user", byEmail)
	}

	byID, err := users.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID() failed: %v", err)
	}
	if byID == nil || byID.Email != email {
		t.Errorf("FindByID() = %+v, want the created user", byID)
	}

	if missing, _ := users.FindByEmail("nobody@stratium.test"); missing != nil {
		t.Error("FindByEmail() on unknown email returned a user, want nil")
	}

	if !CheckPassword(byEmail, "hunter2!") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(byEmail, "wrong") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

// TestUserTOTPLifecycle verifies the two-step 2FA enablement.
func TestUserTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	const email = "itest-totp@stratium.test"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	created, err := users.Create(email, "hunter2!", "Totp", "Test", true)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.TOTPEnabled {
		t.Error("new user must not have TOTP enabled")
	}

	if err := users.SetTOTPSecret(created.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret() failed: %v", err)
	}
	mid, _ := users.FindByID(created.ID)
	if mid.TOTPSecret == nil || *mid.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("secret after setup = %v, want stored", mid.TOTPSecret)
	}
	if mid.TOTPEnabled {
		t.Error("setting the secret must not enable TOTP yet")
	}

	if err := users.EnableTOTP(created.ID); err != nil {
		t.Fatalf("EnableTOTP() failed: %v", err)
	}
	enabled, _ := users.FindByID(created.ID)
	if !enabled.TOTPEnabled {
		t.Error("TOTP not enabled after EnableTOTP()")
	}
}
