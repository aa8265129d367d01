// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"stratium/internal/auth"
	"stratium/internal/errs"
	"stratium/internal/middleware"
	"stratium/internal/store"
)

// Auth groups all authentication-related HTTP handlers. The 2FA handlers
// need the concrete session provider and the user table; both are nil in
// demo mode, where the corresponding routes are not registered.
type Auth struct {
	provider auth.Provider
	sessions *auth.SessionProvider
	users    store.UserRepo
}

// NewAuth creates a new Auth handler group.
func NewAuth(provider auth.Provider, sessions *auth.SessionProvider, users store.UserRepo) *Auth {
	return &Auth{provider: provider, sessions: sessions, users: users}
}

// Login verifies credentials (POST /api/auth/login). On the session
// provider the response flags whether a TOTP code is still required.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	identity, err := a.provider.Login(r.Context(), w, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":            identity,
		"two_fa_required": !identity.TwoFADone,
	})
}

// Logout clears whichever identity source is active (POST /api/auth/logout).
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.provider.Logout(r.Context(), w, r); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// User returns the current identity (GET /api/auth/user).
func (a *Auth) User(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	if identity == nil {
		respondError(w, errs.ErrUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, identity)
}

// TwoFASetup generates a TOTP secret for the pending session
// (POST /api/auth/2fa/setup). The client renders the otpauth URL, or
// fetches the QR endpoint.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Pending(r.Context(), r)
	if err != nil || sess == nil {
		respondError(w, errs.ErrUnauthorized)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Stratium",
		AccountName: sess.Email,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"url":    key.URL(),
	})
}

// TwoFAQR renders the provisioning QR code as a PNG
// (GET /api/auth/2fa/qr). Requires a pending session with a stored secret.
func (a *Auth) TwoFAQR(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Pending(r.Context(), r)
	if err != nil || sess == nil {
		respondError(w, errs.ErrUnauthorized)
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		respondNotFound(w)
		return
	}

	url := "otpauth://totp/Stratium:" + user.Email + "?secret=" + *user.TOTPSecret + "&issuer=Stratium"
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// TwoFAVerify validates a TOTP code and completes authentication
// (POST /api/auth/2fa/verify). First-time success enables 2FA for the
// account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Pending(r.Context(), r)
	if err != nil || sess == nil {
		respondError(w, errs.ErrUnauthorized)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		respondError(w, errs.ErrUnauthorized)
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, errs.Validationf("code", "2FA is not set up"))
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		respondError(w, errs.Validationf("code", "Invalid code"))
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			respondError(w, err)
			return
		}
	}

	if err := a.sessions.CompleteTwoFA(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &auth.Identity{
		UserID:    sess.UserID,
		Email:     sess.Email,
		FirstName: sess.FirstName,
		LastName:  sess.LastName,
		IsAdmin:   sess.IsAdmin,
		TwoFADone: true,
	})
}
