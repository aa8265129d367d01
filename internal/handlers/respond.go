// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API served under /api. Handler
// groups are plain structs wired with their repositories at composition
// time; each maps repository results and the errs taxonomy onto HTTP
// status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stratium/internal/errs"
)

// maxBodyBytes caps JSON request bodies. Content payloads are text; one
// megabyte is generous.
const maxBodyBytes = 1 << 20

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("response encode failed", "error", err)
		}
	}
}

// respondError maps an error onto a status code and a JSON body. The errs
// taxonomy drives the mapping; anything unrecognized is a logged 500.
func respondError(w http.ResponseWriter, err error) {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, errs.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
	case errors.Is(err, errs.ErrConflict):
		respondJSON(w, http.StatusConflict, map[string]string{"error": "Conflict"})
	case errors.Is(err, errs.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	case errors.Is(err, errs.ErrForbidden):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "Forbidden"})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
}

// respondNotFound is the common 404 body for missing ids and slugs.
func respondNotFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
}

// decodeJSON reads a JSON request body into dst, rejecting unknown
// fields and oversized payloads.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Validationf("body", "Invalid JSON: %v", err)
	}
	return nil
}
