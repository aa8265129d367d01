// Package errs defines the error taxonomy shared by the repository backends
// and the HTTP layer. Handlers map these onto status codes with errors.Is/As.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound signals that a referenced id or slug does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a unique-constraint violation, e.g. a duplicate
	// slug or a second enrollment for the same user and course.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized signals a request with no authenticated identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden signals an authenticated identity without admin rights.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries field-level messages for malformed input.
// It is user-correctable and maps to HTTP 400.
type ValidationError struct {
	Fields map[string]string
}

// NewValidation returns an empty ValidationError ready to collect messages.
func NewValidation() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Err returns the error itself when any field failed, nil otherwise.
// Returning nil as a plain error avoids the typed-nil interface trap.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error joins the field messages in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// Validationf builds a single-field ValidationError.
func Validationf(field, format string, args ...any) *ValidationError {
	v := NewValidation()
	v.Add(field, fmt.Sprintf(format, args...))
	return v
}
