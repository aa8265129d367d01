// Package postgres implements the repository contracts on PostgreSQL,
// using hand-written SQL over database/sql with the pgx stdlib driver.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"stratium/internal/errs"
)

// uniqueViolation is the PostgreSQL error code for unique-constraint
// violations (duplicate slug, email, or user/course enrollment pair).
const uniqueViolation = "23505"

// conflictOr translates a unique violation into errs.ErrConflict, wrapping
// anything else with the given operation name.
func conflictOr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, errs.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// jsonbValue marshals v for a jsonb column.
func jsonbValue(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return data, nil
}

// jsonbScan unmarshals a jsonb column into dst. A NULL column leaves dst
// untouched.
func jsonbScan(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal jsonb: %w", err)
	}
	return nil
}
