// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a unique-constraint violation from
// either supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// mapUserConstraintError translates a driver-level unique violation on the
// users table into the matching sentinel error. Both drivers mention the
// conflicting column in their error output (pg via the constraint name,
// sqlite via "users.email"); anything else is attributed to the username,
// which is the only duplicate the API reports distinctly on registration.
func mapUserConstraintError(err error) error {
	if !isUniqueViolation(err) {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "email") {
		return ErrEmailAlreadyExists
	}

	if strings.Contains(err.Error(), "email") {
		return ErrEmailAlreadyExists
	}

	return ErrUsernameAlreadyExists
}
