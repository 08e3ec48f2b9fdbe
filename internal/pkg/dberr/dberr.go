// Package dberr maps driver level failures onto the application's error
// taxonomy, so callers can tell an unreachable store from a bad request.
package dberr

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Translate wraps connection failures into an errs.StoreUnavailableError and
// returns any other error unchanged.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectionError(err) {
		return errs.NewStoreUnavailableError(op, err)
	}
	return err
}

// IsConnectionError reports whether err means the database could not be
// reached or the connection broke.
func IsConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connectErr):
		return true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return true
	default:
		return false
	}
}
