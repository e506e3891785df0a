package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// maxPositionRetries bounds the retry loop on position-unique collisions.
// A collision only happens when two writers race the same ordering scope, so
// a couple of attempts is plenty.
const maxPositionRetries = 3

// ErrPositionContention is returned when a position could not be claimed
// after retrying; the caller surfaces it as a generic persistence failure.
var ErrPositionContention = errors.New("could not claim a unique position after retries")

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation (SQLSTATE 23503), e.g. inserting against a missing parent.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// ErrParentMissing is returned when an insert references a parent row that
// does not exist.
var ErrParentMissing = errors.New("referenced parent row does not exist")
