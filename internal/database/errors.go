package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Postgres error codes for constraint violations.
// Both drivers are linked into the binary: lib/pq in production,
// the pgx stdlib driver in integration tests.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func sqlStateOf(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a duplicate-key constraint error.
func IsUniqueViolation(err error) bool {
	return sqlStateOf(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a referential-integrity error.
func IsForeignKeyViolation(err error) bool {
	return sqlStateOf(err) == codeForeignKeyViolation
}
