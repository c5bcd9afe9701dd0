package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate into domain errors
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique constraint violation
func IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

// IsNoRows reports whether a single-row query matched nothing
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// ViolatedConstraint returns the constraint named by a Postgres error, or "".
// Inline REFERENCES clauses get the default name {table}_{column}_fkey.
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
