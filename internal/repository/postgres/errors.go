package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/utafrali/bookborrower/pkg/errors"
)

const (
	foreignKeyViolation = "23503"
	checkViolation      = "23514"

	// Class 22 covers bad values: out-of-range integers (22003), NUL bytes
	// in text (22021), unparseable input (22P02) and the like.
	dataExceptionClass = "22"
)

// mapWriteError translates constraint violations and rejected values from an
// insert into application errors. refs maps a foreign-key column to the value written so
// the error can name it. Other errors are wrapped with op.
func mapWriteError(err error, op, resource string, refs map[string]any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			field := constraintColumn(pgErr)
			return apperrors.InvalidReference(resource, field, refs[field])
		case checkViolation:
			return apperrors.InvalidInput(fmt.Sprintf("%s violates constraint %s", resource, pgErr.ConstraintName))
		}
		if strings.HasPrefix(pgErr.Code, dataExceptionClass) {
			return apperrors.InvalidInput(fmt.Sprintf("%s has an invalid value: %s", resource, pgErr.Message))
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// constraintColumn recovers the column from Postgres' default foreign-key
// constraint name "<table>_<column>_fkey".
func constraintColumn(pgErr *pgconn.PgError) string {
	name := strings.TrimSuffix(pgErr.ConstraintName, "_fkey")
	return strings.TrimPrefix(name, pgErr.TableName+"_")
}

// collect drains rows with scan. The result is never nil.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
}
