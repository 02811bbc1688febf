package database

import (
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

// NewMockPool returns a pgxmock pool that satisfies Migrator (and so DBTX).
// SQL expectations are matched as regular expressions. Call
// ExpectationsWereMet at the end of each test.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
}
