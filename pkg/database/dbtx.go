package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface repositories need. *pgxpool.Pool and pgxmock
// pools both satisfy it; each call acquires a pooled connection and releases
// it before returning (or on rows.Close for Query).
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrator is a DBTX that can also open transactions.
type Migrator interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
