package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the query surface shared by *pgxpool.Pool, pgx.Tx and the
// pgxmock pool. Repositories are constructed over it so the same code runs
// inside and outside a transaction.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxDatabase adds transaction start to Database. The lifecycle service uses
// it to run multi-step transitions atomically.
type TxDatabase interface {
	Database
	Begin(ctx context.Context) (pgx.Tx, error)
}
