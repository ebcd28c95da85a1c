package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/camnote/internal/pkg/dberrors"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so a
// repository can run on the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// noSuchRow reports whether a lookup by key matched nothing. A key Postgres
// cannot cast to the column type (a malformed UUID) matches nothing too.
func noSuchRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || dberrors.IsInvalidTextRepresentation(err)
}
