// Package postgres owns the connection to the relational store. Nothing else
// in the codebase creates connections.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/conexion-ipp/backend/config"
)

// Querier is the query surface repositories run against. It is implemented by
// *pgxpool.Pool, *pgxpool.Conn and pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxPool is a minimal abstraction over a Postgres connection pool, implemented
// by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	Querier
	Ping(ctx context.Context) error
	Close()
}

// DB wraps the pool to satisfy repository constructors and allow testing.
type DB struct{ Pool PgxPool }

// Session returns the storage session bound to the request context, falling
// back to the pool when no session was acquired.
func (d *DB) Session(ctx context.Context) Querier {
	if q, ok := ctx.Value(sessionKey{}).(Querier); ok {
		return q
	}
	return d.Pool
}

// Close closes the underlying pool.
func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}

// DSN builds a keyword/value connection string from the database config.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}

// IsUniqueViolation reports whether the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
