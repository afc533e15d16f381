// Package relational is the narrow relational-store capability the stores are
// written against: prepared statements, parameterised exec and query, and
// array parameters. Two adapters exist, database/sql over lib/pq and pgxpool.
package relational

import (
	"context"
	"fmt"

	"contacttrace/internal/platform/config"
)

// Driver names accepted by configuration.
const (
	DriverPQ  = "pq"
	DriverPGX = "pgx"
)

// Rows iterates a query result. Close must be called on every exit path.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Statement is a prepared statement, safe for concurrent use.
type Statement interface {
	Exec(ctx context.Context, args ...any) (int64, error)
	Query(ctx context.Context, args ...any) (Rows, error)
	Close() error
}

// DB is a pooled relational store. Slice arguments of strings are sent as
// SQL arrays by every adapter.
type DB interface {
	Prepare(ctx context.Context, query string) (Statement, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects with the driver named in cfg. The returned pool is shared by
// every store and must be closed at shutdown.
func Open(ctx context.Context, cfg config.PostgresConfig) (DB, error) {
	switch cfg.Driver {
	case DriverPQ, "":
		return OpenSQL(ctx, cfg)
	case DriverPGX:
		return OpenPool(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown postgres driver %q", cfg.Driver)
	}
}
