package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"contacttrace/internal/platform/config"
)

// SQL adapts a database/sql pool using the lib/pq driver.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps an existing pool. The caller keeps ownership of db's lifecycle
// unless it closes the adapter.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// OpenSQL opens and pings a lib/pq pool sized from cfg.
func OpenSQL(ctx context.Context, cfg config.PostgresConfig) (*SQL, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Prepare(ctx context.Context, query string) (Statement, error) {
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return sqlStatement{stmt: stmt}, nil
}

func (s *SQL) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, pqArgs(args)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQL) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, pqArgs(args)...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	return s.db.Close()
}

type sqlStatement struct {
	stmt *sql.Stmt
}

func (s sqlStatement) Exec(ctx context.Context, args ...any) (int64, error) {
	res, err := s.stmt.ExecContext(ctx, pqArgs(args)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s sqlStatement) Query(ctx context.Context, args ...any) (Rows, error) {
	rows, err := s.stmt.QueryContext(ctx, pqArgs(args)...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (s sqlStatement) Close() error {
	return s.stmt.Close()
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r sqlRows) Err() error             { return r.rows.Err() }
func (r sqlRows) Close()                 { _ = r.rows.Close() }

// pqArgs turns slice arguments into lib/pq array values; database/sql has no
// native array support.
func pqArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case []string:
			out[i] = pq.Array(v)
		case []int64:
			out[i] = pq.Array(v)
		default:
			out[i] = a
		}
	}
	return out
}
