package relational

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"contacttrace/internal/platform/config"
)

// Pool adapts a pgx connection pool. pgx prepares and caches statements per
// connection by itself, so Prepare only pins the SQL text.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool wraps an existing pgx pool.
func NewPool(pool *pgxpool.Pool) *Pool {
	return &Pool{pool: pool}
}

// OpenPool opens and pings a pgx pool sized from cfg.
func OpenPool(ctx context.Context, cfg config.PostgresConfig) (*Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres URL: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	return &Pool{pool: pool}, nil
}

func (p *Pool) Prepare(_ context.Context, query string) (Statement, error) {
	return poolStatement{pool: p.pool, query: query}, nil
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Pool) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return p.pool.Query(ctx, query, args...)
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	p.pool.Close()
	return nil
}

type poolStatement struct {
	pool  *pgxpool.Pool
	query string
}

func (s poolStatement) Exec(ctx context.Context, args ...any) (int64, error) {
	tag, err := s.pool.Exec(ctx, s.query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s poolStatement) Query(ctx context.Context, args ...any) (Rows, error) {
	return s.pool.Query(ctx, s.query, args...)
}

func (s poolStatement) Close() error {
	return nil
}
