package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"contacttrace/internal/platform/relational"
)

type call struct {
	query string
	args  []any
}

// fakeDB records statements and tracks how many run at once.
type fakeDB struct {
	mu          sync.Mutex
	calls       []call
	prepared    []string
	inFlight    int
	maxInFlight int

	delay      time.Duration
	prepareErr error
	execErr    func(query string, args []any) error
	rows       func(query string, args []any) ([][]any, error)
	affected   int64
}

var _ relational.DB = (*fakeDB)(nil)

func (f *fakeDB) Prepare(_ context.Context, query string) (relational.Statement, error) {
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	f.mu.Lock()
	f.prepared = append(f.prepared, query)
	f.mu.Unlock()
	return fakeStmt{db: f, query: query}, nil
}

func (f *fakeDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	f.enter(query, args)
	defer f.leave()
	if f.execErr != nil {
		if err := f.execErr(query, args); err != nil {
			return 0, err
		}
	}
	return f.affected, nil
}

func (f *fakeDB) Query(ctx context.Context, query string, args ...any) (relational.Rows, error) {
	f.enter(query, args)
	defer f.leave()
	if f.rows == nil {
		return &fakeRows{}, nil
	}
	data, err := f.rows(query, args)
	if err != nil {
		return nil, err
	}
	return &fakeRows{data: data}, nil
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }

func (f *fakeDB) enter(query string, args []any) {
	f.mu.Lock()
	f.calls = append(f.calls, call{query: query, args: args})
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
}

func (f *fakeDB) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

// callsTo returns the recorded calls whose SQL contains fragment.
func (f *fakeDB) callsTo(fragment string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if strings.Contains(c.query, fragment) {
			out = append(out, c)
		}
	}
	return out
}

type fakeStmt struct {
	db    *fakeDB
	query string
}

func (s fakeStmt) Exec(ctx context.Context, args ...any) (int64, error) {
	return s.db.Exec(ctx, s.query, args...)
}

func (s fakeStmt) Query(ctx context.Context, args ...any) (relational.Rows, error) {
	return s.db.Query(ctx, s.query, args...)
}

func (s fakeStmt) Close() error { return nil }

type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(row) != len(dest) {
		return fmt.Errorf("scan: want %d columns, got %d", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			v, ok := row[i].(string)
			if !ok {
				return fmt.Errorf("scan column %d: not a string", i)
			}
			*p = v
		case *time.Time:
			v, ok := row[i].(time.Time)
			if !ok {
				return fmt.Errorf("scan column %d: not a time", i)
			}
			*p = v
		default:
			return fmt.Errorf("scan column %d: unsupported %T", i, d)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}
