package fanout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacttrace/pkg/platform/sentinel"
)

// gauge tracks the highest number of concurrent calls seen.
type gauge struct {
	mu      sync.Mutex
	current int
	max     int
}

func (g *gauge) enter() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	if g.current > g.max {
		g.max = g.current
	}
}

func (g *gauge) leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current--
}

func TestRun(t *testing.T) {
	t.Run("runs every call once", func(t *testing.T) {
		var calls [25]atomic.Int32
		err := Run(context.Background(), 4, len(calls), func(_ context.Context, i int) error {
			calls[i].Add(1)
			return nil
		})
		require.NoError(t, err)
		for i := range calls {
			assert.Equal(t, int32(1), calls[i].Load(), "call %d", i)
		}
	})

	t.Run("never exceeds the limit", func(t *testing.T) {
		var g gauge
		err := Run(context.Background(), 10, 50, func(_ context.Context, _ int) error {
			g.enter()
			defer g.leave()
			time.Sleep(2 * time.Millisecond)
			return nil
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, g.max, 10)
		assert.Greater(t, g.max, 1, "calls should overlap")
	})

	t.Run("non-positive limit uses the default", func(t *testing.T) {
		var g gauge
		err := Run(context.Background(), 0, 40, func(_ context.Context, _ int) error {
			g.enter()
			defer g.leave()
			time.Sleep(time.Millisecond)
			return nil
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, g.max, DefaultLimit)
	})

	t.Run("zero calls is a no-op", func(t *testing.T) {
		err := Run(context.Background(), 3, 0, func(_ context.Context, _ int) error {
			t.Fatal("fn must not be called")
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("first failure stops admission and is reported as partial", func(t *testing.T) {
		boom := errors.New("boom")
		var started atomic.Int32
		err := Run(context.Background(), 1, 20, func(_ context.Context, i int) error {
			started.Add(1)
			if i == 2 {
				return boom
			}
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrPartialBatch)
		assert.ErrorIs(t, err, boom)
		// with one slot the failing call is the last admitted, or the one after
		assert.LessOrEqual(t, started.Load(), int32(4))
	})

	t.Run("admitted calls are not cancelled by a sibling failure", func(t *testing.T) {
		boom := errors.New("boom")
		var completed atomic.Int32
		var others sync.WaitGroup
		others.Add(2)
		release := make(chan struct{})
		err := Run(context.Background(), 3, 3, func(ctx context.Context, i int) error {
			if i == 0 {
				others.Wait()
				close(release)
				return boom
			}
			others.Done()
			<-release
			time.Sleep(5 * time.Millisecond)
			if ctx.Err() == nil {
				completed.Add(1)
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, int32(2), completed.Load())
	})

	t.Run("cancelled parent stops admission", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var started atomic.Int32
		err := Run(ctx, 2, 5, func(_ context.Context, _ int) error {
			started.Add(1)
			return nil
		})
		assert.ErrorIs(t, err, sentinel.ErrPartialBatch)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, started.Load())
	})
}
