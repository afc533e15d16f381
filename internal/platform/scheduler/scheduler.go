package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of periodic work. The returned count is logged.
type Job func(ctx context.Context) (int64, error)

// Scheduler runs named jobs on cron schedules in UTC.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// New creates a stopped scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Add registers job under name on spec (standard five-field cron or a
// descriptor such as @hourly). A run that is still going when the next one
// is due makes the next one skip.
func (s *Scheduler) Add(name, spec string, job Job) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		start := time.Now()
		n, err := job(s.ctx)
		if err != nil {
			s.logger.ErrorContext(s.ctx, "scheduled job failed", "job", name, "error", err)
			return
		}
		s.logger.InfoContext(s.ctx, "scheduled job finished",
			"job", name,
			"count", n,
			"duration", time.Since(start),
		)
	}))
	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish and cancels their context.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
}
