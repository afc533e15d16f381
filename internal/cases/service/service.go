package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contacttrace/internal/cases/models"
	"contacttrace/pkg/platform/sentinel"
)

// Index is the hour-bucket case index.
type Index interface {
	Report(ctx context.Context, caseID string, labels []string, at time.Time) (models.BatchOutcome, error)
	CasesSince(ctx context.Context, since, now time.Time) ([]string, error)
}

// Log is the per-case symptom log.
type Log interface {
	Append(ctx context.Context, caseID string, entries ...models.SymptomEntry) (models.BatchOutcome, error)
	Read(ctx context.Context, caseID string) ([]models.SymptomEntry, error)
}

// Clock returns the current instant.
type Clock func() time.Time

// DefaultMaxLookback caps how far back ListCasesSince reads.
const DefaultMaxLookback = 30 * 24 * time.Hour

type Service struct {
	index       Index
	log         Log
	clock       Clock
	maxLookback time.Duration
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMaxLookback overrides DefaultMaxLookback.
func WithMaxLookback(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.maxLookback = window
		}
	}
}

func New(index Index, log Log, opts ...Option) (*Service, error) {
	if index == nil {
		return nil, fmt.Errorf("case index is required")
	}
	if log == nil {
		return nil, fmt.Errorf("symptom log is required")
	}

	svc := &Service{
		index:       index,
		log:         log,
		clock:       time.Now,
		maxLookback: DefaultMaxLookback,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ReportSymptoms logs labels for caseID at the current instant and indexes
// the case under that hour. The returned result always carries the instant
// used. A rejected batch is returned together with an error wrapping
// sentinel.ErrPartialBatch, because either write may have landed.
func (s *Service) ReportSymptoms(ctx context.Context, caseID string, labels []string) (models.ReportResult, error) {
	at := s.clock().UTC()
	result := models.ReportResult{At: at, Outcome: models.BatchRejected}

	if caseID == "" {
		return result, fmt.Errorf("case id is required: %w", sentinel.ErrInvalidInput)
	}

	outcome, err := s.index.Report(ctx, caseID, labels, at)
	result.Outcome = outcome
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidInput) {
			return result, err
		}
		s.logger.WarnContext(ctx, "symptom report batch rejected",
			"symptom_count", len(labels),
			"error", err,
		)
		return result, fmt.Errorf("%w: %w", sentinel.ErrPartialBatch, err)
	}

	s.logger.DebugContext(ctx, "symptoms reported",
		"symptom_count", len(labels),
		"bucket_hour", at.Truncate(time.Hour),
	)
	return result, nil
}

// ListCasesSince returns the cases that reported in the whole hours between
// since and now. The current partial hour is not covered. A since further
// back than the max lookback fails with sentinel.ErrInvalidInput.
func (s *Service) ListCasesSince(ctx context.Context, since time.Time) ([]string, error) {
	now := s.clock()
	if now.Sub(since) > s.maxLookback {
		return nil, fmt.Errorf("since %s is more than %s ago: %w", since.UTC().Format(time.RFC3339), s.maxLookback, sentinel.ErrInvalidInput)
	}
	ids, err := s.index.CasesSince(ctx, since, now)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetSymptoms returns the symptom log of caseID in report order.
func (s *Service) GetSymptoms(ctx context.Context, caseID string) ([]models.SymptomEntry, error) {
	if caseID == "" {
		return nil, fmt.Errorf("case id is required: %w", sentinel.ErrInvalidInput)
	}
	return s.log.Read(ctx, caseID)
}

// AppendSymptoms appends labels to the log of ownerID without indexing it in
// any hour bucket.
func (s *Service) AppendSymptoms(ctx context.Context, ownerID string, labels []string) (models.BatchOutcome, error) {
	if ownerID == "" {
		return models.BatchRejected, fmt.Errorf("symptom owner id is required: %w", sentinel.ErrInvalidInput)
	}
	at := s.clock().UTC()
	entries := make([]models.SymptomEntry, len(labels))
	for i, label := range labels {
		entries[i] = models.SymptomEntry{At: at, Label: label}
	}
	return s.log.Append(ctx, ownerID, entries...)
}
