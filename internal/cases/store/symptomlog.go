package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"contacttrace/internal/cases/models"
	"contacttrace/pkg/platform/sentinel"
)

// SymptomLog is the per-case append-only list of (timestamp, label) pairs,
// kept in Redis lists under case:<id>.
type SymptomLog struct {
	client redis.UniversalClient
}

// NewSymptomLog constructs a Redis-backed symptom log.
func NewSymptomLog(client redis.UniversalClient) *SymptomLog {
	return &SymptomLog{client: client}
}

// Append pushes entries onto the log of caseID in the given order, in one
// round trip. An empty entries list is accepted without touching the store.
func (l *SymptomLog) Append(ctx context.Context, caseID string, entries ...models.SymptomEntry) (models.BatchOutcome, error) {
	if caseID == "" {
		return models.BatchRejected, fmt.Errorf("case id is required: %w", sentinel.ErrInvalidInput)
	}
	if len(entries) == 0 {
		return models.BatchAccepted, nil
	}

	start := time.Now()
	defer observe("append", start)

	values := make([]any, len(entries))
	for i, e := range entries {
		values[i] = EncodeEntry(e.At, e.Label)
	}
	if err := l.client.RPush(ctx, CaseKey(caseID), values...).Err(); err != nil {
		countOutcome("append", models.BatchRejected)
		return models.BatchRejected, fmt.Errorf("append symptoms: %w: %w", sentinel.ErrStoreFailure, err)
	}
	countOutcome("append", models.BatchAccepted)
	return models.BatchAccepted, nil
}

// Read returns the whole log of caseID in append order. An unknown case has an
// empty log.
func (l *SymptomLog) Read(ctx context.Context, caseID string) ([]models.SymptomEntry, error) {
	start := time.Now()
	defer observe("read", start)

	raw, err := l.client.LRange(ctx, CaseKey(caseID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read symptoms: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return decodeEntries(raw)
}

// ReadMany returns the log of each id, index-aligned with caseIDs, using a
// single pipeline with one range read per id.
func (l *SymptomLog) ReadMany(ctx context.Context, caseIDs []string) ([][]models.SymptomEntry, error) {
	if len(caseIDs) == 0 {
		return nil, nil
	}

	start := time.Now()
	defer observe("read_many", start)

	pipe := l.client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(caseIDs))
	for i, id := range caseIDs {
		cmds[i] = pipe.LRange(ctx, CaseKey(id), 0, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("read symptom logs: %w: %w", sentinel.ErrStoreFailure, err)
	}

	logs := make([][]models.SymptomEntry, len(caseIDs))
	for i, cmd := range cmds {
		entries, err := decodeEntries(cmd.Val())
		if err != nil {
			return nil, fmt.Errorf("symptom log of %s: %w", caseIDs[i], err)
		}
		logs[i] = entries
	}
	return logs, nil
}
