package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"contacttrace/internal/cases/models"
	"contacttrace/internal/cases/timebucket"
	"contacttrace/pkg/platform/sentinel"
)

// CaseIndex records which cases reported in which UTC hour, so "cases since T"
// only touches the buckets in the window.
type CaseIndex struct {
	client redis.UniversalClient
}

// NewCaseIndex constructs a Redis-backed hour-bucket index.
func NewCaseIndex(client redis.UniversalClient) *CaseIndex {
	return &CaseIndex{client: client}
}

// Report appends labels to the case log and adds caseID to the bucket of at,
// as one pipeline. The pipeline is not a transaction: on rejection either
// write may already have been applied.
func (x *CaseIndex) Report(ctx context.Context, caseID string, labels []string, at time.Time) (models.BatchOutcome, error) {
	if caseID == "" {
		return models.BatchRejected, fmt.Errorf("case id is required: %w", sentinel.ErrInvalidInput)
	}

	start := time.Now()
	defer observe("report", start)

	pipe := x.client.Pipeline()
	if len(labels) > 0 {
		pipe.RPush(ctx, CaseKey(caseID), encodeEntries(at, labels)...)
	}
	pipe.SAdd(ctx, timebucket.Key(at), caseID)

	if _, err := pipe.Exec(ctx); err != nil {
		countOutcome("report", models.BatchRejected)
		return models.BatchRejected, fmt.Errorf("report symptoms: %w: %w", sentinel.ErrStoreFailure, err)
	}
	countOutcome("report", models.BatchAccepted)
	return models.BatchAccepted, nil
}

// CasesSince returns the distinct case ids found in every whole-hour bucket
// between since and now, sorted. Buckets never written read as empty.
func (x *CaseIndex) CasesSince(ctx context.Context, since, now time.Time) ([]string, error) {
	keys := timebucket.Since(since, now)
	if len(keys) == 0 {
		return []string{}, nil
	}

	start := time.Now()
	defer observe("cases_since", start)

	pipe := x.client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.SMembers(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("list cases since %s: %w: %w", since.Format(time.RFC3339), sentinel.ErrStoreFailure, err)
	}

	seen := make(map[string]struct{})
	for _, cmd := range cmds {
		for _, id := range cmd.Val() {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
