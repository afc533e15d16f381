package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"contacttrace/internal/interaction"
	"contacttrace/pkg/platform/sentinel"
	pstrings "contacttrace/pkg/platform/strings"
)

var (
	resolveDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contacttrace_interaction_resolve_duration_ms",
		Help:    "Latency of batched interaction owner lookups in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
)

// Redis links interaction ids as plain keys holding the owner id, each with
// an expiry. Keys are the interaction ids themselves, without a prefix, so
// existing data stays readable.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisOption configures a Redis linker.
type RedisOption func(*Redis)

// WithRedisTTL overrides interaction.LinkTTL.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis constructs a Redis-backed interaction linker.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		ttl:    interaction.LinkTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Link issues SET and EXPIRE for every id in a single pipeline. Ids are
// trimmed first, and an id in a reserved namespace rejects the batch before
// anything is written.
func (r *Redis) Link(ctx context.Context, interactionIDs []string, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id is required: %w", sentinel.ErrInvalidInput)
	}
	ids, err := interaction.NormalizeIDs(interactionIDs)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, id := range ids {
		pipe.Set(ctx, id, ownerID, 0)
		pipe.Expire(ctx, id, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("link interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return nil
}

// ResolveOwner reads one link.
func (r *Redis) ResolveOwner(ctx context.Context, interactionID string) (string, bool, error) {
	interactionID = strings.TrimSpace(interactionID)
	if interactionID == "" || interaction.Reserved(interactionID) {
		return "", false, nil
	}
	owner, err := r.client.Get(ctx, interactionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolve interaction: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return owner, true, nil
}

// ResolveOwners reads every link in one pipeline and collapses them to the
// distinct owners, in first-seen order.
func (r *Redis) ResolveOwners(ctx context.Context, interactionIDs []string) ([]string, error) {
	start := time.Now()
	defer func() {
		resolveDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	ids := pstrings.DedupeAndTrim(interactionIDs)
	if len(ids) == 0 {
		return []string{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(ids))
	for _, id := range ids {
		// symptom logs and hour buckets are never links
		if interaction.Reserved(id) {
			continue
		}
		cmds = append(cmds, pipe.Get(ctx, id))
	}
	if len(cmds) == 0 {
		return []string{}, nil
	}
	// Exec reports the first failed command; a missing key fails with
	// redis.Nil, which only means that link is absent.
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("resolve interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}

	seen := make(map[string]struct{}, len(cmds))
	owners := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		owner, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve interactions: %w: %w", sentinel.ErrStoreFailure, err)
		}
		if _, dup := seen[owner]; dup {
			continue
		}
		seen[owner] = struct{}{}
		owners = append(owners, owner)
	}
	return owners, nil
}
