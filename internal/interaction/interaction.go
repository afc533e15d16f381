// Package interaction binds ephemeral proximity-interaction ids to the case
// or symptom owner they belong to, for a bounded time.
//
// Two backends implement Linker: Redis keys with an expiry, and relational
// rows filtered by age. Both report an unlinked id and an expired link the
// same way, as absent, so nothing reveals whether an id was ever linked.
package interaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	casesstore "contacttrace/internal/cases/store"
	"contacttrace/internal/cases/timebucket"
	"contacttrace/pkg/platform/sentinel"
	pstrings "contacttrace/pkg/platform/strings"
)

// LinkTTL is how long a link stays resolvable after it is (re)created.
const LinkTTL = 7 * 24 * time.Hour

// Backend names accepted by configuration.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Linker is implemented by every interaction backend.
type Linker interface {
	// Link binds every id to ownerID and resets its expiry. Re-linking an id
	// overwrites the previous owner.
	Link(ctx context.Context, interactionIDs []string, ownerID string) error

	// ResolveOwner returns the owner of one id. ok is false when the id was
	// never linked or its link expired.
	ResolveOwner(ctx context.Context, interactionID string) (ownerID string, ok bool, err error)

	// ResolveOwners returns the distinct owners of the linked ids in one
	// batched read. Absent ids are skipped. Order is unspecified.
	ResolveOwners(ctx context.Context, interactionIDs []string) ([]string, error)
}

// GeoLinker is implemented by backends that record the region a link was
// made in.
type GeoLinker interface {
	LinkInGeo(ctx context.Context, geo string, interactionIDs []string, ownerID string) error
}

// Interaction ids are stored as bare keys next to symptom logs and hour
// buckets, so they must stay out of those namespaces.
var reservedPrefixes = []string{casesstore.CaseKeyPrefix, timebucket.Prefix}

// Reserved reports whether id falls in the key namespace of symptom logs or
// hour buckets.
func Reserved(id string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// NormalizeIDs trims ids and drops blanks and repeats. An id in a reserved
// namespace fails the whole batch with sentinel.ErrInvalidInput.
func NormalizeIDs(interactionIDs []string) ([]string, error) {
	ids := pstrings.DedupeAndTrim(interactionIDs)
	for _, id := range ids {
		if Reserved(id) {
			return nil, fmt.Errorf("interaction id %q uses a reserved prefix: %w", id, sentinel.ErrInvalidInput)
		}
	}
	return ids, nil
}

// Purger is implemented by backends whose expired links must be removed
// explicitly rather than by the store itself.
type Purger interface {
	ClearOldInteractions(ctx context.Context) (int64, error)
}
