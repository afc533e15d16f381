// Package timebucket maps report instants onto hour-granularity index keys.
//
// A bucket key has the form time:<year>:<day-of-year>:<hour>, with the day of
// year zero-padded to three digits and the hour to two, all in UTC. Existing
// stored data uses this exact layout, so it must not change.
package timebucket

import (
	"fmt"
	"time"
)

// Prefix is the key namespace of hour buckets.
const Prefix = "time:"

// Key returns the bucket key for the UTC hour containing t.
func Key(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%04d:%03d:%02d", Prefix, t.Year(), t.YearDay(), t.Hour())
}

// Since returns one bucket key per whole hour elapsed between since and now,
// starting with the bucket containing since.
//
// The count is the number of whole hours elapsed, so the bucket of the current
// partial hour is not included, and a since less than one hour before now
// yields no keys. Callers that need the most recent reports must query again
// once the hour has elapsed.
func Since(since, now time.Time) []string {
	hours := int64(now.Sub(since) / time.Hour)
	if hours <= 0 {
		return nil
	}

	keys := make([]string, 0, hours)
	for i := int64(0); i < hours; i++ {
		keys = append(keys, Key(since.Add(time.Duration(i)*time.Hour)))
	}
	return keys
}
