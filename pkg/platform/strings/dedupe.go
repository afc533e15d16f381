// Package strings holds helpers for the opaque id lists carried by requests.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each id, drops blanks and keeps the first occurrence of
// each remaining value. A nil or empty input is returned as is.
func DedupeAndTrim(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Distinct keeps the first occurrence of each value, unchanged. The result is
// never nil.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
