package store

import (
	"encoding/json"
	"fmt"
	"time"

	"contacttrace/internal/cases/models"
	"contacttrace/pkg/platform/sentinel"
)

// CaseKeyPrefix namespaces symptom logs. Stored data depends on it.
const CaseKeyPrefix = "case:"

// CaseKey returns the list key holding the symptom log of caseID.
func CaseKey(caseID string) string {
	return CaseKeyPrefix + caseID
}

// EncodeEntry renders one log element as a JSON pair of an RFC3339 UTC
// timestamp (with nanoseconds when present) and the label.
func EncodeEntry(at time.Time, label string) string {
	pair := [2]string{at.UTC().Format(time.RFC3339Nano), label}
	// Marshalling two strings cannot fail.
	b, _ := json.Marshal(pair)
	return string(b)
}

// DecodeEntry parses a log element written by EncodeEntry. A malformed element
// is reported as sentinel.ErrSerialization, never skipped.
func DecodeEntry(raw string) (models.SymptomEntry, error) {
	var pair []string
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return models.SymptomEntry{}, fmt.Errorf("decode symptom entry %q: %w: %w", raw, sentinel.ErrSerialization, err)
	}
	if len(pair) != 2 {
		return models.SymptomEntry{}, fmt.Errorf("decode symptom entry %q: %w: want 2 fields, got %d", raw, sentinel.ErrSerialization, len(pair))
	}
	at, err := time.Parse(time.RFC3339Nano, pair[0])
	if err != nil {
		return models.SymptomEntry{}, fmt.Errorf("parse symptom timestamp %q: %w: %w", pair[0], sentinel.ErrSerialization, err)
	}
	return models.SymptomEntry{At: at.UTC(), Label: pair[1]}, nil
}

func encodeEntries(at time.Time, labels []string) []any {
	values := make([]any, len(labels))
	for i, label := range labels {
		values[i] = EncodeEntry(at, label)
	}
	return values
}

func decodeEntries(raw []string) ([]models.SymptomEntry, error) {
	entries := make([]models.SymptomEntry, 0, len(raw))
	for _, r := range raw {
		entry, err := DecodeEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
