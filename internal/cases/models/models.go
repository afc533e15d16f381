package models

import "time"

// SymptomEntry is one immutable element of a case's symptom log.
type SymptomEntry struct {
	At    time.Time `json:"ts"`
	Label string    `json:"symptom"`
}

// BatchOutcome reports whether a pipelined batch was accepted as a whole.
// A pipeline has no atomicity, so a rejected batch may still have applied
// some of its commands; nothing is inferred per item.
type BatchOutcome int

const (
	BatchRejected BatchOutcome = iota
	BatchAccepted
)

func (o BatchOutcome) String() string {
	switch o {
	case BatchAccepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// Accepted reports whether every command of the batch succeeded.
func (o BatchOutcome) Accepted() bool {
	return o == BatchAccepted
}

// ReportResult is returned by a symptom report. At is the instant used for the
// log entries and the bucket, so a caller can reconcile after a rejection.
type ReportResult struct {
	At      time.Time
	Outcome BatchOutcome
}

// Success mirrors Outcome.Accepted for response payloads.
func (r ReportResult) Success() bool {
	return r.Outcome.Accepted()
}
