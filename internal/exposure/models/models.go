package models

import (
	"time"

	casemodels "contacttrace/internal/cases/models"
)

// Edge asserts that DonorID may have exposed RecipientID. The optional fields
// are opaque to this system; certainty in particular is accepted as given.
type Edge struct {
	DonorID      string   `json:"donor_id" validate:"required"`
	RecipientID  string   `json:"recipient_id" validate:"required"`
	TotalMinutes *int     `json:"total_minutes,omitempty"`
	Close        *bool    `json:"close,omitempty"`
	Certainty    *float64 `json:"certainty,omitempty"`
}

// CaseRecord is the durable lifecycle row of a case.
type CaseRecord struct {
	ID              string     `json:"id" validate:"required"`
	ExposureTime    *time.Time `json:"exposure_time,omitempty"`
	SymptomaticTime time.Time  `json:"symptomatic_time" validate:"required"`
	ResolvedTime    *time.Time `json:"resolved_time,omitempty"`
}

// Client is a reporting client registration.
type Client struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Interaction is a relational interaction row.
type Interaction struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Geo       string    `json:"geo"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerLog is the symptom log of one resolved owner.
type OwnerLog struct {
	OwnerID  string                    `json:"owner_id"`
	Symptoms []casemodels.SymptomEntry `json:"symptoms"`
}
