package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	casemodels "contacttrace/internal/cases/models"
	"contacttrace/internal/exposure/models"
	"contacttrace/internal/interaction"
	"contacttrace/internal/platform/relational"
	"contacttrace/pkg/platform/fanout"
	"contacttrace/pkg/platform/sentinel"
	pstrings "contacttrace/pkg/platform/strings"
)

const (
	insertExposureSQL = `
		INSERT INTO exposures (donor_id, recipient_id, total_minutes, close, certainty)
		VALUES ($1, $2, $3, $4, $5)
	`
	insertSymptomSQL = `
		INSERT INTO symptoms (owner_id, reported_at, label)
		VALUES ($1, $2, $3)
	`
	selectSymptomsSQL = `
		SELECT reported_at, label
		FROM symptoms
		WHERE owner_id = $1
		ORDER BY reported_at, id
	`
	insertCaseSQL = `
		INSERT INTO cases (id, exposure_time, symptomatic_time, resolved_time)
		VALUES ($1, $2, $3, $4)
	`
	insertClientSQL = `
		INSERT INTO clients (id, created_at)
		VALUES ($1, $2)
	`
	upsertInteractionsSQL = `
		INSERT INTO interactions (id, owner_id, geo, created_at)
		SELECT unnest($1::text[]), $2, $3, $4
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			geo = EXCLUDED.geo,
			created_at = EXCLUDED.created_at
	`
	confirmInteractionsSQL = `
		SELECT DISTINCT owner_id
		FROM interactions
		WHERE id = ANY($1::text[]) AND created_at > $2
	`
	interactionsInGeoSQL = `
		SELECT id, owner_id, geo, created_at
		FROM interactions
		WHERE created_at > $1 AND geo = $2 AND id = ANY($3::text[])
	`
	clearOldInteractionsSQL = `
		DELETE FROM interactions
		WHERE created_at <= $1
	`
)

// PostgresStore persists durable records: exposure edges, cases, clients,
// relational symptom rows and relational interaction links. Multi-row writes
// run one statement per row, with at most fanoutLimit in flight, and stop at
// the first failure without undoing rows already written.
type PostgresStore struct {
	db          relational.DB
	fanoutLimit int
	ttl         time.Duration
	clock       func() time.Time
}

// Option configures a PostgresStore.
type Option func(*PostgresStore)

// WithFanoutLimit sets the in-flight statement ceiling.
func WithFanoutLimit(limit int) Option {
	return func(s *PostgresStore) {
		if limit > 0 {
			s.fanoutLimit = limit
		}
	}
}

// WithInteractionTTL overrides interaction.LinkTTL.
func WithInteractionTTL(ttl time.Duration) Option {
	return func(s *PostgresStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewPostgres constructs the relational exposure store.
func NewPostgres(db relational.DB, opts ...Option) *PostgresStore {
	s := &PostgresStore{
		db:          db,
		fanoutLimit: fanout.DefaultLimit,
		ttl:         interaction.LinkTTL,
		clock:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ConfirmExposures inserts one row per edge. The first failing edge aborts
// the call; edges already written stay written.
func (s *PostgresStore) ConfirmExposures(ctx context.Context, edges []models.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	for _, e := range edges {
		if e.DonorID == "" || e.RecipientID == "" {
			return fmt.Errorf("exposure edge needs donor and recipient: %w", sentinel.ErrInvalidInput)
		}
	}

	stmt, err := s.db.Prepare(ctx, insertExposureSQL)
	if err != nil {
		return fmt.Errorf("prepare confirm exposures: %w: %w", sentinel.ErrStoreFailure, err)
	}
	defer stmt.Close()

	err = s.run(ctx, "confirm_exposures", len(edges), func(ctx context.Context, i int) error {
		e := edges[i]
		if _, err := stmt.Exec(ctx, e.DonorID, e.RecipientID, e.TotalMinutes, e.Close, e.Certainty); err != nil {
			return fmt.Errorf("insert exposure %d: %w: %w", i, sentinel.ErrStoreFailure, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("confirm exposures: %w", err)
	}
	return nil
}

// AddSymptoms inserts one row per entry for ownerID, with the same bounded,
// fail-fast discipline as ConfirmExposures.
func (s *PostgresStore) AddSymptoms(ctx context.Context, ownerID string, entries []casemodels.SymptomEntry) error {
	if ownerID == "" {
		return fmt.Errorf("symptom owner id is required: %w", sentinel.ErrInvalidInput)
	}
	if len(entries) == 0 {
		return nil
	}

	stmt, err := s.db.Prepare(ctx, insertSymptomSQL)
	if err != nil {
		return fmt.Errorf("prepare add symptoms: %w: %w", sentinel.ErrStoreFailure, err)
	}
	defer stmt.Close()

	err = s.run(ctx, "add_symptoms", len(entries), func(ctx context.Context, i int) error {
		e := entries[i]
		if _, err := stmt.Exec(ctx, ownerID, e.At.UTC(), e.Label); err != nil {
			return fmt.Errorf("insert symptom %d: %w: %w", i, sentinel.ErrStoreFailure, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("add symptoms: %w", err)
	}
	return nil
}

// GetSymptoms returns the relational symptom rows of ownerID, oldest first.
func (s *PostgresStore) GetSymptoms(ctx context.Context, ownerID string) ([]casemodels.SymptomEntry, error) {
	rows, err := s.db.Query(ctx, selectSymptomsSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query symptoms: %w: %w", sentinel.ErrStoreFailure, err)
	}
	defer rows.Close()

	entries := []casemodels.SymptomEntry{}
	for rows.Next() {
		var e casemodels.SymptomEntry
		if err := rows.Scan(&e.At, &e.Label); err != nil {
			return nil, fmt.Errorf("scan symptom: %w: %w", sentinel.ErrSerialization, err)
		}
		e.At = e.At.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symptoms: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return entries, nil
}

// AddCase writes the lifecycle row of a case.
func (s *PostgresStore) AddCase(ctx context.Context, rec models.CaseRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("case id is required: %w", sentinel.ErrInvalidInput)
	}
	if rec.SymptomaticTime.IsZero() {
		return fmt.Errorf("symptomatic time is required: %w", sentinel.ErrInvalidInput)
	}
	if _, err := s.db.Exec(ctx, insertCaseSQL, rec.ID, rec.ExposureTime, rec.SymptomaticTime, rec.ResolvedTime); err != nil {
		return fmt.Errorf("insert case: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return nil
}

// AddClient registers a client, generating its id when none is given.
func (s *PostgresStore) AddClient(ctx context.Context, clientID string) (models.Client, error) {
	if clientID == "" {
		clientID = uuid.NewString()
	}
	c := models.Client{ID: clientID, CreatedAt: s.clock().UTC()}
	if _, err := s.db.Exec(ctx, insertClientSQL, c.ID, c.CreatedAt); err != nil {
		return models.Client{}, fmt.Errorf("insert client: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return c, nil
}

// LinkInteractions binds ids to ownerID in geo, resetting their age, in one
// statement.
func (s *PostgresStore) LinkInteractions(ctx context.Context, geo string, interactionIDs []string, ownerID string) error {
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
	if _, err := s.db.Exec(ctx, upsertInteractionsSQL, ids, ownerID, geo, s.clock().UTC()); err != nil {
		return fmt.Errorf("link interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return nil
}

// ConfirmInteractions returns the distinct owners of the ids whose links are
// younger than the TTL, in one query. Expired rows read as absent even before
// ClearOldInteractions removes them.
func (s *PostgresStore) ConfirmInteractions(ctx context.Context, interactionIDs []string) ([]string, error) {
	ids := pstrings.DedupeAndTrim(interactionIDs)
	if len(ids) == 0 {
		return []string{}, nil
	}

	rows, err := s.db.Query(ctx, confirmInteractionsSQL, ids, s.cutoff())
	if err != nil {
		return nil, fmt.Errorf("confirm interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scan interaction owner: %w: %w", sentinel.ErrSerialization, err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction owners: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return owners, nil
}

// InteractionsSince returns the live links among interactionIDs created after
// lastCheck, with one query per geo and at most fanoutLimit queries in flight.
func (s *PostgresStore) InteractionsSince(ctx context.Context, lastCheck time.Time, geos, interactionIDs []string) ([]models.Interaction, error) {
	ids := pstrings.DedupeAndTrim(interactionIDs)
	if len(geos) == 0 || len(ids) == 0 {
		return []models.Interaction{}, nil
	}

	stmt, err := s.db.Prepare(ctx, interactionsInGeoSQL)
	if err != nil {
		return nil, fmt.Errorf("prepare interactions since: %w: %w", sentinel.ErrStoreFailure, err)
	}
	defer stmt.Close()

	// Links past their TTL stay invisible even if lastCheck is older.
	since := lastCheck.UTC()
	if cutoff := s.cutoff(); cutoff.After(since) {
		since = cutoff
	}
	perGeo := make([][]models.Interaction, len(geos))
	err = s.run(ctx, "interactions_since", len(geos), func(ctx context.Context, i int) error {
		found, err := scanInteractions(stmt.Query(ctx, since, geos[i], ids))
		if err != nil {
			return fmt.Errorf("interactions in geo %q: %w", geos[i], err)
		}
		perGeo[i] = found
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("interactions since: %w", err)
	}

	out := []models.Interaction{}
	for _, found := range perGeo {
		out = append(out, found...)
	}
	return out, nil
}

// ClearOldInteractions deletes links older than the TTL and returns how many
// rows went.
func (s *PostgresStore) ClearOldInteractions(ctx context.Context) (int64, error) {
	n, err := s.db.Exec(ctx, clearOldInteractionsSQL, s.cutoff())
	if err != nil {
		return 0, fmt.Errorf("clear old interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}
	purgedInteractions.Add(float64(n))
	return n, nil
}

// Ping checks the relational pool.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) cutoff() time.Time {
	return s.clock().UTC().Add(-s.ttl)
}

func (s *PostgresStore) run(ctx context.Context, op string, n int, fn func(ctx context.Context, i int) error) error {
	start := time.Now()
	err := fanout.Run(ctx, s.fanoutLimit, n, func(ctx context.Context, i int) error {
		inFlight.WithLabelValues(op).Inc()
		defer inFlight.WithLabelValues(op).Dec()
		return fn(ctx, i)
	})
	fanoutDuration.WithLabelValues(op, outcomeLabel(err)).Observe(time.Since(start).Seconds())
	return err
}

func scanInteractions(rows relational.Rows, err error) ([]models.Interaction, error) {
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(&in.ID, &in.OwnerID, &in.Geo, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w: %w", sentinel.ErrSerialization, err)
		}
		in.CreatedAt = in.CreatedAt.UTC()
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w: %w", sentinel.ErrStoreFailure, err)
	}
	return out, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sentinel.ErrPartialBatch):
		return "partial"
	default:
		return "error"
	}
}
