package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	casemodels "contacttrace/internal/cases/models"
	"contacttrace/internal/exposure/models"
	"contacttrace/internal/interaction"
	"contacttrace/pkg/platform/sentinel"
	pstrings "contacttrace/pkg/platform/strings"
)

// SymptomLogs reads many symptom logs in one round trip.
type SymptomLogs interface {
	ReadMany(ctx context.Context, ownerIDs []string) ([][]casemodels.SymptomEntry, error)
}

// Store is the durable relational side.
type Store interface {
	ConfirmExposures(ctx context.Context, edges []models.Edge) error
	AddSymptoms(ctx context.Context, ownerID string, entries []casemodels.SymptomEntry) error
	GetSymptoms(ctx context.Context, ownerID string) ([]casemodels.SymptomEntry, error)
	AddCase(ctx context.Context, rec models.CaseRecord) error
	AddClient(ctx context.Context, clientID string) (models.Client, error)
	LinkInteractions(ctx context.Context, geo string, interactionIDs []string, ownerID string) error
	ConfirmInteractions(ctx context.Context, interactionIDs []string) ([]string, error)
	InteractionsSince(ctx context.Context, lastCheck time.Time, geos, interactionIDs []string) ([]models.Interaction, error)
	ClearOldInteractions(ctx context.Context) (int64, error)
}

// Service resolves interaction ids to owners and their symptom logs, and
// records confirmed exposures.
type Service struct {
	linker     interaction.Linker
	logs       SymptomLogs
	store      Store
	defaultGeo string
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore enables the relational operations. Without it they fail with
// sentinel.ErrUnavailable.
func WithStore(store Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithDefaultGeo tags links made without an explicit geo.
func WithDefaultGeo(geo string) Option {
	return func(s *Service) {
		s.defaultGeo = strings.TrimSpace(geo)
	}
}

func New(linker interaction.Linker, logs SymptomLogs, opts ...Option) (*Service, error) {
	if linker == nil {
		return nil, fmt.Errorf("interaction linker is required")
	}
	if logs == nil {
		return nil, fmt.Errorf("symptom logs are required")
	}

	svc := &Service{
		linker: linker,
		logs:   logs,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// LinkInteractions binds interaction ids to ownerID for the link TTL. A
// non-empty geo (or the default geo) tags the links so InteractionsSince can
// find them. When the linker keeps no geo, the tagged links are also written
// to the relational store, if one is configured.
func (s *Service) LinkInteractions(ctx context.Context, geo string, interactionIDs []string, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id is required: %w", sentinel.ErrInvalidInput)
	}
	ids, err := interaction.NormalizeIDs(interactionIDs)
	if err != nil {
		return err
	}

	geo = strings.TrimSpace(geo)
	if geo == "" {
		geo = s.defaultGeo
	}
	if geo == "" {
		return s.linker.Link(ctx, ids, ownerID)
	}
	if gl, ok := s.linker.(interaction.GeoLinker); ok {
		return gl.LinkInGeo(ctx, geo, ids, ownerID)
	}
	if err := s.linker.Link(ctx, ids, ownerID); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	return s.store.LinkInteractions(ctx, geo, ids, ownerID)
}

// ResolveOwners collapses interaction ids to the distinct owners currently
// linked. Unlinked and expired ids are skipped.
func (s *Service) ResolveOwners(ctx context.Context, interactionIDs []string) ([]string, error) {
	owners, err := s.linker.ResolveOwners(ctx, interactionIDs)
	if err != nil {
		return nil, err
	}
	return pstrings.Distinct(owners), nil
}

// FetchSymptomLogs reads the symptom log of every owner in one round trip.
func (s *Service) FetchSymptomLogs(ctx context.Context, ownerIDs []string) ([]models.OwnerLog, error) {
	if len(ownerIDs) == 0 {
		return []models.OwnerLog{}, nil
	}
	logs, err := s.logs.ReadMany(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.OwnerLog, len(ownerIDs))
	for i, id := range ownerIDs {
		out[i] = models.OwnerLog{OwnerID: id, Symptoms: logs[i]}
	}
	return out, nil
}

// Exposures resolves interaction ids to owners first, then reads each owner's
// log once, however many ids point at it.
func (s *Service) Exposures(ctx context.Context, interactionIDs []string) ([]models.OwnerLog, error) {
	owners, err := s.ResolveOwners(ctx, interactionIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve owners: %w", err)
	}
	logs, err := s.FetchSymptomLogs(ctx, owners)
	if err != nil {
		return nil, fmt.Errorf("fetch symptom logs: %w", err)
	}
	s.logger.DebugContext(ctx, "exposures resolved",
		"interaction_count", len(interactionIDs),
		"owner_count", len(owners),
	)
	return logs, nil
}

// ConfirmExposures persists exposure edges. A failure may leave earlier edges
// written; the error then wraps sentinel.ErrPartialBatch.
func (s *Service) ConfirmExposures(ctx context.Context, edges []models.Edge) error {
	store, err := s.requireStore()
	if err != nil {
		return err
	}
	if err := store.ConfirmExposures(ctx, edges); err != nil {
		s.logger.WarnContext(ctx, "confirm exposures failed",
			"edge_count", len(edges),
			"error", err,
		)
		return err
	}
	return nil
}

// AddSymptoms persists relational symptom rows for ownerID.
func (s *Service) AddSymptoms(ctx context.Context, ownerID string, entries []casemodels.SymptomEntry) error {
	store, err := s.requireStore()
	if err != nil {
		return err
	}
	return store.AddSymptoms(ctx, ownerID, entries)
}

// GetSymptoms reads relational symptom rows for ownerID.
func (s *Service) GetSymptoms(ctx context.Context, ownerID string) ([]casemodels.SymptomEntry, error) {
	store, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	return store.GetSymptoms(ctx, ownerID)
}

func (s *Service) AddCase(ctx context.Context, rec models.CaseRecord) error {
	store, err := s.requireStore()
	if err != nil {
		return err
	}
	return store.AddCase(ctx, rec)
}

func (s *Service) AddClient(ctx context.Context, clientID string) (models.Client, error) {
	store, err := s.requireStore()
	if err != nil {
		return models.Client{}, err
	}
	return store.AddClient(ctx, clientID)
}

// ConfirmInteractions resolves owners against relational interaction rows.
func (s *Service) ConfirmInteractions(ctx context.Context, interactionIDs []string) ([]string, error) {
	store, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	owners, err := store.ConfirmInteractions(ctx, interactionIDs)
	if err != nil {
		return nil, err
	}
	return pstrings.Distinct(owners), nil
}

// InteractionsSince lists live relational links among interactionIDs created
// after lastCheck in any of geos.
func (s *Service) InteractionsSince(ctx context.Context, lastCheck time.Time, geos, interactionIDs []string) ([]models.Interaction, error) {
	store, err := s.requireStore()
	if err != nil {
		return nil, err
	}
	return store.InteractionsSince(ctx, lastCheck, geos, interactionIDs)
}

// ClearOldInteractions removes expired relational interaction rows.
func (s *Service) ClearOldInteractions(ctx context.Context) (int64, error) {
	store, err := s.requireStore()
	if err != nil {
		return 0, err
	}
	n, err := store.ClearOldInteractions(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "expired interactions cleared", "removed", n)
	return n, nil
}

func (s *Service) requireStore() (Store, error) {
	if s.store == nil {
		return nil, fmt.Errorf("relational store not configured: %w", sentinel.ErrUnavailable)
	}
	return s.store, nil
}
