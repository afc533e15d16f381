package store

import (
	"context"
	"fmt"
	"strings"

	"contacttrace/internal/interaction"
	"contacttrace/pkg/platform/sentinel"
)

// Relational is the part of the relational exposure store that holds
// interaction rows.
type Relational interface {
	LinkInteractions(ctx context.Context, geo string, interactionIDs []string, ownerID string) error
	ConfirmInteractions(ctx context.Context, interactionIDs []string) ([]string, error)
	ClearOldInteractions(ctx context.Context) (int64, error)
}

// Postgres links interaction ids as relational rows. Rows older than the TTL
// read as absent; ClearOldInteractions removes them.
type Postgres struct {
	rel Relational
}

// NewPostgres constructs a relational interaction linker.
func NewPostgres(rel Relational) *Postgres {
	return &Postgres{rel: rel}
}

// Link records the links without a geo.
func (p *Postgres) Link(ctx context.Context, interactionIDs []string, ownerID string) error {
	return p.LinkInGeo(ctx, "", interactionIDs, ownerID)
}

// LinkInGeo records the links tagged with geo, so InteractionsSince can find
// them.
func (p *Postgres) LinkInGeo(ctx context.Context, geo string, interactionIDs []string, ownerID string) error {
	ids, err := interaction.NormalizeIDs(interactionIDs)
	if err != nil {
		return err
	}
	return p.rel.LinkInteractions(ctx, geo, ids, ownerID)
}

func (p *Postgres) ResolveOwner(ctx context.Context, interactionID string) (string, bool, error) {
	interactionID = strings.TrimSpace(interactionID)
	if interactionID == "" || interaction.Reserved(interactionID) {
		return "", false, nil
	}
	owners, err := p.rel.ConfirmInteractions(ctx, []string{interactionID})
	if err != nil {
		return "", false, err
	}
	switch len(owners) {
	case 0:
		return "", false, nil
	case 1:
		return owners[0], true, nil
	default:
		// id is the table's primary key
		return "", false, fmt.Errorf("interaction %s has %d owners: %w", interactionID, len(owners), sentinel.ErrStoreFailure)
	}
}

func (p *Postgres) ResolveOwners(ctx context.Context, interactionIDs []string) ([]string, error) {
	return p.rel.ConfirmInteractions(ctx, interactionIDs)
}

func (p *Postgres) ClearOldInteractions(ctx context.Context) (int64, error) {
	return p.rel.ClearOldInteractions(ctx)
}
