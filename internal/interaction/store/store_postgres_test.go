package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacttrace/internal/interaction"
	"contacttrace/pkg/platform/sentinel"
)

type fakeRelational struct {
	links   map[string]string
	geos    map[string]string
	err     error
	cleared int64
}

func (f *fakeRelational) LinkInteractions(_ context.Context, geo string, ids []string, owner string) error {
	if f.err != nil {
		return f.err
	}
	if f.links == nil {
		f.links, f.geos = map[string]string{}, map[string]string{}
	}
	for _, id := range ids {
		f.links[id] = owner
		f.geos[id] = geo
	}
	return nil
}

func (f *fakeRelational) ConfirmInteractions(_ context.Context, ids []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var owners []string
	for _, id := range ids {
		if owner, ok := f.links[id]; ok {
			owners = append(owners, owner)
		}
	}
	return owners, nil
}

func (f *fakeRelational) ClearOldInteractions(context.Context) (int64, error) {
	return f.cleared, f.err
}

var (
	_ interaction.Linker = (*Postgres)(nil)
	_ interaction.Purger = (*Postgres)(nil)
	_ interaction.Linker    = (*Redis)(nil)
	_ interaction.GeoLinker = (*Postgres)(nil)
)

func TestPostgresLinker(t *testing.T) {
	ctx := context.Background()

	t.Run("links carry their geo", func(t *testing.T) {
		rel := &fakeRelational{}
		linker := NewPostgres(rel)
		require.NoError(t, linker.LinkInGeo(ctx, "dk", []string{"i1"}, "A"))
		require.NoError(t, linker.Link(ctx, []string{"i2"}, "A"))
		assert.Equal(t, "dk", rel.geos["i1"])
		assert.Equal(t, "", rel.geos["i2"])

		owner, ok, err := linker.ResolveOwner(ctx, "i1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "A", owner)
	})

	t.Run("ids are trimmed on write and read", func(t *testing.T) {
		rel := &fakeRelational{}
		linker := NewPostgres(rel)
		require.NoError(t, linker.Link(ctx, []string{" i1", "i1 ", ""}, "A"))
		assert.Len(t, rel.links, 1)

		owner, ok, err := linker.ResolveOwner(ctx, "i1 ")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "A", owner)
	})

	t.Run("reserved ids are rejected", func(t *testing.T) {
		rel := &fakeRelational{}
		linker := NewPostgres(rel)
		err := linker.Link(ctx, []string{"i1", "case:victim"}, "A")
		assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
		assert.Empty(t, rel.links)

		_, ok, err := linker.ResolveOwner(ctx, "time:2023:001:10")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("absent id", func(t *testing.T) {
		linker := NewPostgres(&fakeRelational{})
		_, ok, err := linker.ResolveOwner(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = linker.ResolveOwner(ctx, "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("more than one owner for an id is a store failure", func(t *testing.T) {
		rel := &fakeRelational{links: map[string]string{"i1": "A"}}
		linker := NewPostgres(dupRelational{rel})
		_, _, err := linker.ResolveOwner(ctx, "i1")
		assert.ErrorIs(t, err, sentinel.ErrStoreFailure)
	})

	t.Run("errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		linker := NewPostgres(&fakeRelational{err: boom})
		assert.ErrorIs(t, linker.Link(ctx, []string{"i1"}, "A"), boom)
		_, err := linker.ResolveOwners(ctx, []string{"i1"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("purge delegates", func(t *testing.T) {
		linker := NewPostgres(&fakeRelational{cleared: 4})
		n, err := linker.ClearOldInteractions(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}

// dupRelational reports every owner twice.
type dupRelational struct {
	*fakeRelational
}

func (d dupRelational) ConfirmInteractions(ctx context.Context, ids []string) ([]string, error) {
	owners, err := d.fakeRelational.ConfirmInteractions(ctx, ids)
	return append(owners, owners...), err
}
