//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	casemodels "contacttrace/internal/cases/models"
	"contacttrace/internal/exposure/models"
	"contacttrace/internal/exposure/store"
	"contacttrace/internal/interaction"
	interactionstore "contacttrace/internal/interaction/store"
	"contacttrace/internal/platform/relational"
	"contacttrace/pkg/platform/sentinel"
	"contacttrace/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	pool     *pgxpool.Pool
	adapters map[string]relational.DB
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())

	pool, err := pgxpool.New(context.Background(), s.postgres.URL)
	s.Require().NoError(err)
	s.pool = pool
	s.adapters = map[string]relational.DB{
		relational.DriverPQ:  relational.NewSQL(s.postgres.DB),
		relational.DriverPGX: relational.NewPool(pool),
	}
}

func (s *PostgresStoreSuite) TearDownSuite() {
	s.pool.Close()
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "exposures", "symptoms", "interactions", "cases", "clients")
	s.Require().NoError(err)
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) newStore(db relational.DB, opts ...store.Option) *store.PostgresStore {
	opts = append([]store.Option{store.WithClock(func() time.Time { return s.now })}, opts...)
	return store.NewPostgres(db, opts...)
}

func (s *PostgresStoreSuite) count(table string) int {
	var n int
	err := s.postgres.DB.QueryRowContext(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *PostgresStoreSuite) TestConfirmExposures() {
	for driver, db := range s.adapters {
		s.Run(driver, func() {
			s.SetupTest()
			minutes, closeContact, certainty := 20, true, 0.75
			edges := []models.Edge{{DonorID: "d", RecipientID: "r0", TotalMinutes: &minutes, Close: &closeContact, Certainty: &certainty}}
			for i := 1; i < 30; i++ {
				edges = append(edges, models.Edge{DonorID: "d", RecipientID: fmt.Sprintf("r%d", i)})
			}

			s.Require().NoError(s.newStore(db).ConfirmExposures(context.Background(), edges))
			s.Equal(30, s.count("exposures"))

			var gotMinutes int
			var gotCertainty float64
			err := s.postgres.DB.QueryRowContext(context.Background(),
				"SELECT total_minutes, certainty FROM exposures WHERE recipient_id = 'r0'").Scan(&gotMinutes, &gotCertainty)
			s.Require().NoError(err)
			s.Equal(20, gotMinutes)
			s.InDelta(0.75, gotCertainty, 1e-9)
		})
	}
}

func (s *PostgresStoreSuite) TestConfirmExposuresNoRollback() {
	ctx := context.Background()
	_, err := s.postgres.Exec(ctx, `ALTER TABLE exposures ADD CONSTRAINT no_poison CHECK (recipient_id <> 'poison')`)
	s.Require().NoError(err)
	defer func() {
		_, err := s.postgres.Exec(ctx, `ALTER TABLE exposures DROP CONSTRAINT no_poison`)
		s.Require().NoError(err)
	}()

	for driver, db := range s.adapters {
		s.Run(driver, func() {
			s.SetupTest()
			edges := []models.Edge{
				{DonorID: "d", RecipientID: "r1"},
				{DonorID: "d", RecipientID: "r2"},
				{DonorID: "d", RecipientID: "poison"},
			}
			// one slot makes the order deterministic
			err := s.newStore(db, store.WithFanoutLimit(1)).ConfirmExposures(ctx, edges)
			s.ErrorIs(err, sentinel.ErrPartialBatch)
			s.ErrorIs(err, sentinel.ErrStoreFailure)
			s.Equal(2, s.count("exposures"), "earlier edges stay written")
		})
	}
}

func (s *PostgresStoreSuite) TestSymptomsRoundTrip() {
	for driver, db := range s.adapters {
		s.Run(driver, func() {
			s.SetupTest()
			st := s.newStore(db)
			at := s.now.Add(-time.Hour)
			entries := []casemodels.SymptomEntry{{At: at, Label: "fever"}, {At: at, Label: "cough"}, {At: s.now, Label: "fatigue"}}

			s.Require().NoError(st.AddSymptoms(context.Background(), "owner-1", entries))
			got, err := st.GetSymptoms(context.Background(), "owner-1")
			s.Require().NoError(err)
			s.Require().Len(got, 3)
			s.Equal("fatigue", got[2].Label)
			s.True(got[2].At.Equal(s.now))
			s.ElementsMatch([]string{"fever", "cough"}, []string{got[0].Label, got[1].Label})

			none, err := st.GetSymptoms(context.Background(), "nobody")
			s.Require().NoError(err)
			s.Empty(none)
		})
	}
}

func (s *PostgresStoreSuite) TestCasesAndClients() {
	for driver, db := range s.adapters {
		s.Run(driver, func() {
			s.SetupTest()
			st := s.newStore(db)
			ctx := context.Background()

			exposed := s.now.Add(-72 * time.Hour)
			s.Require().NoError(st.AddCase(ctx, models.CaseRecord{ID: "c1", ExposureTime: &exposed, SymptomaticTime: s.now}))
			err := st.AddCase(ctx, models.CaseRecord{ID: "c1", SymptomaticTime: s.now})
			s.ErrorIs(err, sentinel.ErrStoreFailure, "duplicate case id")

			c, err := st.AddClient(ctx, "")
			s.Require().NoError(err)
			s.NotEmpty(c.ID)
			s.Equal(1, s.count("clients"))
		})
	}
}

func (s *PostgresStoreSuite) TestInteractionLifecycle() {
	for driver, db := range s.adapters {
		s.Run(driver, func() {
			s.SetupTest()
			ctx := context.Background()
			st := s.newStore(db)
			linker := interactionstore.NewPostgres(st)

			s.Require().NoError(linker.LinkInGeo(ctx, "dk", []string{"i1", "i2"}, "A"))
			s.Require().NoError(st.LinkInteractions(ctx, "se", []string{"i3"}, "B"))

			owners, err := linker.ResolveOwners(ctx, []string{"i1", "i2", "i3", "i4"})
			s.Require().NoError(err)
			s.ElementsMatch([]string{"A", "B"}, owners)

			found, err := st.InteractionsSince(ctx, s.now.Add(-time.Minute), []string{"dk", "se"}, []string{"i1", "i3"})
			s.Require().NoError(err)
			s.Len(found, 2)

			// relinking moves the id and resets its age
			s.Require().NoError(linker.Link(ctx, []string{"i2"}, "C"))
			owner, ok, err := linker.ResolveOwner(ctx, "i2")
			s.Require().NoError(err)
			s.True(ok)
			s.Equal("C", owner)

			// a week later every link reads as absent, before and after the purge
			s.now = s.now.Add(interaction.LinkTTL + time.Second)
			_, ok, err = linker.ResolveOwner(ctx, "i1")
			s.Require().NoError(err)
			s.False(ok)
			s.Equal(3, s.count("interactions"))

			removed, err := linker.ClearOldInteractions(ctx)
			s.Require().NoError(err)
			s.Equal(int64(3), removed)
			s.Equal(0, s.count("interactions"))
		})
	}
}
