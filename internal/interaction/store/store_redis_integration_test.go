//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contacttrace/internal/interaction/store"
	"contacttrace/pkg/testutil/containers"
)

type RedisLinkerSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	linker *store.Redis
}

func TestRedisLinkerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLinkerSuite))
}

func (s *RedisLinkerSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.linker = store.NewRedis(s.redis.Client)
}

func (s *RedisLinkerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisLinkerSuite) TestLinkSetsWeekExpiry() {
	ctx := context.Background()
	s.Require().NoError(s.linker.Link(ctx, []string{"i1"}, "case-1"))

	ttl, err := s.redis.Client.TTL(ctx, "i1").Result()
	s.Require().NoError(err)
	s.InDelta(float64(604800), ttl.Seconds(), 2)

	owners, err := s.linker.ResolveOwners(ctx, []string{"i1", "i2"})
	s.Require().NoError(err)
	s.Equal([]string{"case-1"}, owners)
}

func (s *RedisLinkerSuite) TestExpiredLinkIsAbsent() {
	ctx := context.Background()
	short := store.NewRedis(s.redis.Client, store.WithRedisTTL(time.Second))
	s.Require().NoError(short.Link(ctx, []string{"i1"}, "case-1"))

	s.Eventually(func() bool {
		_, ok, err := short.ResolveOwner(ctx, "i1")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
