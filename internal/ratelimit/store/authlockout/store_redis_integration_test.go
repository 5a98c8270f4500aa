//go:build integration

package authlockout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"launchpad/internal/ratelimit/store/authlockout"
	"launchpad/pkg/requestcontext"
	"launchpad/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *authlockout.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = authlockout.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestFailuresAccumulateAndExpire() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	ctx := requestcontext.WithTime(context.Background(), now)

	first, err := s.store.RecordFailure(ctx, "authlockout:jane@example.com", 15*time.Minute)
	s.Require().NoError(err)
	s.Equal(1, first.FailureCount)
	s.Equal(now, first.WindowStart)

	later := requestcontext.WithTime(context.Background(), now.Add(time.Minute))
	second, err := s.store.RecordFailure(later, "authlockout:jane@example.com", 15*time.Minute)
	s.Require().NoError(err)
	s.Equal(2, second.FailureCount)
	s.Equal(now, second.WindowStart, "window start is set once")

	ttl, err := s.redis.Client.TTL(ctx, "authlockout:jane@example.com:failures").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 14*time.Minute)
}

func (s *RedisStoreSuite) TestLockGetClear() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	ctx := requestcontext.WithTime(context.Background(), now)
	key := "authlockout:locked@example.com"

	missing, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.Nil(missing)

	until := now.Add(10 * time.Minute)
	s.Require().NoError(s.store.Lock(ctx, key, until))

	record, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.Require().NotNil(record.LockedUntil)
	s.Equal(until, *record.LockedUntil)
	s.True(record.IsLockedAt(now))

	s.Require().NoError(s.store.Clear(ctx, key))
	cleared, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.Nil(cleared)
}
