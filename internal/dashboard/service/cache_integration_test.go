//go:build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sherialink/internal/dashboard/service"
	"sherialink/internal/domain"
	"sherialink/internal/platform/config"
	platformredis "sherialink/internal/platform/redis"
	"sherialink/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *service.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.StartRedis(s.T())
	s.cache = service.NewRedisCache(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	records := []domain.CaseReport{
		{
			ID:          "65f0c1",
			Name:        "Jane Wanjiku",
			PhoneNumber: "0712345678",
			County:      "Nairobi",
			CaseType:    domain.CaseTypeLand,
			Description: domain.CategoryLandDispute,
			Date:        "2024-02-28",
			Status:      domain.CaseStatusPending,
			CreatedAt:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	_, ok, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.cache.Set(ctx, records))

	got, ok, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(records, got)
}

func (s *RedisCacheSuite) TestInvalidate() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, []domain.CaseReport{{ID: "c1"}}))
	s.Require().NoError(s.cache.Invalidate(ctx))

	_, ok, err := s.cache.Get(ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisCacheSuite) TestExpiry() {
	ctx := context.Background()
	short := service.NewRedisCache(s.redis.Client, time.Second)
	s.Require().NoError(short.Set(ctx, []domain.CaseReport{{ID: "c1"}}))

	s.Eventually(func() bool {
		_, ok, err := short.Get(ctx)
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *RedisCacheSuite) TestPlatformClientConnects() {
	ctx := context.Background()
	client, err := platformredis.New(ctx, config.RedisConfig{URL: s.redis.URL, PoolSize: 2})
	s.Require().NoError(err)
	defer client.Close()

	s.NoError(client.Health(ctx))
}
