//go:build integration

package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/port/cache"
)

var testClient *redis.Client

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start Redis resource: %s", err)
	}
	addr := resource.GetHostPort("6379/tcp")

	if err := pool.Retry(func() error {
		var errRetry error
		testClient, errRetry = NewRedisClient(context.Background(), Options{Address: addr}, logger.NewNop())
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to Redis at %s: %s", addr, err)
	}

	code := m.Run()

	_ = testClient.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge Redis resource: %s", err)
	}
	os.Exit(code)
}

func TestRedisCacheRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRedisCacheRepository(testClient, logger.NewNop())
	key := fmt.Sprintf("test:%d", time.Now().UnixNano())

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, repo.Set(ctx, key, []byte(`[{"id":"r1"}]`), time.Minute))
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"r1"}]`, string(got))

	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrNotFound)
}
