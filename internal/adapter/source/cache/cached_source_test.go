package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/port/cache"
)

type MockListingSource struct{ mock.Mock }

func (m *MockListingSource) Fetch(ctx context.Context) ([]domain.RemoteRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteRecord), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

const testTTL = 2 * time.Minute

func records() []domain.RemoteRecord {
	return []domain.RemoteRecord{
		{ID: "r1", Name: "Road Bike", PriceText: "450", OwnerID: "u1", IsPublic: true},
	}
}

func TestCachedSource_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("CacheHitSkipsSource", func(t *testing.T) {
		src := new(MockListingSource)
		repo := new(MockCacheRepository)
		data, err := json.Marshal(records())
		require.NoError(t, err)
		repo.On("Get", ctx, FeedCacheKey).Return(data, nil).Once()

		got, err := NewCachedSource(src, repo, testTTL, logger.NewNop()).Fetch(ctx)

		require.NoError(t, err)
		assert.Equal(t, "r1", got[0].ID)
		src.AssertNotCalled(t, "Fetch", mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("CacheMissFetchesAndStores", func(t *testing.T) {
		src := new(MockListingSource)
		repo := new(MockCacheRepository)
		repo.On("Get", ctx, FeedCacheKey).Return(nil, cache.ErrNotFound).Once()
		src.On("Fetch", ctx).Return(records(), nil).Once()
		repo.On("Set", ctx, FeedCacheKey, mock.AnythingOfType("[]uint8"), testTTL).Return(nil).Once()

		got, err := NewCachedSource(src, repo, testTTL, logger.NewNop()).Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		src.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("CorruptEntryIsDeleted", func(t *testing.T) {
		src := new(MockListingSource)
		repo := new(MockCacheRepository)
		repo.On("Get", ctx, FeedCacheKey).Return([]byte("{not json"), nil).Once()
		repo.On("Delete", ctx, FeedCacheKey).Return(nil).Once()
		src.On("Fetch", ctx).Return(records(), nil).Once()
		repo.On("Set", ctx, FeedCacheKey, mock.Anything, testTTL).Return(nil).Once()

		_, err := NewCachedSource(src, repo, testTTL, logger.NewNop()).Fetch(ctx)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("CacheErrorsDoNotFailFetch", func(t *testing.T) {
		src := new(MockListingSource)
		repo := new(MockCacheRepository)
		repo.On("Get", ctx, FeedCacheKey).Return(nil, errors.New("redis down")).Once()
		src.On("Fetch", ctx).Return(records(), nil).Once()
		repo.On("Set", ctx, FeedCacheKey, mock.Anything, testTTL).Return(errors.New("redis down")).Once()

		got, err := NewCachedSource(src, repo, testTTL, logger.NewNop()).Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("SourceErrorPropagatesAndIsNotCached", func(t *testing.T) {
		src := new(MockListingSource)
		repo := new(MockCacheRepository)
		fetchErr := errors.New("mongo unreachable")
		repo.On("Get", ctx, FeedCacheKey).Return(nil, cache.ErrNotFound).Once()
		src.On("Fetch", ctx).Return(nil, fetchErr).Once()

		_, err := NewCachedSource(src, repo, testTTL, logger.NewNop()).Fetch(ctx)

		assert.ErrorIs(t, err, fetchErr)
		repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NilCacheIsPassThrough", func(t *testing.T) {
		src := new(MockListingSource)
		src.On("Fetch", ctx).Return(records(), nil).Once()

		s := NewCachedSource(src, nil, testTTL, logger.NewNop())
		got, err := s.Fetch(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NoError(t, s.Invalidate(ctx))
	})
}

type memoryCache struct{ entries map[string][]byte }

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestCachedSource_InvalidateRefetchesUpstream(t *testing.T) {
	ctx := context.Background()
	updated := append(records(), domain.RemoteRecord{ID: "r2", Name: "Tent", PriceText: "80", OwnerID: "u2", IsPublic: true})

	src := new(MockListingSource)
	src.On("Fetch", ctx).Return(records(), nil).Once()
	src.On("Fetch", ctx).Return(updated, nil).Once()
	s := NewCachedSource(src, &memoryCache{entries: map[string][]byte{}}, testTTL, logger.NewNop())

	first, err := s.Fetch(ctx)
	require.NoError(t, err)
	cached, err := s.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, cached, 1)

	require.NoError(t, s.Invalidate(ctx))
	fresh, err := s.Fetch(ctx)

	require.NoError(t, err)
	assert.Len(t, fresh, 2)
	src.AssertExpectations(t)
}
