package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/port/cache"
)

// FeedCacheKey holds the last fetched remote feed.
const FeedCacheKey = "catalog:feed:v1"

// CachedSource is a read-through cache in front of a ListingSource.
// Cache failures are logged and never fail a fetch.
type CachedSource struct {
	next   domain.ListingSource
	cache  cache.CacheRepository
	ttl    time.Duration
	logger *logger.Logger
}

var _ domain.RefreshableSource = (*CachedSource)(nil)

// NewCachedSource wraps next. A nil cacheRepo disables caching.
func NewCachedSource(next domain.ListingSource, cacheRepo cache.CacheRepository, ttl time.Duration, log *logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		cache:  cacheRepo,
		ttl:    ttl,
		logger: log.Named("CachedSource"),
	}
}

// Fetch serves the cached feed when present, otherwise fetches from the wrapped source and caches the result.
func (s *CachedSource) Fetch(ctx context.Context) ([]domain.RemoteRecord, error) {
	if s.cache != nil {
		if records, ok := s.lookup(ctx); ok {
			return records, nil
		}
	}

	records, err := s.next.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("CachedSource.Fetch: %w", err)
	}

	if s.cache != nil {
		s.store(ctx, records)
	}
	return records, nil
}

// Invalidate drops the cached feed so the next Fetch goes to the source.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, FeedCacheKey)
}

func (s *CachedSource) lookup(ctx context.Context) ([]domain.RemoteRecord, bool) {
	cached, err := s.cache.Get(ctx, FeedCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("Failed to read feed from cache (not a cache miss)", zap.Error(err))
		}
		return nil, false
	}

	var records []domain.RemoteRecord
	if err := json.Unmarshal(cached, &records); err != nil {
		s.logger.Error("Failed to unmarshal cached feed", zap.Error(err))
		if delErr := s.cache.Delete(ctx, FeedCacheKey); delErr != nil {
			s.logger.Warn("Failed to delete corrupted feed from cache", zap.Error(delErr))
		}
		return nil, false
	}
	s.logger.Debug("Remote feed served from cache", zap.Int("records", len(records)))
	return records, true
}

func (s *CachedSource) store(ctx context.Context, records []domain.RemoteRecord) {
	data, err := json.Marshal(records)
	if err != nil {
		s.logger.Warn("Failed to marshal feed for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, FeedCacheKey, data, s.ttl); err != nil {
		s.logger.Warn("Failed to cache remote feed", zap.Error(err))
		return
	}
	s.logger.Debug("Remote feed cached", zap.Int("records", len(records)), zap.Duration("ttl", s.ttl))
}
