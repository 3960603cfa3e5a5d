package usecase

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/pipeline"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/platform/metrics"
)

var tracer = otel.Tracer("catalog-service/usecase")

// CatalogStore owns the listing collection and the current query.
// It starts with the static seed set; Load prepends the remote feed.
type CatalogStore struct {
	mu       sync.RWMutex
	seed     []domain.Listing
	listings []domain.Listing
	query    pipeline.Query

	loadSeq    uint64
	appliedSeq uint64

	source  domain.ListingSource
	mapper  *RemoteMapper
	logger  *logger.Logger
	metrics *metrics.MetricsManager
}

// NewCatalogStore creates a store over seed. source may be nil for an offline catalog.
func NewCatalogStore(seedListings []domain.Listing, source domain.ListingSource, mapper *RemoteMapper, log *logger.Logger, m *metrics.MetricsManager) *CatalogStore {
	if mapper == nil {
		mapper = NewRemoteMapper(nil, log)
	}
	s := &CatalogStore{
		seed:    append([]domain.Listing(nil), seedListings...),
		query:   pipeline.DefaultQuery(),
		source:  source,
		mapper:  mapper,
		logger:  log.Named("CatalogStore"),
		metrics: m,
	}
	s.listings = s.seed
	return s
}

// Load fetches the remote feed and sets the collection to remote listings
// followed by the seed set. A failed fetch is logged and leaves the seed set
// alone in place; it never surfaces. Load returns the number of remote listings merged.
// When loads overlap, a load that started earlier never overwrites the result of a later one.
func (s *CatalogStore) Load(ctx context.Context) int {
	ctx, span := tracer.Start(ctx, "CatalogStore.Load")
	defer span.End()

	if s.source == nil {
		s.logger.Debug("No remote listing source configured, serving seed set")
		return 0
	}

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	records, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Warn("Remote listing fetch failed, falling back to seed set", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote fetch failed")
		s.metrics.FeedLoaded(0, err)
		s.replace(seq, nil)
		return 0
	}

	remote := s.mapper.MapAll(ctx, records)
	if !s.replace(seq, remote) {
		s.logger.Debug("Discarding result of a superseded load", zap.Uint64("load_seq", seq))
		return 0
	}
	span.SetAttributes(attribute.Int("catalog.remote_records", len(records)), attribute.Int("catalog.remote_listings", len(remote)))
	s.metrics.FeedLoaded(len(remote), nil)
	s.logger.Info("Catalog loaded", zap.Int("remote", len(remote)), zap.Int("seed", len(s.seed)))
	return len(remote)
}

// Reload drops any cached copy of the remote feed, then runs Load.
func (s *CatalogStore) Reload(ctx context.Context) int {
	if rs, ok := s.source.(domain.RefreshableSource); ok {
		if err := rs.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate remote feed before reload", zap.Error(err))
		}
	}
	return s.Load(ctx)
}

// LoadAsync runs Load in the background. The returned channel closes when it finishes.
func (s *CatalogStore) LoadAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Load(ctx)
	}()
	return done
}

// replace installs remote ahead of the seed set unless a later load already did.
func (s *CatalogStore) replace(seq uint64, remote []domain.Listing) bool {
	merged := make([]domain.Listing, 0, len(remote)+len(s.seed))
	merged = append(merged, remote...)
	merged = append(merged, s.seed...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.listings = merged
	return true
}

// SetSearch sets the free-text search.
func (s *CatalogStore) SetSearch(text string) {
	s.mu.Lock()
	s.query.Search = text
	s.mu.Unlock()
}

// SetCategoryTab sets the category tab; "All" or "" shows every category.
func (s *CatalogStore) SetCategoryTab(category string) {
	if category == "" {
		category = domain.AllCategories
	}
	s.mu.Lock()
	s.query.Tab = category
	s.mu.Unlock()
}

// SetFilters replaces the advanced filter criteria.
func (s *CatalogStore) SetFilters(c domain.FilterCriteria) {
	s.mu.Lock()
	s.query.Criteria = c.Normalize()
	s.mu.Unlock()
}

// SetSort sets the ordering.
func (s *CatalogStore) SetSort(key domain.SortKey) {
	s.mu.Lock()
	s.query.Sort = domain.ParseSortKey(string(key))
	s.mu.Unlock()
}

// Query returns the current query.
func (s *CatalogStore) Query() pipeline.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Listings returns a copy of the unified collection in load order.
func (s *CatalogStore) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Listing(nil), s.listings...)
}

// Visible evaluates the pipeline against the current collection and query.
func (s *CatalogStore) Visible() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pipeline.Apply(s.listings, s.query)
}

// Snapshot is a consistent read of the query with its visible list and counts.
type Snapshot struct {
	Query   pipeline.Query
	Visible []domain.Listing
	Counts  pipeline.Counts
}

// Snapshot evaluates the pipeline once under a single read lock.
func (s *CatalogStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Query:   s.query,
		Visible: pipeline.Apply(s.listings, s.query),
		Counts:  pipeline.Count(s.listings, s.query),
	}
}

// Counts returns the total and visible sizes.
func (s *CatalogStore) Counts() pipeline.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pipeline.Count(s.listings, s.query)
}

// FindListing looks a listing up by ID regardless of the current filters.
func (s *CatalogStore) FindListing(id string) (domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Listing{}, domain.ErrListingNotFound
}
