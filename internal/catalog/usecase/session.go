package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/pipeline"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/platform/metrics"
)

// Session is one user's catalog screen: the store plus the saved items,
// reviews, orders and overlays that hang off it. Every intent runs under a
// single lock, so state changes are applied one at a time.
type Session struct {
	mu        sync.Mutex
	store     *CatalogStore
	saved     *SaveSet
	reviews   *ReviewLedger
	orders    *OrderLog
	views     *ViewCoordinator
	publisher domain.EventPublisher
	navigate  domain.Navigator
	logger    *logger.Logger
	metrics   *metrics.MetricsManager
}

// NewSession wires a session around store. publisher and navigate may be nil.
func NewSession(store *CatalogStore, publisher domain.EventPublisher, navigate domain.Navigator, log *logger.Logger, m *metrics.MetricsManager) *Session {
	return &Session{
		store:     store,
		saved:     NewSaveSet(),
		reviews:   NewReviewLedger(),
		orders:    NewOrderLog(),
		views:     NewViewCoordinator(),
		publisher: publisher,
		navigate:  navigate,
		logger:    log.Named("Session"),
		metrics:   m,
	}
}

// ListingCard is a visible listing with the per-user state the grid shows on it.
type ListingCard struct {
	domain.Listing
	DiscountPercent int  `json:"discountPercent"`
	Saved           bool `json:"saved"`
	Reviewed        bool `json:"reviewed"`
}

// CatalogView is everything the grid needs for one render.
type CatalogView struct {
	Query         pipeline.Query                             `json:"query"`
	Counts        pipeline.Counts                            `json:"counts"`
	ActiveFilters int                                        `json:"activeFilters"`
	SavedCount    int                                        `json:"savedCount"`
	Overlays      map[domain.OverlayKind]domain.OverlayState `json:"overlays"`
	Listings      []ListingCard                              `json:"listings"`
}

// View renders the current visible list with per-listing state.
func (s *Session) View() CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Snapshot()
	cards := make([]ListingCard, len(snap.Visible))
	for i, l := range snap.Visible {
		_, reviewed := s.reviews.FindByListing(l.ID)
		cards[i] = ListingCard{
			Listing:         l,
			DiscountPercent: l.DiscountPercent(),
			Saved:           s.saved.Contains(l.ID),
			Reviewed:        reviewed,
		}
	}
	return CatalogView{
		Query:         snap.Query,
		Counts:        snap.Counts,
		ActiveFilters: snap.Query.Criteria.ActiveCount(),
		SavedCount:    s.saved.Len(),
		Overlays:      s.views.Snapshot(),
		Listings:      cards,
	}
}

// Reload refetches the remote feed, bypassing any feed cache. The query and per-user state are kept.
func (s *Session) Reload(ctx context.Context) int {
	return s.store.Reload(ctx)
}

// Visible returns the filtered and sorted listings.
func (s *Session) Visible() []domain.Listing {
	return s.store.Visible()
}

// Listing returns a loaded listing by ID.
func (s *Session) Listing(id string) (domain.Listing, error) {
	return s.store.FindListing(id)
}

// Query returns the current search, tab, criteria and sort.
func (s *Session) Query() pipeline.Query {
	return s.store.Query()
}

// ActiveFilterCount is the number of criteria fields away from the cleared state.
func (s *Session) ActiveFilterCount() int {
	return s.store.Query().Criteria.ActiveCount()
}

// SetSearch sets the search text.
func (s *Session) SetSearch(text string) { s.store.SetSearch(text) }

// SetCategoryTab sets the category tab.
func (s *Session) SetCategoryTab(category string) { s.store.SetCategoryTab(category) }

// SetSort sets the ordering.
func (s *Session) SetSort(key domain.SortKey) { s.store.SetSort(key) }

// OpenFilters opens the filter panel.
func (s *Session) OpenFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Open(domain.OverlayFilterPanel, "")
}

// ApplyFilters sets the criteria and closes the filter panel.
func (s *Session) ApplyFilters(c domain.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetFilters(c)
	s.views.Close(domain.OverlayFilterPanel)
}

// ClearFilters resets the criteria to the cleared state.
func (s *Session) ClearFilters() {
	s.store.SetFilters(domain.DefaultCriteria())
}

// ViewListing opens the detail overlay on id.
func (s *Session) ViewListing(id string) error {
	if _, err := s.store.FindListing(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Open(domain.OverlayDetail, id)
	return nil
}

// OpenAllReviews opens the all-reviews overlay for listingID.
func (s *Session) OpenAllReviews(listingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Open(domain.OverlayAllReviews, listingID)
}

// OpenOrders opens the orders overlay.
func (s *Session) OpenOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Open(domain.OverlayOrders, "")
}

// OpenReviewEditor opens the review editor on listingID. When the all-reviews
// overlay is open it is closed first.
func (s *Session) OpenReviewEditor(listingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.views.IsOpen(domain.OverlayAllReviews) {
		s.views.Switch(domain.OverlayAllReviews, domain.OverlayReviewEditor, listingID)
		return
	}
	s.views.Open(domain.OverlayReviewEditor, listingID)
}

// CloseOverlay closes one overlay kind.
func (s *Session) CloseOverlay(kind domain.OverlayKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Close(kind)
}

// Overlays returns the state of every overlay kind.
func (s *Session) Overlays() map[domain.OverlayKind]domain.OverlayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views.Snapshot()
}

// ToggleSave flips the saved state of listingID and returns the new state.
func (s *Session) ToggleSave(ctx context.Context, listingID string) bool {
	s.mu.Lock()
	saved := s.saved.Toggle(listingID)
	s.mu.Unlock()

	s.metrics.SaveToggled(saved)
	subject := domain.SubjectListingUnsaved
	if saved {
		subject = domain.SubjectListingSaved
	}
	s.publish(ctx, subject, map[string]interface{}{
		"listing_id": listingID,
		"saved":      saved,
	})
	return saved
}

// IsSaved reports whether listingID is saved.
func (s *Session) IsSaved(listingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved.Contains(listingID)
}

// SavedIDs returns the saved listing IDs, sorted.
func (s *Session) SavedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved.IDs()
}

// SubmitReview writes the review for listingID and closes the editor on success.
// A listing that already has a review yields domain.ErrDuplicateReview and nothing changes.
func (s *Session) SubmitReview(ctx context.Context, listingID string, rating int, comment string) (domain.UserReview, error) {
	s.mu.Lock()
	review, err := s.reviews.Submit(listingID, rating, comment)
	if err == nil {
		s.views.Close(domain.OverlayReviewEditor)
	}
	s.mu.Unlock()

	s.metrics.ReviewAction("submit", err)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			s.logger.Info("Ignoring duplicate review submit", zap.String("listing_id", listingID))
		} else {
			s.logger.Debug("Rejected review submit", zap.String("listing_id", listingID), zap.Error(err))
		}
		return domain.UserReview{}, err
	}

	s.publish(ctx, domain.SubjectReviewSubmitted, map[string]interface{}{
		"review_id":  review.ID,
		"listing_id": review.ListingID,
		"rating":     review.Rating,
		"created_at": review.UpdatedAt.Format(time.RFC3339Nano),
	})
	return review, nil
}

// EditReview changes the rating and comment of reviewID and closes the editor on success.
func (s *Session) EditReview(ctx context.Context, reviewID string, rating int, comment string) (domain.UserReview, error) {
	s.mu.Lock()
	review, err := s.reviews.Edit(reviewID, rating, comment)
	if err == nil {
		s.views.Close(domain.OverlayReviewEditor)
	}
	s.mu.Unlock()

	s.metrics.ReviewAction("edit", err)
	if err != nil {
		return domain.UserReview{}, err
	}
	s.publish(ctx, domain.SubjectReviewEdited, map[string]interface{}{
		"review_id":  review.ID,
		"listing_id": review.ListingID,
		"rating":     review.Rating,
		"updated_at": review.UpdatedAt.Format(time.RFC3339Nano),
	})
	return review, nil
}

// DeleteReview removes reviewID and reports whether it existed.
func (s *Session) DeleteReview(ctx context.Context, reviewID string) bool {
	s.mu.Lock()
	removed := s.reviews.Delete(reviewID)
	s.mu.Unlock()

	if !removed {
		s.metrics.ReviewAction("delete", domain.ErrReviewNotFound)
		return false
	}
	s.metrics.ReviewAction("delete", nil)
	s.publish(ctx, domain.SubjectReviewDeleted, map[string]interface{}{"review_id": reviewID})
	return true
}

// ReviewFor returns the session's review of listingID, if any.
func (s *Session) ReviewFor(listingID string) (domain.UserReview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.FindByListing(listingID)
}

// Reviews returns every review, newest first.
func (s *Session) Reviews() []domain.UserReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.All()
}

// Buy places an order for listingID and closes the detail overlay.
func (s *Session) Buy(ctx context.Context, listingID string) (domain.Order, error) {
	listing, err := s.store.FindListing(listingID)
	if err != nil {
		return domain.Order{}, err
	}

	s.mu.Lock()
	order, err := s.orders.PlaceOrder(listing)
	if err == nil {
		s.views.Close(domain.OverlayDetail)
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("Failed to place order", zap.String("listing_id", listingID), zap.Error(err))
		return domain.Order{}, err
	}

	s.metrics.OrderPlaced()
	s.logger.Info("Order placed", zap.String("order_id", order.ID), zap.String("listing_id", listingID))
	s.publish(ctx, domain.SubjectOrderPlaced, map[string]interface{}{
		"order_id":   order.ID,
		"listing_id": order.Listing.ListingID,
		"title":      order.Listing.Title,
		"price":      order.Listing.Price,
		"currency":   order.Listing.Currency,
		"status":     order.Status,
		"created_at": order.CreatedAt.Format(time.RFC3339Nano),
	})
	return order, nil
}

// Orders returns the order log, most recent first.
func (s *Session) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Orders()
}

// Exit closes every overlay and hands page to the navigator.
func (s *Session) Exit(page string) {
	s.mu.Lock()
	s.views.CloseAll()
	s.mu.Unlock()
	if s.navigate != nil {
		s.navigate(page)
	}
}

func (s *Session) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, data); err != nil {
		s.logger.Warn("Failed to publish session event", zap.String("subject", subject), zap.Error(err))
	}
}
