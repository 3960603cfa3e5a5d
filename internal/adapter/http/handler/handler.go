package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/pipeline"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/usecase"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

// CatalogSession is the set of intents and views the HTTP surface drives.
type CatalogSession interface {
	View() usecase.CatalogView
	Listing(id string) (domain.Listing, error)
	Query() pipeline.Query
	Reload(ctx context.Context) int

	SetSearch(text string)
	SetCategoryTab(category string)
	SetSort(key domain.SortKey)
	ApplyFilters(c domain.FilterCriteria)
	ClearFilters()

	ViewListing(id string) error
	OpenAllReviews(listingID string)
	OpenOrders()
	OpenReviewEditor(listingID string)
	OpenFilters()
	CloseOverlay(kind domain.OverlayKind)
	Overlays() map[domain.OverlayKind]domain.OverlayState
	Exit(page string)

	ToggleSave(ctx context.Context, listingID string) bool
	IsSaved(listingID string) bool
	SavedIDs() []string

	SubmitReview(ctx context.Context, listingID string, rating int, comment string) (domain.UserReview, error)
	EditReview(ctx context.Context, reviewID string, rating int, comment string) (domain.UserReview, error)
	DeleteReview(ctx context.Context, reviewID string) bool
	ReviewFor(listingID string) (domain.UserReview, bool)
	Reviews() []domain.UserReview

	Buy(ctx context.Context, listingID string) (domain.Order, error)
	Orders() []domain.Order
}

// CatalogHandler serves the catalog session over JSON.
type CatalogHandler struct {
	session CatalogSession
	logger  *logger.Logger
}

// NewCatalogHandler creates a handler over session.
func NewCatalogHandler(session CatalogSession, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		session: session,
		logger:  log.Named("CatalogHTTPHandler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, code int, msg string) {
	respondWithJSON(w, code, errorResponse{Error: msg})
}

// handleDomainError maps domain sentinel errors to HTTP status codes.
func (h *CatalogHandler) handleDomainError(w http.ResponseWriter, err error, defaultMessage string) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrReviewNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateReview):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidReview):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidListing), errors.Is(err, domain.ErrInvalidTransition):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error(defaultMessage, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, defaultMessage)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
