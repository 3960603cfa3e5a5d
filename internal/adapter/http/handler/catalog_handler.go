package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

type queryRequest struct {
	Search *string `json:"search"`
	Tab    *string `json:"tab"`
	Sort   *string `json:"sort"`
}

type listingResponse struct {
	domain.Listing
	DiscountPercent int                `json:"discountPercent"`
	InStock         bool               `json:"inStock"`
	Saved           bool               `json:"saved"`
	Review          *domain.UserReview `json:"review,omitempty"`
}

type sortOption struct {
	Key domain.SortKey `json:"key"`
}

// HandleGetCatalog returns the visible grid with counts and overlay state.
// Optional search, tab and sort query parameters are applied first.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("search") {
		h.session.SetSearch(q.Get("search"))
	}
	if q.Has("tab") {
		h.session.SetCategoryTab(q.Get("tab"))
	}
	if q.Has("sort") {
		h.session.SetSort(domain.SortKey(q.Get("sort")))
	}
	respondWithJSON(w, http.StatusOK, h.session.View())
}

// HandleUpdateQuery changes any of search, tab and sort.
func (h *CatalogHandler) HandleUpdateQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Search != nil {
		h.session.SetSearch(*req.Search)
	}
	if req.Tab != nil {
		h.session.SetCategoryTab(*req.Tab)
	}
	if req.Sort != nil {
		h.session.SetSort(domain.SortKey(*req.Sort))
	}
	respondWithJSON(w, http.StatusOK, h.session.Query())
}

// HandleListSorts returns the available orderings in menu order.
func (h *CatalogHandler) HandleListSorts(w http.ResponseWriter, _ *http.Request) {
	out := make([]sortOption, len(domain.SortKeys))
	for i, k := range domain.SortKeys {
		out[i] = sortOption{Key: k}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// HandleApplyFilters replaces the filter criteria and closes the filter panel.
func (h *CatalogHandler) HandleApplyFilters(w http.ResponseWriter, r *http.Request) {
	var c domain.FilterCriteria
	if err := decodeJSON(r, &c); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.session.ApplyFilters(c)
	q := h.session.Query()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"criteria":      q.Criteria,
		"activeFilters": q.Criteria.ActiveCount(),
	})
}

// HandleClearFilters resets the criteria.
func (h *CatalogHandler) HandleClearFilters(w http.ResponseWriter, _ *http.Request) {
	h.session.ClearFilters()
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetListing returns one listing with the session's saved and review state.
func (h *CatalogHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingId")
	l, err := h.session.Listing(listingID)
	if err != nil {
		h.handleDomainError(w, err, "Failed to get listing")
		return
	}
	resp := listingResponse{
		Listing:         l,
		DiscountPercent: l.DiscountPercent(),
		InStock:         l.InStock(),
		Saved:           h.session.IsSaved(l.ID),
	}
	if rv, ok := h.session.ReviewFor(l.ID); ok {
		resp.Review = &rv
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// HandleReload refetches the remote feed.
func (h *CatalogHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	n := h.session.Reload(r.Context())
	h.logger.Info("Catalog reloaded", zap.Int("remote", n))
	respondWithJSON(w, http.StatusOK, map[string]int{"remote": n})
}
