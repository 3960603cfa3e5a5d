package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type overlayRequest struct {
	Ref string `json:"ref"`
}

type exitRequest struct {
	Page string `json:"page"`
}

// HandleToggleSave flips the saved state of a listing.
func (h *CatalogHandler) HandleToggleSave(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingId")
	saved := h.session.ToggleSave(r.Context(), listingID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"listingId": listingID, "saved": saved})
}

// HandleListSaved returns the saved listing IDs.
func (h *CatalogHandler) HandleListSaved(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{"listingIds": h.session.SavedIDs()})
}

// HandleSubmitReview writes the session's review of a listing.
func (h *CatalogHandler) HandleSubmitReview(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingId")
	if _, err := h.session.Listing(listingID); err != nil {
		h.handleDomainError(w, err, "Failed to submit review")
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	review, err := h.session.SubmitReview(r.Context(), listingID, req.Rating, req.Comment)
	if err != nil {
		h.handleDomainError(w, err, "Failed to submit review")
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

// HandleEditReview changes an existing review.
func (h *CatalogHandler) HandleEditReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	review, err := h.session.EditReview(r.Context(), chi.URLParam(r, "reviewId"), req.Rating, req.Comment)
	if err != nil {
		h.handleDomainError(w, err, "Failed to edit review")
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// HandleDeleteReview removes a review.
func (h *CatalogHandler) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if !h.session.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")) {
		h.handleDomainError(w, domain.ErrReviewNotFound, "Failed to delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListReviews returns the session's reviews, newest first.
func (h *CatalogHandler) HandleListReviews(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Reviews())
}

// HandleBuy places an order for a listing.
func (h *CatalogHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	order, err := h.session.Buy(r.Context(), chi.URLParam(r, "listingId"))
	if err != nil {
		h.handleDomainError(w, err, "Failed to place order")
		return
	}
	respondWithJSON(w, http.StatusCreated, order)
}

// HandleListOrders returns the order log, most recent first.
func (h *CatalogHandler) HandleListOrders(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Orders())
}

// HandleGetOverlays returns the state of every overlay kind.
func (h *CatalogHandler) HandleGetOverlays(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Overlays())
}

// HandleOpenOverlay opens an overlay kind on the reference in the body.
func (h *CatalogHandler) HandleOpenOverlay(w http.ResponseWriter, r *http.Request) {
	kind := domain.OverlayKind(chi.URLParam(r, "kind"))
	if !kind.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown overlay kind")
		return
	}
	var req overlayRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	switch kind {
	case domain.OverlayDetail:
		if err := h.session.ViewListing(req.Ref); err != nil {
			h.handleDomainError(w, err, "Failed to open listing")
			return
		}
	case domain.OverlayReviewEditor, domain.OverlayAllReviews:
		if _, err := h.session.Listing(req.Ref); err != nil {
			h.handleDomainError(w, err, "Failed to open overlay")
			return
		}
		if kind == domain.OverlayReviewEditor {
			h.session.OpenReviewEditor(req.Ref)
		} else {
			h.session.OpenAllReviews(req.Ref)
		}
	case domain.OverlayOrders:
		h.session.OpenOrders()
	case domain.OverlayFilterPanel:
		h.session.OpenFilters()
	}
	respondWithJSON(w, http.StatusOK, h.session.Overlays())
}

// HandleCloseOverlay closes an overlay kind.
func (h *CatalogHandler) HandleCloseOverlay(w http.ResponseWriter, r *http.Request) {
	kind := domain.OverlayKind(chi.URLParam(r, "kind"))
	if !kind.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown overlay kind")
		return
	}
	h.session.CloseOverlay(kind)
	respondWithJSON(w, http.StatusOK, h.session.Overlays())
}

// HandleExit closes every overlay and hands off to another page.
func (h *CatalogHandler) HandleExit(w http.ResponseWriter, r *http.Request) {
	var req exitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	page := strings.TrimSpace(req.Page)
	if page == "" {
		respondWithError(w, http.StatusBadRequest, "page is required")
		return
	}
	h.session.Exit(page)
	respondWithJSON(w, http.StatusOK, map[string]string{"page": page})
}
