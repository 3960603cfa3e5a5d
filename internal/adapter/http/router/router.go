package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nexus-marketplace/catalog-service/internal/adapter/http/handler"
	"github.com/nexus-marketplace/catalog-service/internal/adapter/http/middleware"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/platform/metrics"
)

const requestTimeout = 30 * time.Second

// NewRouter builds the HTTP surface. limiter may be nil to disable rate limiting.
func NewRouter(h *handler.CatalogHandler, limiter *middleware.RateLimiter, log *logger.Logger, m *metrics.MetricsManager) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.RequestLogger(log, m))
	mux.Use(chimw.Recoverer)
	mux.Use(chimw.Timeout(requestTimeout))

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Route("/api/catalog", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		SetupCatalogRoutes(r, h)
	})
	return mux
}

// SetupCatalogRoutes mounts the catalog session routes on r.
func SetupCatalogRoutes(r chi.Router, h *handler.CatalogHandler) {
	r.Get("/", h.HandleGetCatalog)
	r.Put("/query", h.HandleUpdateQuery)
	r.Get("/sorts", h.HandleListSorts)
	r.Put("/filters", h.HandleApplyFilters)
	r.Delete("/filters", h.HandleClearFilters)
	r.Post("/reload", h.HandleReload)

	r.Get("/listings/{listingId}", h.HandleGetListing)
	r.Post("/listings/{listingId}/save", h.HandleToggleSave)
	r.Post("/listings/{listingId}/reviews", h.HandleSubmitReview)
	r.Post("/listings/{listingId}/orders", h.HandleBuy)

	r.Get("/saved", h.HandleListSaved)
	r.Get("/reviews", h.HandleListReviews)
	r.Put("/reviews/{reviewId}", h.HandleEditReview)
	r.Delete("/reviews/{reviewId}", h.HandleDeleteReview)
	r.Get("/orders", h.HandleListOrders)

	r.Get("/overlays", h.HandleGetOverlays)
	r.Post("/overlays/{kind}", h.HandleOpenOverlay)
	r.Delete("/overlays/{kind}", h.HandleCloseOverlay)

	r.Post("/exit", h.HandleExit)
}
