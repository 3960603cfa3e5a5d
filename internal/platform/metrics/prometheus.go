package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

// MetricsManager holds the catalog's Prometheus metrics. A nil *MetricsManager is valid and records nothing.
type MetricsManager struct {
	Registry              *prometheus.Registry
	OrdersPlacedTotal     prometheus.Counter
	ReviewActionsTotal    *prometheus.CounterVec
	SaveTogglesTotal      *prometheus.CounterVec
	FeedFallbacksTotal    prometheus.Counter
	RemoteListingsLoaded  prometheus.Gauge
	HTTPRequestLatency    *prometheus.HistogramVec
	HTTPRequestErrorTotal *prometheus.CounterVec
}

// NewMetricsManager registers the catalog metrics on a private registry.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders placed in the session.",
		}),
		ReviewActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_actions_total",
			Help:      "Review ledger operations by action and outcome.",
		}, []string{"action", "outcome"}),
		SaveTogglesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_toggles_total",
			Help:      "Save set toggles by resulting state.",
		}, []string{"state"}),
		FeedFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fallbacks_total",
			Help:      "Remote feed loads that fell back to the static seed set.",
		}),
		RemoteListingsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remote_listings_loaded",
			Help:      "Number of remote listings merged by the last successful load.",
		}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_latency_seconds",
			Help:      "Latency of HTTP requests by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		HTTPRequestErrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_errors_total",
			Help:      "HTTP responses with status >= 400 by route and code class.",
		}, []string{"route", "class"}),
	}

	registry.MustRegister(
		m.OrdersPlacedTotal,
		m.ReviewActionsTotal,
		m.SaveTogglesTotal,
		m.FeedFallbacksTotal,
		m.RemoteListingsLoaded,
		m.HTTPRequestLatency,
		m.HTTPRequestErrorTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// OrderPlaced counts one order.
func (m *MetricsManager) OrderPlaced() {
	if m == nil {
		return
	}
	m.OrdersPlacedTotal.Inc()
}

// ReviewAction counts a review ledger call.
func (m *MetricsManager) ReviewAction(action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.ReviewActionsTotal.WithLabelValues(action, outcome).Inc()
}

// SaveToggled counts a save set toggle ending in the given membership.
func (m *MetricsManager) SaveToggled(saved bool) {
	if m == nil {
		return
	}
	state := "unsaved"
	if saved {
		state = "saved"
	}
	m.SaveTogglesTotal.WithLabelValues(state).Inc()
}

// FeedLoaded records the outcome of a remote feed load.
func (m *MetricsManager) FeedLoaded(remote int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.FeedFallbacksTotal.Inc()
		return
	}
	m.RemoteListingsLoaded.Set(float64(remote))
}

// ObserveHTTP records one HTTP request.
func (m *MetricsManager) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
	if status >= 400 {
		class := "4xx"
		if status >= 500 {
			class = "5xx"
		}
		m.HTTPRequestErrorTotal.WithLabelValues(route, class).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on port until ctx is cancelled. An empty port disables it.
func StartMetricsServer(ctx context.Context, port string, appLogger *logger.Logger, m *MetricsManager) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
