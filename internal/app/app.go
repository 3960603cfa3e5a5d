package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	redisCache "github.com/nexus-marketplace/catalog-service/internal/adapter/cache/redis"
	"github.com/nexus-marketplace/catalog-service/internal/adapter/http/handler"
	"github.com/nexus-marketplace/catalog-service/internal/adapter/http/middleware"
	"github.com/nexus-marketplace/catalog-service/internal/adapter/http/router"
	natsAdapter "github.com/nexus-marketplace/catalog-service/internal/adapter/messaging/nats"
	cachedSource "github.com/nexus-marketplace/catalog-service/internal/adapter/source/cache"
	mongoSource "github.com/nexus-marketplace/catalog-service/internal/adapter/source/mongodb"
	"github.com/nexus-marketplace/catalog-service/internal/adapter/storage/s3"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/seed"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/usecase"
	"github.com/nexus-marketplace/catalog-service/internal/config"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
	"github.com/nexus-marketplace/catalog-service/internal/platform/metrics"
	"github.com/nexus-marketplace/catalog-service/internal/platform/tracer"
	"github.com/nexus-marketplace/catalog-service/internal/port/cache"
)

const shutdownTimeout = 5 * time.Second

// App is the wired catalog service.
type App struct {
	Config  *config.Config
	Store   *usecase.CatalogStore
	Session *usecase.Session
	Metrics *metrics.MetricsManager

	logger   *logger.Logger
	limiter  *middleware.RateLimiter
	closers  []func(context.Context)
	tracerTP *sdktrace.TracerProvider
}

// Build connects every configured adapter and wires the catalog around them.
// Adapters whose address is empty are skipped. A configured adapter that cannot
// connect is logged and left out, so the catalog always starts on the seed set.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	a := &App{
		Config:  cfg,
		Metrics: metrics.NewMetricsManager(metricsNamespace(cfg.ServiceName)),
		logger:  log,
	}

	if cfg.OTExporterOTLPEndpoint != "" {
		a.tracerTP = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, log)
	} else {
		log.Info("Tracing disabled, OTEL_EXPORTER_OTLP_ENDPOINT not set")
	}

	mapper := usecase.NewRemoteMapper(a.buildImageResolver(ctx), log)
	a.Store = usecase.NewCatalogStore(seed.Listings(), a.buildSource(ctx), mapper, log, a.Metrics)
	a.Session = usecase.NewSession(a.Store, a.buildPublisher(), a.navigate, log, a.Metrics)
	return a, nil
}

func (a *App) buildSource(ctx context.Context) domain.ListingSource {
	cfg := a.Config
	if cfg.MongoURI == "" {
		a.logger.Info("MONGO_URI not set, serving the static seed set only")
		return nil
	}

	client, err := mongoSource.NewMongoDBConnection(ctx, cfg.MongoURI, cfg.FetchTimeout, a.logger)
	if err != nil {
		a.logger.Error("MongoDB source disabled, serving the static seed set only", zap.Error(err))
		return nil
	}
	a.closers = append(a.closers, func(ctx context.Context) {
		if err := client.Disconnect(ctx); err != nil {
			a.logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	})

	var src domain.ListingSource = mongoSource.NewListingSource(client.Database(cfg.MongoDatabase), cfg.MongoCollection, cfg.FetchTimeout, a.logger)
	if repo := a.buildCache(ctx); repo != nil {
		src = cachedSource.NewCachedSource(src, repo, cfg.FeedCacheTTL, a.logger)
	}
	return src
}

func (a *App) buildCache(ctx context.Context) cache.CacheRepository {
	cfg := a.Config
	if cfg.RedisAddress == "" {
		return nil
	}
	client, err := redisCache.NewRedisClient(ctx, redisCache.Options{
		Address:  cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, a.logger)
	if err != nil {
		a.logger.Warn("Feed cache disabled, Redis is unreachable", zap.Error(err))
		return nil
	}
	a.closers = append(a.closers, func(context.Context) {
		if err := client.Close(); err != nil {
			a.logger.Error("Error closing Redis client", zap.Error(err))
		}
	})
	return redisCache.NewRedisCacheRepository(client, a.logger)
}

func (a *App) buildImageResolver(ctx context.Context) domain.ImageResolver {
	cfg := a.Config
	if cfg.MinIOEndpoint == "" {
		return nil
	}
	resolver, err := s3.NewImageResolver(ctx, s3.Options{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		Bucket:    cfg.MinIOBucket,
		UseSSL:    cfg.MinIOUseSSL,
		URLExpiry: cfg.ImageURLExpiry,
	}, a.logger)
	if err != nil {
		a.logger.Warn("Image resolver disabled, image references are served as stored", zap.Error(err))
		return nil
	}
	return resolver
}

func (a *App) buildPublisher() domain.EventPublisher {
	cfg := a.Config
	if cfg.NATSURL == "" {
		a.logger.Info("NATS_URL not set, session events are logged only")
		return natsAdapter.NewLogPublisher(a.logger)
	}
	pub, err := natsAdapter.NewPublisher(cfg.NATSURL, a.logger, cfg.ServiceName)
	if err != nil {
		a.logger.Warn("NATS is unreachable, session events are logged only", zap.Error(err))
		return natsAdapter.NewLogPublisher(a.logger)
	}
	a.closers = append(a.closers, func(context.Context) { pub.Close() })
	return pub
}

func (a *App) navigate(page string) {
	a.logger.Info("Leaving catalog", zap.String("page", page))
}

// Handler builds the HTTP surface over the session.
func (a *App) Handler() http.Handler {
	if a.limiter == nil && a.Config.RateLimitRPS > 0 {
		a.limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(a.Config.RateLimitRPS),
			Burst: a.Config.RateLimitBurst,
		}, a.logger)
	}
	return router.NewRouter(handler.NewCatalogHandler(a.Session, a.logger), a.limiter, a.logger, a.Metrics)
}

// Serve loads the catalog in the background and serves HTTP and metrics until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	a.Store.LoadAsync(ctx)

	go func() {
		if err := metrics.StartMetricsServer(ctx, a.Config.PrometheusMetricsPort, a.logger, a.Metrics); err != nil {
			a.logger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:              ":" + a.Config.HTTPPort,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", a.Config.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases adapters in reverse order of creation.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.limiter != nil {
		a.limiter.Stop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
	a.closers = nil
	if a.tracerTP != nil {
		if err := a.tracerTP.Shutdown(ctx); err != nil {
			a.logger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
		a.tracerTP = nil
	}
}

func metricsNamespace(serviceName string) string {
	ns := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, serviceName)
	if ns == "" {
		return "catalog"
	}
	return ns
}
