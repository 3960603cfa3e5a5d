package config

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

// Config holds all configuration for the service.
// Optional adapters (Mongo, Redis, NATS, MinIO, OTLP) are disabled when their address is empty.
type Config struct {
	ServiceName            string        `mapstructure:"SERVICE_NAME"`
	HTTPPort               string        `mapstructure:"HTTP_PORT"`
	MongoURI               string        `mapstructure:"MONGO_URI"`
	MongoDatabase          string        `mapstructure:"MONGO_DATABASE"`
	MongoCollection        string        `mapstructure:"MONGO_COLLECTION"`
	FetchTimeout           time.Duration `mapstructure:"FETCH_TIMEOUT"`
	RedisAddress           string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword          string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int           `mapstructure:"REDIS_DB"`
	FeedCacheTTL           time.Duration `mapstructure:"FEED_CACHE_TTL"`
	NATSURL                string        `mapstructure:"NATS_URL"`
	MinIOEndpoint          string        `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey         string        `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey         string        `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket            string        `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL            bool          `mapstructure:"MINIO_USE_SSL"`
	ImageURLExpiry         time.Duration `mapstructure:"IMAGE_URL_EXPIRY"`
	PrometheusMetricsPort  string        `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	RateLimitRPS           float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst         int           `mapstructure:"RATE_LIMIT_BURST"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	LogFormat              string        `mapstructure:"LOG_FORMAT"`
}

// LoggerConfig returns the logger settings carried by the config.
func (c *Config) LoggerConfig() *logger.LoggerConfig {
	cfg := logger.DefaultConfig()
	if c.LogLevel != "" {
		cfg.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Format = c.LogFormat
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "catalog-service")
	v.SetDefault("HTTP_PORT", "8085")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "marketplace")
	v.SetDefault("MONGO_COLLECTION", "products")
	v.SetDefault("FETCH_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FEED_CACHE_TTL", "2m")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "listing-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("IMAGE_URL_EXPIRY", "1h")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("RATE_LIMIT_RPS", 20.0)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// LoadConfig reads configuration from environment variables on top of defaults.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	return load(viper.New(), appLogger)
}

func load(v *viper.Viper, appLogger *logger.Logger) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.MongoURI == "" {
		appLogger.Warn("MONGO_URI is not set; the catalog will serve the static seed set only.")
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.RateLimitBurst < 1 {
		cfg.RateLimitBurst = 1
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_present", cfg.MongoURI != ""),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("minio_endpoint", cfg.MinIOEndpoint),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}
