package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/app"
	"github.com/nexus-marketplace/catalog-service/internal/config"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Marketplace catalog view engine",
	Long: `catalog serves the marketplace catalog: the listing grid with search, category tabs,
advanced filters and sorting, plus saved items, reviews and orders for one session.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	RunE:  runServe,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Print the visible listings for a query",
	Long:  `Loads the catalog once (remote feed when MONGO_URI is set, else the static seed set) and prints the visible list.`,
	RunE:  runBrowse,
}

var (
	envFile  string
	logLevel string

	browseOpts browseOptions
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")

	f := browseCmd.Flags()
	f.StringVarP(&browseOpts.Search, "search", "s", "", "free-text search")
	f.StringVarP(&browseOpts.Tab, "tab", "t", "", "category tab")
	f.StringVar(&browseOpts.Sort, "sort", "", "sort order, e.g. \"Price: Low to High\"")
	f.StringVar(&browseOpts.Category, "category", "", "category filter")
	f.StringVar(&browseOpts.Condition, "condition", "", "condition filter")
	f.StringVar(&browseOpts.Brand, "brand", "", "brand filter")
	f.StringVar(&browseOpts.MinPrice, "min-price", "", "minimum price")
	f.StringVar(&browseOpts.MaxPrice, "max-price", "", "maximum price")
	f.Float64Var(&browseOpts.MinRating, "min-rating", 0, "minimum rating")
	f.BoolVar(&browseOpts.FreeShipping, "free-shipping", false, "only listings with free shipping")
	f.BoolVar(&browseOpts.FeaturedOnly, "featured", false, "only featured listings")
	f.BoolVar(&browseOpts.InStockOnly, "in-stock", false, "only listings in stock")
	f.BoolVar(&browseOpts.VerifiedOnly, "verified", false, "only verified sellers")
	f.StringVar(&browseOpts.Country, "country", "", "seller country")
	f.StringVar(&browseOpts.State, "state", "", "seller state or region")
	f.StringVar(&browseOpts.City, "city", "", "seller city")
	f.StringVarP(&browseOpts.Format, "output", "o", "table", "output format: table or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *logger.Logger, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	cfg, err := config.LoadConfig(logger.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logger.NewLogger(cfg.LoggerConfig()), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("Catalog service starting",
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_set", cfg.MongoURI != ""),
		zap.Bool("redis_set", cfg.RedisAddress != ""),
		zap.Bool("nats_set", cfg.NATSURL != ""),
		zap.Bool("minio_set", cfg.MinIOEndpoint != ""),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
	)
	if err := a.Serve(ctx); err != nil {
		return err
	}
	log.Info("Catalog service shut down gracefully")
	return nil
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Store.Load(ctx)
	browseOpts.apply(a.Session)
	return browseOpts.render(cmd.OutOrStdout(), a.Session.View())
}
