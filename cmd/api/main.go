package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shopsight-ai/shopsight-backend/api/routes"
	"github.com/shopsight-ai/shopsight-backend/internal/catalog"
	"github.com/shopsight-ai/shopsight-backend/internal/orders"
	"github.com/shopsight-ai/shopsight-backend/internal/predictions"
	"github.com/shopsight-ai/shopsight-backend/internal/scoring"
	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
	"github.com/shopsight-ai/shopsight-backend/pkg/pubsub"
	"github.com/shopsight-ai/shopsight-backend/pkg/storage/gcs"
	"github.com/shopsight-ai/shopsight-backend/pkg/storage/local"
)

type objectStore interface {
	Download(ctx context.Context, object string) ([]byte, error)
	Upload(ctx context.Context, object string, data []byte) error
	Ping(ctx context.Context) error
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	objects, err := newObjectStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap blob storage", err)
		os.Exit(1)
	}

	codec, err := snapshot.NewCodec(cfg.Snapshot, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap snapshot codec", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	var reg prometheus.Registerer
	if cfg.Metrics.Enabled {
		reg = registry
	}

	gateway := store.NewGateway(store.GatewayParams{
		Objects: objects,
		Codec:   codec,
		Config:  cfg.Snapshot,
		Logger:  logg,
		Metrics: metrics.NewStoreMetrics(reg),
	})

	ordersSvc := orders.NewService(orders.ServiceParams{
		Repo:    orders.NewRepository(),
		Logger:  logg,
		Metrics: metrics.NewOrderMetrics(reg),
	})

	var events *scoring.Events
	if cfg.PubSub.Enabled {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		events = scoring.NewEvents(psClient.ScoringPublisher(), logg)
	}

	scoringSvc := scoring.NewService(scoring.ServiceParams{
		Runner:  scoring.NewLocalRunner(cfg.Scoring),
		Events:  events,
		Logger:  logg,
		Metrics: metrics.NewScoringMetrics(reg),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			Gateway:     gateway,
			Catalog:     catalog.NewRepository(),
			Orders:      ordersSvc,
			Predictions: predictions.NewRepository(),
			Scoring:     scoringSvc,
			Objects:     objects,
			Registry:    registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newObjectStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (objectStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendLocal:
		return local.NewStore(cfg.Storage, logg)
	default:
		return gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	}
}
