package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
	"github.com/shopsight-ai/shopsight-backend/pkg/storage/gcs"
	"github.com/shopsight-ai/shopsight-backend/pkg/storage/local"
)

// Creates an empty store snapshot with the full schema and uploads it to the
// configured blob backend. Intended for bootstrapping a fresh environment;
// refuses nothing, so pointing it at a live environment overwrites the store.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-snapshot"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var objects store.ObjectStore
	switch cfg.Storage.Backend {
	case config.StorageBackendLocal:
		objects, err = local.NewStore(cfg.Storage, logg)
	default:
		objects, err = gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	}
	if err != nil {
		logg.Error(ctx, "failed to bootstrap blob storage", err)
		os.Exit(1)
	}

	codec, err := snapshot.NewCodec(cfg.Snapshot, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap snapshot codec", err)
		os.Exit(1)
	}

	gateway := store.NewGateway(store.GatewayParams{
		Objects: objects,
		Codec:   codec,
		Config:  cfg.Snapshot,
		Logger:  logg,
		Metrics: metrics.NewStoreMetrics(nil),
	})

	handle, err := codec.Create(ctx)
	if err != nil {
		logg.Error(ctx, "failed to create snapshot", err)
		os.Exit(1)
	}

	if err := gateway.Release(ctx, handle, true); err != nil {
		logg.Error(ctx, "failed to upload snapshot", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "object", cfg.Snapshot.ObjectKey), "seed snapshot uploaded")
}
