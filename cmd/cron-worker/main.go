package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shopsight-ai/shopsight-backend/internal/scoring"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
	"github.com/shopsight-ai/shopsight-backend/pkg/pubsub"
)

// Runs the full scoring pipeline on a fixed interval: retrain, then score
// every unshipped order. The job writes predictions straight into durable
// storage, so the API picks them up on its next snapshot acquire.
func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events *scoring.Events
	if cfg.PubSub.Enabled {
		psClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(ctx, "error closing pubsub", err)
			}
		}()
		events = scoring.NewEvents(psClient.ScoringPublisher(), logg)
	}

	svc := scoring.NewService(scoring.ServiceParams{
		Runner:  scoring.NewLocalRunner(cfg.Scoring),
		Events:  events,
		Logger:  logg,
		Metrics: metrics.NewScoringMetrics(nil),
	})

	interval := cfg.Scoring.PipelineInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	logg.Info(logg.WithField(ctx, "interval", interval.String()), "starting pipeline loop")

	runOnce(ctx, svc, logg)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logg.Info(ctx, "shutting down pipeline loop")
			return
		case <-ticker.C:
			runOnce(ctx, svc, logg)
		}
	}
}

func runOnce(ctx context.Context, svc *scoring.Service, logg *logger.Logger) {
	if _, err := svc.Trigger(ctx, scoring.ModeFull); err != nil {
		logg.Error(ctx, "pipeline run failed", err)
	}
}
