package scoring

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
)

// Outcome is what a successful run reports back to the API.
type Outcome struct {
	Stdout string
	Stderr string
}

type ServiceParams struct {
	Runner  Runner
	Events  *Events
	Logger  *logger.Logger
	Metrics *metrics.ScoringMetrics
}

// Service triggers the external scoring job. Runs are synchronous: the
// caller waits for the job to finish before reading fresh predictions.
type Service struct {
	runner  Runner
	events  *Events
	logg    *logger.Logger
	metrics *metrics.ScoringMetrics
}

func NewService(p ServiceParams) *Service {
	return &Service{
		runner:  p.Runner,
		events:  p.Events,
		logg:    p.Logger,
		metrics: p.Metrics,
	}
}

// Trigger runs the job in the given mode. Job errors come back with their
// JOB_UNAVAILABLE / JOB_FAILED codes intact; anything uncoded is wrapped as
// JOB_FAILED.
func (s *Service) Trigger(ctx context.Context, mode Mode) (Outcome, error) {
	started := time.Now()
	s.logg.Info(ctx, fmt.Sprintf("starting scoring job (mode %s)", mode))

	result, err := s.runner.Run(ctx, mode)
	duration := time.Since(started)
	s.metrics.ObserveRun(string(mode), duration)

	if err != nil {
		s.metrics.IncRun(string(mode), metrics.OutcomeFailure)
		s.logg.Error(ctx, "scoring job failed", err)
		s.events.Publish(ctx, RunEvent{
			Mode:       string(mode),
			Outcome:    metrics.OutcomeFailure,
			DurationMS: duration.Milliseconds(),
			OccurredAt: time.Now().UTC(),
		})
		if typed := pkgerrors.As(err); typed != nil {
			return Outcome{Stdout: result.Stdout, Stderr: result.Stderr}, err
		}
		return Outcome{Stdout: result.Stdout, Stderr: result.Stderr},
			pkgerrors.Wrap(pkgerrors.CodeJobFailed, err, "running scoring job")
	}

	s.metrics.IncRun(string(mode), metrics.OutcomeSuccess)
	s.logg.Info(ctx, fmt.Sprintf("scoring job finished in %s", result.Duration.Round(time.Millisecond)))
	s.events.Publish(ctx, RunEvent{
		Mode:       string(mode),
		Outcome:    metrics.OutcomeSuccess,
		DurationMS: duration.Milliseconds(),
		OccurredAt: time.Now().UTC(),
	})

	return Outcome{Stdout: result.Stdout, Stderr: result.Stderr}, nil
}
