package controllers

import (
	"net/http"

	"github.com/shopsight-ai/shopsight-backend/api/responses"
	"github.com/shopsight-ai/shopsight-backend/internal/scoring"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

// RunScoring triggers an inference-only scoring run and blocks until the job
// finishes. The job writes predictions into durable storage itself; callers
// re-query the priority queue to observe them.
func RunScoring(svc *scoring.Service, logg *logger.Logger) http.HandlerFunc {
	return runJob(svc, logg, scoring.ModeInferenceOnly)
}

// RunPipeline triggers the full pipeline: retrain, then score.
func RunPipeline(svc *scoring.Service, logg *logger.Logger) http.HandlerFunc {
	return runJob(svc, logg, scoring.ModeFull)
}

func runJob(svc *scoring.Service, logg *logger.Logger, mode scoring.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		outcome, err := svc.Trigger(ctx, mode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"success": true,
			"stdout":  outcome.Stdout,
		})
	}
}
