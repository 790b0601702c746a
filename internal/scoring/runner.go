package scoring

import (
	"context"
	"time"
)

// Mode selects how much of the prediction pipeline a run executes.
type Mode string

const (
	// ModeInferenceOnly scores unshipped orders against the existing model.
	ModeInferenceOnly Mode = "inference_only"
	// ModeFull retrains the model before scoring.
	ModeFull Mode = "full"
)

// RunResult captures one completed job invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes the external scoring job and blocks until it finishes.
type Runner interface {
	Run(ctx context.Context, mode Mode) (RunResult, error)
}
