package scoring

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
)

// stderrDetailLimit bounds how much job stderr is attached to error details.
const stderrDetailLimit = 4096

// LocalRunner invokes the scoring job as a subprocess. The job owns its own
// access to the durable snapshot; this process only observes the exit status.
type LocalRunner struct {
	cfg config.ScoringConfig
}

func NewLocalRunner(cfg config.ScoringConfig) *LocalRunner {
	return &LocalRunner{cfg: cfg}
}

func (r *LocalRunner) Run(ctx context.Context, mode Mode) (RunResult, error) {
	if strings.TrimSpace(r.cfg.Command) == "" {
		return RunResult{}, pkgerrors.New(pkgerrors.CodeJobUnavailable, "scoring job command is not configured")
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.cfg.Args...), "--mode", string(mode))
	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Dir = r.cfg.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	result := RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return result, pkgerrors.
			Wrap(pkgerrors.CodeJobFailed, err, "scoring job timed out").
			WithDetails(map[string]any{"timeout": r.cfg.Timeout.String()})
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, pkgerrors.
			Wrap(pkgerrors.CodeJobFailed, err, "scoring job exited with an error").
			WithDetails(map[string]any{
				"exit_code": result.ExitCode,
				"stderr":    truncate(result.Stderr, stderrDetailLimit),
			})
	}

	// The process never started: missing binary, permissions, bad workdir.
	return result, pkgerrors.
		Wrap(pkgerrors.CodeJobUnavailable, err, "scoring job could not be started").
		WithDetails(map[string]any{"command": r.cfg.Command})
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
