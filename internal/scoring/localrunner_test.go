package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
)

func TestRunUnconfiguredCommand(t *testing.T) {
	runner := NewLocalRunner(config.ScoringConfig{})

	_, err := runner.Run(context.Background(), ModeInferenceOnly)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeJobUnavailable))
}

func TestRunMissingBinary(t *testing.T) {
	runner := NewLocalRunner(config.ScoringConfig{Command: "/nonexistent/scoring-job"})

	_, err := runner.Run(context.Background(), ModeInferenceOnly)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeJobUnavailable))
}

func TestRunCapturesStdout(t *testing.T) {
	runner := NewLocalRunner(config.ScoringConfig{
		Command: "sh",
		Args:    []string{"-c", "echo scored 12 orders; echo ignored-args >/dev/null"},
	})

	result, err := runner.Run(context.Background(), ModeInferenceOnly)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "scored 12 orders")
	assert.Zero(t, result.ExitCode)
}

func TestRunNonZeroExit(t *testing.T) {
	runner := NewLocalRunner(config.ScoringConfig{
		Command: "sh",
		Args:    []string{"-c", "echo model not found >&2; exit 3; true"},
	})

	result, err := runner.Run(context.Background(), ModeFull)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeJobFailed))
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "model not found")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, details["exit_code"])
	assert.Contains(t, details["stderr"], "model not found")
}

func TestRunTimeout(t *testing.T) {
	runner := NewLocalRunner(config.ScoringConfig{
		Command: "sh",
		Args:    []string{"-c", "sleep 5; true"},
		Timeout: 100 * time.Millisecond,
	})

	_, err := runner.Run(context.Background(), ModeInferenceOnly)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeJobFailed))
}

func TestRunAppendsModeFlag(t *testing.T) {
	runner := NewLocalRunner(config.ScoringConfig{
		Command: "sh",
		Args:    []string{"-c", `echo "$1 $2"`, "argv0"},
	})

	result, err := runner.Run(context.Background(), ModeInferenceOnly)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "--mode inference_only")
}
