package scoring

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
)

type stubRunner struct {
	result   RunResult
	err      error
	lastMode Mode
}

func (s *stubRunner) Run(_ context.Context, mode Mode) (RunResult, error) {
	s.lastMode = mode
	return s.result, s.err
}

func newStubService(runner Runner) *Service {
	return NewService(ServiceParams{
		Runner:  runner,
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Metrics: metrics.NewScoringMetrics(nil),
	})
}

func TestTriggerSuccess(t *testing.T) {
	runner := &stubRunner{result: RunResult{Stdout: "scored 7 orders\n", Duration: 42 * time.Millisecond}}
	svc := newStubService(runner)

	outcome, err := svc.Trigger(context.Background(), ModeInferenceOnly)
	require.NoError(t, err)
	assert.Equal(t, "scored 7 orders\n", outcome.Stdout)
	assert.Equal(t, ModeInferenceOnly, runner.lastMode)
}

func TestTriggerPassesMode(t *testing.T) {
	runner := &stubRunner{}
	svc := newStubService(runner)

	_, err := svc.Trigger(context.Background(), ModeFull)
	require.NoError(t, err)
	assert.Equal(t, ModeFull, runner.lastMode)
}

func TestTriggerKeepsCodedErrors(t *testing.T) {
	runner := &stubRunner{
		result: RunResult{Stderr: "boom"},
		err:    pkgerrors.New(pkgerrors.CodeJobUnavailable, "scoring job command is not configured"),
	}
	svc := newStubService(runner)

	outcome, err := svc.Trigger(context.Background(), ModeInferenceOnly)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeJobUnavailable))
	assert.Equal(t, "boom", outcome.Stderr)
}

func TestTriggerWrapsUncodedErrors(t *testing.T) {
	runner := &stubRunner{err: errors.New("unexpected")}
	svc := newStubService(runner)

	_, err := svc.Trigger(context.Background(), ModeInferenceOnly)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeJobFailed))
}
