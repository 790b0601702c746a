package store

import (
	"context"
	"time"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	pkgerrors "github.com/shopsight-ai/shopsight-backend/pkg/errors"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
)

// ObjectStore is the durable-blob backend the gateway reads and writes.
// Satisfied by the GCS client and the local directory store.
type ObjectStore interface {
	Download(ctx context.Context, object string) ([]byte, error)
	Upload(ctx context.Context, object string, data []byte) error
}

type GatewayParams struct {
	Objects ObjectStore
	Codec   *snapshot.Codec
	Config  config.SnapshotConfig
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Gateway runs the acquire/mutate/persist cycle against the durable blob.
//
// Writes are last-writer-wins: two overlapping mutating requests each stage
// their own copy, and whichever releases second overwrites the first upload
// wholesale. Callers that need stronger guarantees must serialize above this
// layer.
type Gateway struct {
	objects ObjectStore
	codec   *snapshot.Codec
	key     string
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

func NewGateway(p GatewayParams) *Gateway {
	return &Gateway{
		objects: p.Objects,
		codec:   p.Codec,
		key:     p.Config.ObjectKey,
		logg:    p.Logger,
		metrics: p.Metrics,
	}
}

// Acquire downloads the current blob and materializes a private handle for
// the caller. Download failures surface as STORAGE_UNAVAILABLE; decode
// failures keep the codec's CORRUPT_SNAPSHOT code.
func (g *Gateway) Acquire(ctx context.Context) (*snapshot.Handle, error) {
	started := time.Now()

	blob, err := g.objects.Download(ctx, g.key)
	if err != nil {
		g.metrics.IncAcquire(metrics.OutcomeFailure)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "downloading store snapshot")
	}

	handle, err := g.codec.Decode(ctx, blob)
	if err != nil {
		g.metrics.IncAcquire(metrics.OutcomeFailure)
		return nil, err
	}

	g.metrics.IncAcquire(metrics.OutcomeSuccess)
	g.metrics.ObserveDuration("acquire", time.Since(started))
	return handle, nil
}

// Release finishes a cycle. When mutated is true the handle is encoded and
// uploaded before teardown; otherwise the staged copy is discarded and the
// durable blob is left untouched.
func (g *Gateway) Release(ctx context.Context, h *snapshot.Handle, mutated bool) error {
	if h == nil {
		return nil
	}

	if !mutated {
		if err := h.Close(); err != nil {
			g.logg.Warn(ctx, "discarding snapshot handle: "+err.Error())
		}
		return nil
	}

	started := time.Now()

	blob, err := g.codec.Encode(ctx, h)
	if err != nil {
		g.metrics.IncPersist(metrics.OutcomeFailure)
		return err
	}

	if err := g.objects.Upload(ctx, g.key, blob); err != nil {
		g.metrics.IncPersist(metrics.OutcomeFailure)
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "uploading store snapshot")
	}

	g.metrics.IncPersist(metrics.OutcomeSuccess)
	g.metrics.ObserveDuration("persist", time.Since(started))
	return nil
}
