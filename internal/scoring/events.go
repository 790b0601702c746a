package scoring

import (
	"context"
	"encoding/json"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

// RunEvent is published after every scoring invocation so downstream
// consumers can react to fresh predictions.
type RunEvent struct {
	Mode       string    `json:"mode"`
	Outcome    string    `json:"outcome"`
	DurationMS int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Events publishes run events to Pub/Sub. A nil *Events drops everything,
// which is how deployments without Pub/Sub run.
type Events struct {
	publisher *pubsub.Publisher
	logg      *logger.Logger
}

func NewEvents(publisher *pubsub.Publisher, logg *logger.Logger) *Events {
	if publisher == nil {
		return nil
	}
	return &Events{publisher: publisher, logg: logg}
}

// Publish is best effort: a publish failure is logged and swallowed, never
// surfaced to the caller of the scoring run.
func (e *Events) Publish(ctx context.Context, event RunEvent) {
	if e == nil || e.publisher == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		e.logg.Warn(ctx, "encoding scoring event: "+err.Error())
		return
	}

	result := e.publisher.Publish(ctx, &pubsub.Message{Data: payload})
	if _, err := result.Get(ctx); err != nil {
		e.logg.Warn(ctx, "publishing scoring event: "+err.Error())
	}
}
