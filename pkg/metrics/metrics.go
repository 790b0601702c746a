package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// StoreMetrics records snapshot gateway activity.
type StoreMetrics struct {
	acquires *prometheus.CounterVec
	persists *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewStoreMetrics registers the snapshot gateway metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	acquires := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_acquire_total",
		Help: "Snapshot acquisitions from durable storage.",
	}, []string{"outcome"})
	persists := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_persist_total",
		Help: "Snapshot writes back to durable storage.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_op_duration_seconds",
		Help:    "Duration of snapshot gateway operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	reg.MustRegister(acquires, persists, duration)
	return &StoreMetrics{
		acquires: acquires,
		persists: persists,
		duration: duration,
	}
}

func (s *StoreMetrics) IncAcquire(outcome string) {
	if s == nil || s.acquires == nil {
		return
	}
	s.acquires.WithLabelValues(outcome).Inc()
}

func (s *StoreMetrics) IncPersist(outcome string) {
	if s == nil || s.persists == nil {
		return
	}
	s.persists.WithLabelValues(outcome).Inc()
}

func (s *StoreMetrics) ObserveDuration(op string, d time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(op).Observe(d.Seconds())
}

// OrderMetrics counts order placement outcomes.
type OrderMetrics struct {
	placed *prometheus.CounterVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(placed)
	return &OrderMetrics{placed: placed}
}

func (o *OrderMetrics) IncPlaced(outcome string) {
	if o == nil || o.placed == nil {
		return
	}
	o.placed.WithLabelValues(outcome).Inc()
}

// ScoringMetrics records scoring job runs.
type ScoringMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewScoringMetrics(reg prometheus.Registerer) *ScoringMetrics {
	if reg == nil {
		return &ScoringMetrics{}
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoring_runs_total",
		Help: "Scoring job invocations by mode and outcome.",
	}, []string{"mode", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scoring_run_duration_seconds",
		Help:    "Duration of scoring job runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	reg.MustRegister(runs, duration)
	return &ScoringMetrics{runs: runs, duration: duration}
}

func (s *ScoringMetrics) IncRun(mode, outcome string) {
	if s == nil || s.runs == nil {
		return
	}
	s.runs.WithLabelValues(mode, outcome).Inc()
}

func (s *ScoringMetrics) ObserveRun(mode string, d time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(mode).Observe(d.Seconds())
}
