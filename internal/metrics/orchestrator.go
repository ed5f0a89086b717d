package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
)

var (
	orchestratorTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dal",
		Subsystem: "orchestrator",
		Name:      "phase_transitions_total",
		Help:      "Count of session phase transitions.",
	}, []string{"from", "to"})
	orchestratorIterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dal",
		Subsystem: "orchestrator",
		Name:      "iterations_total",
		Help:      "Count of StartIteration calls.",
	}, []string{"status"})
	orchestratorIterationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dal",
		Subsystem: "orchestrator",
		Name:      "iteration_duration_seconds",
		Help:      "Duration of the StartIteration call up to samples ready.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Orchestrator tracks metrics for the iteration state machine.
type Orchestrator struct{}

// NewOrchestrator constructs a metrics collector for session activity.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// ObserveTransition records one phase transition.
func (m Orchestrator) ObserveTransition(from, to model.Phase) {
	orchestratorTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveIteration records a StartIteration outcome and duration.
func (m Orchestrator) ObserveIteration(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	orchestratorIterationsTotal.WithLabelValues(status).Inc()
	orchestratorIterationDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
