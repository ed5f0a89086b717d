package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcilerSnapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dal",
		Subsystem: "reconciler",
		Name:      "snapshots_total",
		Help:      "Count of batch progress snapshots computed from chain reads.",
	}, []string{"status"})
	reconcilerSnapshotDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dal",
		Subsystem: "reconciler",
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of computing one batch progress snapshot.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	reconcilerAnomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dal",
		Subsystem: "reconciler",
		Name:      "premature_finalizations_total",
		Help:      "Count of batches the contract finalized before all samples completed.",
	}, []string{"round"})
)

// Reconciler tracks metrics for batch reconciliation.
type Reconciler struct{}

// NewReconciler constructs a metrics collector for the reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// ObserveSnapshot records one snapshot computation outcome and duration.
func (m Reconciler) ObserveSnapshot(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	reconcilerSnapshotsTotal.WithLabelValues(status).Inc()
	reconcilerSnapshotDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveAnomaly records a compensated premature finalization.
func (m Reconciler) ObserveAnomaly(round uint64) {
	reconcilerAnomaliesTotal.WithLabelValues(strconv.FormatUint(round, 10)).Inc()
}
