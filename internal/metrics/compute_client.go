package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dal",
		Subsystem: "compute_client",
		Name:      "operations_total",
		Help:      "Count of AL engine HTTP operations.",
	}, []string{"operation", "status"})
	computeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dal",
		Subsystem: "compute_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of AL engine HTTP operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// ComputeClient tracks metrics for AL engine requests.
type ComputeClient struct{}

// NewComputeClient constructs a metrics collector for the compute client.
func NewComputeClient() *ComputeClient {
	return &ComputeClient{}
}

// Observe records a single compute request outcome and duration.
func (m ComputeClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	computeRequestsTotal.WithLabelValues(operation, status).Inc()
	computeRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
