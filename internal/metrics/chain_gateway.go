package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dal",
		Subsystem: "chain_gateway",
		Name:      "operations_total",
		Help:      "Count of project contract calls and transactions.",
	}, []string{"operation", "contract", "status"})
	chainOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dal",
		Subsystem: "chain_gateway",
		Name:      "operation_duration_seconds",
		Help:      "Duration of project contract calls and transactions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "contract", "status"})
)

// ChainGateway tracks metrics for project contract interactions.
type ChainGateway struct {
	contract string
}

// NewChainGateway constructs a metrics collector for contract calls.
func NewChainGateway(contract string) *ChainGateway {
	if contract == "" {
		contract = "unknown"
	}
	return &ChainGateway{contract: contract}
}

// Observe records a single contract operation outcome and duration.
func (m ChainGateway) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	chainOperationsTotal.WithLabelValues(operation, m.contract, status).Inc()
	chainOperationDuration.WithLabelValues(operation, m.contract, status).Observe(time.Since(started).Seconds())
}
