package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dal",
	Subsystem: "event_bridge",
	Name:      "deliveries_total",
	Help:      "Count of contract event log deliveries by event type.",
}, []string{"event", "status"})

// EventBridge tracks metrics for contract event subscriptions.
type EventBridge struct{}

// NewEventBridge constructs a metrics collector for the event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{}
}

// ObserveDelivery records one log delivery outcome.
func (m EventBridge) ObserveDelivery(eventName string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	eventDeliveriesTotal.WithLabelValues(eventName, status).Inc()
}
