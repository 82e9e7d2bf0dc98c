// Package metrics defines the Prometheus instruments exposed by the service.
// Counters are registered once by the composition root and shared by the
// inbound adapters.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// MessagesTotal counts inbound chat messages by originating chat kind.
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatorder_messages_total",
			Help: "Total number of inbound chat messages processed",
		},
		[]string{"chat"},
	)

	// ExtractionsTotal counts extraction attempts by result.
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatorder_extractions_total",
			Help: "Total number of order extraction attempts by result",
		},
		[]string{"result"},
	)

	// TransitionsTotal counts lifecycle transition attempts by action and outcome.
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatorder_transitions_total",
			Help: "Total number of order lifecycle transition attempts",
		},
		[]string{"action", "outcome"},
	)
)

// Register registers all package instruments with the given registerer.
// Panics on duplicate registration, which indicates a wiring bug.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(MessagesTotal, ExtractionsTotal, TransitionsTotal)
}
