package metrics

import (
	"github.com/goodnatureofminers/popminer-backend/internal/pop/operation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "operations",
		Name:      "transitions_total",
		Help:      "Count of mining operation state transitions.",
	}, []string{"chain", "state"})
	operationRestoresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "operations",
		Name:      "restores_total",
		Help:      "Count of operations restored from the store on startup.",
	}, []string{"status"})
	operationsRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "popminer",
		Subsystem: "operations",
		Name:      "running",
		Help:      "Number of mining operations that are not yet terminal.",
	})
)

// Operations tracks metrics for the miner's operation lifecycle.
type Operations struct{}

// NewOperations creates an Operations metrics collector.
func NewOperations() *Operations {
	return &Operations{}
}

// ObserveTransition counts an operation entering state.
func (m Operations) ObserveTransition(chainID string, state operation.State) {
	if chainID == "" {
		chainID = "unknown"
	}
	operationTransitionsTotal.WithLabelValues(chainID, string(state)).Inc()
}

// ObserveRestore counts a restore attempt by outcome.
func (m Operations) ObserveRestore(err error) {
	operationRestoresTotal.WithLabelValues(statusOf(err)).Inc()
}

func (m Operations) SetRunning(n int) {
	operationsRunning.Set(float64(n))
}
