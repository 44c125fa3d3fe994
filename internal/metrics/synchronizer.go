package metrics

import (
	"time"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	synchronizerAddTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "synchronizer",
		Name:      "add_total",
		Help:      "Count of blocks offered to the synchronizer by outcome.",
	}, []string{"network", "outcome"})
	synchronizerAddDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "popminer",
		Subsystem: "synchronizer",
		Name:      "add_duration_seconds",
		Help:      "Duration of adding a block to the synchronizer.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"network", "outcome"})
	synchronizerHead = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "popminer",
		Subsystem: "synchronizer",
		Name:      "head_height",
		Help:      "Height of the best reference chain head.",
	}, []string{"network"})
)

// Synchronizer tracks metrics for the reference chain synchronizer.
type Synchronizer struct {
	network model.Network
}

// NewSynchronizer constructs a Synchronizer metrics collector.
func NewSynchronizer(network model.Network) *Synchronizer {
	if network == "" {
		network = "unknown"
	}
	return &Synchronizer{network: network}
}

// ObserveAdd records the outcome and duration of a single block add.
func (m Synchronizer) ObserveAdd(outcome string, started time.Time) {
	synchronizerAddTotal.WithLabelValues(string(m.network), outcome).Inc()
	synchronizerAddDuration.WithLabelValues(string(m.network), outcome).Observe(time.Since(started).Seconds())
}

// SetHead records the height of the current chain head.
func (m Synchronizer) SetHead(height int32) {
	synchronizerHead.WithLabelValues(string(m.network)).Set(float64(height))
}
