package metrics

import (
	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trackerConfirmedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "tracker",
		Name:      "confirmed_total",
		Help:      "Count of transactions that reached the confirmed set.",
	}, []string{"network"})
	trackerDemotedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "tracker",
		Name:      "demoted_total",
		Help:      "Count of confirmed transactions demoted by reorganizations.",
	}, []string{"network"})
	trackerTracked = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "popminer",
		Subsystem: "tracker",
		Name:      "tracked",
		Help:      "Number of transactions awaiting confirmation.",
	}, []string{"network"})
)

// Tracker tracks metrics for the confirmation tracker.
type Tracker struct {
	network model.Network
}

// NewTracker constructs a Tracker metrics collector.
func NewTracker(network model.Network) *Tracker {
	if network == "" {
		network = "unknown"
	}
	return &Tracker{network: network}
}

// ObserveConfirmed counts n newly confirmed transactions.
func (m Tracker) ObserveConfirmed(n int) {
	trackerConfirmedTotal.WithLabelValues(string(m.network)).Add(float64(n))
}

// ObserveDemoted counts n transactions that lost their confirmation.
func (m Tracker) ObserveDemoted(n int) {
	trackerDemotedTotal.WithLabelValues(string(m.network)).Add(float64(n))
}

func (m Tracker) SetTracked(n int) {
	trackerTracked.WithLabelValues(string(m.network)).Set(float64(n))
}
