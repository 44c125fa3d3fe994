package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollerTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "poller",
		Name:      "ticks_total",
		Help:      "Count of poll iterations against a chain node.",
	}, []string{"poller", "status"})
	pollerTickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "popminer",
		Subsystem: "poller",
		Name:      "tick_duration_seconds",
		Help:      "Duration of a single poll iteration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"poller", "status"})
)

// Poller tracks metrics for a background loop polling a chain node.
type Poller struct {
	name string
}

// NewPoller constructs a Poller labelled with name, e.g. "reference" or an altchain id.
func NewPoller(name string) *Poller {
	if name == "" {
		name = "unknown"
	}
	return &Poller{name: name}
}

// ObserveTick records a poll iteration outcome and duration.
func (m Poller) ObserveTick(err error, started time.Time) {
	status := statusOf(err)
	pollerTicksTotal.WithLabelValues(m.name, status).Inc()
	pollerTickDuration.WithLabelValues(m.name, status).Observe(time.Since(started).Seconds())
}
