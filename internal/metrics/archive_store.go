package metrics

import (
	"time"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var archiveLabels = []string{"operation", "network", "status"}

var (
	archiveWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "archive",
		Name:      "writes_total",
		Help:      "Batches written to the ClickHouse archive.",
	}, archiveLabels)
	archiveWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "popminer",
		Subsystem: "archive",
		Name:      "write_duration_seconds",
		Help:      "Time spent writing one batch to the ClickHouse archive.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2.5, 10),
	}, archiveLabels)
)

// ArchiveStore observes writes of the ClickHouse archive repository.
type ArchiveStore struct{}

func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{}
}

func (ArchiveStore) Observe(operation string, network model.Network, err error, started time.Time) {
	net := string(network)
	if net == "" {
		net = "unknown"
	}
	labels := prometheus.Labels{"operation": operation, "network": net, "status": statusOf(err)}
	archiveWritesTotal.With(labels).Inc()
	archiveWriteDuration.With(labels).Observe(time.Since(started).Seconds())
}
