package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/popminer-backend/internal/pop/model"
)

const (
	roleReference = "reference"
	roleAltChain  = "altchain"
)

var (
	nodeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "node_rpc",
		Name:      "calls_total",
		Help:      "Count of JSON-RPC calls to the reference node and altchain nodes by method.",
	}, []string{"role", "chain", "network", "method", "status"})
	nodeCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "popminer",
		Subsystem: "node_rpc",
		Name:      "call_duration_seconds",
		Help:      "Latency of JSON-RPC calls by method.",
		Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"role", "chain", "method"})
	nodeRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popminer",
		Subsystem: "node_rpc",
		Name:      "rejections_total",
		Help:      "Count of JSON-RPC error replies by method and node error code.",
	}, []string{"role", "chain", "method", "code"})
)

// NodeRPC tracks JSON-RPC calls made to one node.
type NodeRPC struct {
	role    string
	chain   string
	network model.Network
}

// NewReferenceRPC tracks calls to the reference chain node.
func NewReferenceRPC(network model.Network) *NodeRPC {
	return newNodeRPC(roleReference, roleReference, network)
}

// NewAltChainRPC tracks calls to the node of the altchain chainID.
func NewAltChainRPC(chainID string, network model.Network) *NodeRPC {
	return newNodeRPC(roleAltChain, chainID, network)
}

func newNodeRPC(role, chain string, network model.Network) *NodeRPC {
	if chain == "" {
		chain = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &NodeRPC{role: role, chain: chain, network: network}
}

// Observe records one call of the JSON-RPC method. Replies carrying a node
// error code are counted separately from transport failures.
func (m NodeRPC) Observe(method string, err error, started time.Time) {
	status := callStatus(err)

	nodeCallsTotal.WithLabelValues(m.role, m.chain, string(m.network), method, status).Inc()
	nodeCallDuration.WithLabelValues(m.role, m.chain, method).Observe(time.Since(started).Seconds())

	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		nodeRejectionsTotal.WithLabelValues(m.role, m.chain, method, strconv.Itoa(int(rpcErr.Code))).Inc()
	}
}

func callStatus(err error) string {
	var rpcErr *btcjson.RPCError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &rpcErr):
		return "rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
