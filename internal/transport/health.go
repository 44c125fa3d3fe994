package transport

import (
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer mirrors the miner's health flags into the standard gRPC
// health service. Every flag is a service of its own; the empty service
// name reports SERVING only while all flags are healthy.
type HealthServer struct {
	*health.Server

	mu      sync.Mutex
	healthy map[string]bool
	logger  *zap.Logger
}

// NewHealthServer returns a HealthServer watching flags.
func NewHealthServer(logger *zap.Logger, flags ...HealthFlag) *HealthServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HealthServer{
		Server:  health.NewServer(),
		healthy: make(map[string]bool, len(flags)),
		logger:  logger,
	}
	for _, f := range flags {
		s.watch(f)
	}
	s.mu.Lock()
	s.publishOverallLocked()
	s.mu.Unlock()
	return s
}

func (s *HealthServer) watch(flag HealthFlag) {
	flag.OnChange(s, func(healthy bool) {
		s.set(flag.Name(), healthy)
	})
	s.set(flag.Name(), flag.Healthy())
}

func (s *HealthServer) set(name string, healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.healthy[name] = healthy
	s.SetServingStatus(name, servingStatus(healthy))
	s.publishOverallLocked()
	if !healthy {
		s.logger.Warn("component unhealthy", zap.String("component", name))
	}
}

func (s *HealthServer) publishOverallLocked() {
	all := true
	for _, ok := range s.healthy {
		all = all && ok
	}
	s.SetServingStatus("", servingStatus(all))
}

func servingStatus(healthy bool) healthpb.HealthCheckResponse_ServingStatus {
	if healthy {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}
