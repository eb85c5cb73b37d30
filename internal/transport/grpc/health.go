package grpc_server

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is reported next to the overall ("") health status.
const ServiceName = "learnpath.Progress"

// Probe reports whether one dependency is reachable.
type Probe func(ctx context.Context) error

// HealthMonitor keeps the gRPC health status in line with the backing stores.
type HealthMonitor struct {
	server  *health.Server
	probes  map[string]Probe
	timeout time.Duration
}

func NewHealthMonitor(probes map[string]Probe) *HealthMonitor {
	return &HealthMonitor{
		server:  health.NewServer(),
		probes:  probes,
		timeout: 2 * time.Second,
	}
}

// NewServer builds the gRPC server with health and reflection registered.
func NewServer(m *HealthMonitor) *grpc.Server {
	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, m.server)
	reflection.Register(s)
	return s
}

// Check runs every probe once and publishes the result.
func (m *HealthMonitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING

	for name, probe := range m.probes {
		pctx, cancel := context.WithTimeout(ctx, m.timeout)
		err := probe(pctx)
		cancel()
		if err != nil {
			log.Printf("health: %s unavailable: %v", name, err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	m.server.SetServingStatus("", status)
	m.server.SetServingStatus(ServiceName, status)
	return status
}

// Run rechecks on every tick until ctx is done, then marks everything as shut down.
func (m *HealthMonitor) Run(ctx context.Context, interval time.Duration) {
	m.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
