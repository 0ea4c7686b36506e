// Package grpc exposes the standard gRPC health service, driven by the store connection state.
package grpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/abgdnv/inventory/internal/database"
	"github.com/abgdnv/inventory/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "inventory.Products"

// StateFunc returns the current store connection state.
type StateFunc func() database.State

// HealthReporter keeps the health server in sync with the store connection.
type HealthReporter struct {
	server   *health.Server
	state    StateFunc
	interval time.Duration
	logger   *slog.Logger
}

func NewHealthReporter(state StateFunc, interval time.Duration, log *slog.Logger) *HealthReporter {
	r := &HealthReporter{
		server:   health.NewServer(),
		state:    state,
		interval: interval,
		logger:   logger.Component(log, "grpc-health"),
	}
	r.update()
	return r
}

// Register adds the health service to a gRPC server.
func (r *HealthReporter) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, r.server)
}

// Run refreshes the status every interval until ctx is done, then marks everything NOT_SERVING.
func (r *HealthReporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return nil
		case <-ticker.C:
			r.update()
		}
	}
}

func (r *HealthReporter) update() {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if r.state() == database.Connected {
		status = healthpb.HealthCheckResponse_SERVING
	}
	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(ServiceName, status)
}
