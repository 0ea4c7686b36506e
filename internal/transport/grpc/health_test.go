package grpc

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abgdnv/inventory/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestHealthReporter(t *testing.T) {
	// given
	var state atomic.Int32
	state.Store(int32(database.Disconnected))
	reporter := NewHealthReporter(func() database.State { return database.State(state.Load()) }, 10*time.Millisecond, nil)

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	reporter.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reporter.Run(ctx) }()

	check := func(service string) healthpb.HealthCheckResponse_ServingStatus {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		return resp.GetStatus()
	}

	// then
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(ServiceName))

	// when
	state.Store(int32(database.Connected))

	// then
	assert.Eventually(t, func() bool {
		return check(ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	// when
	cancel()

	// then
	require.NoError(t, <-done)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(""))
}
