package grpcapi

import (
	"log/slog"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// OrderServiceName is the health service name of the order API. The empty
// name reports overall server health.
const OrderServiceName = "trade.order.OrderService"

// CacheServiceName reports the derived cache. Orders stay available while it
// is down, so it never affects the overall status.
const CacheServiceName = "trade.order.Cache"

// HealthReporter publishes probe results through the standard
// grpc.health.v1 service and logs status flips.
type HealthReporter struct {
	server *health.Server

	mu     sync.Mutex
	status map[string]healthpb.HealthCheckResponse_ServingStatus
}

// NewGRPCServer creates the gRPC server with health and reflection
// registered. Every service starts as NOT_SERVING until the first probe.
func NewGRPCServer(opts ...grpc.ServerOption) (*grpc.Server, *HealthReporter) {
	grpcServer := grpc.NewServer(opts...)
	reporter := NewHealthReporter()

	healthpb.RegisterHealthServer(grpcServer, reporter.server)
	reflection.Register(grpcServer)

	return grpcServer, reporter
}

func NewHealthReporter() *HealthReporter {
	r := &HealthReporter{
		server: health.NewServer(),
		status: map[string]healthpb.HealthCheckResponse_ServingStatus{},
	}
	r.SetServing("", false)
	r.SetServing(OrderServiceName, false)
	return r
}

func (r *HealthReporter) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	r.mu.Lock()
	previous, seen := r.status[service]
	r.status[service] = status
	r.mu.Unlock()

	r.server.SetServingStatus(service, status)
	if seen && previous != status {
		slog.Warn("health status changed", "service", service, "status", status.String())
	}
}

// Shutdown flips every service to NOT_SERVING so clients drain first.
func (r *HealthReporter) Shutdown() {
	r.server.Shutdown()
}

// Server exposes the underlying health server for in-process checks.
func (r *HealthReporter) Server() healthpb.HealthServer {
	return r.server
}
