package grpchealth

import (
	"mymembership/interfaces"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Reporter publishes the discovery session state as the overall gRPC health of the process.
type Reporter struct {
	server *health.Server
}

var _ interfaces.HealthReporter = (*Reporter)(nil)

// NewReporter creates a reporter that starts NOT_SERVING until the first registration.
func NewReporter() *Reporter {
	server := health.NewServer()
	server.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &Reporter{server: server}
}

// Register adds the health service to grpcServer.
func (r *Reporter) Register(grpcServer *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(grpcServer, r.server)
}

func (r *Reporter) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	r.server.SetServingStatus("", status)
}

// Shutdown flips every status to NOT_SERVING and ignores later updates.
func (r *Reporter) Shutdown() {
	r.server.Shutdown()
}
