// Package grpc exposes the standard gRPC health checking protocol
// (grpc.health.v1.Health) for the ObesiTrack server.
package grpc

import (
	"context"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the service name accepted by Check besides the empty
// whole-server name.
const ServiceName = "obesitrack"

// Handler is the root gRPC transport handler. It implements
// [grpc_health_v1.HealthServer]; Watch and List stay unimplemented.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Check reports SERVING while the database answers a ping and NOT_SERVING
// otherwise.
func (h *Handler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}

	health := h.services.HealthService.Health(ctx)
	if health.Database != "ok" {
		h.logger.Warn().Str("func", "*Handler.Check").Msg("database unavailable, reporting NOT_SERVING")
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}
