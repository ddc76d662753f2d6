package server

import (
	"context"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"go.klb.dev/clipshelf/internal/app"
)

// CliphistService is the health-check service name for the history tool.
// The empty name reports the same status.
const CliphistService = "cliphist"

// healthService answers grpc.health.v1 checks by probing cliphist on every
// call; nothing is cached.
type healthService struct {
	healthpb.UnimplementedHealthServer
	cmds app.Commands
}

func (h *healthService) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", CliphistService:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	return checkResponse(h.cmds.IsCliphistAvailable(ctx)), nil
}

func checkResponse(available bool) *healthpb.HealthCheckResponse {
	if available {
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}
}
