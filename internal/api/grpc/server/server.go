package server

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/projectopen-signup/internal/api/grpc/middleware"
	"github.com/dtroode/projectopen-signup/internal/logger"
	"github.com/dtroode/projectopen-signup/internal/model"
)

// ServiceName is the health service name reported for the registration API.
const ServiceName = "projectopen.Registration"

var _ model.Server = (*GRPCServer)(nil)

// GRPCServer serves grpc.health.v1 with address and lifecycle methods.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	addr   string
}

// NewHealthServer creates a GRPCServer exposing the health service.
func NewHealthServer(addr string, logger *logger.Logger) *GRPCServer {
	logging := middleware.NewLogging(logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(func(p any) error {
				logger.Error("gRPC handler panicked", "panic", p)
				return status.Error(codes.Internal, "internal server error")
			})),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return &GRPCServer{server: s, health: hs, addr: addr}
}

// Start starts serving on the configured address using the provided security layer.
func (s *GRPCServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.server.Serve(listener)
}

// Stop reports NOT_SERVING to watchers and gracefully stops the server.
func (s *GRPCServer) Stop(_ context.Context) error {
	s.health.Shutdown()
	s.server.GracefulStop()
	return nil
}

// Address returns the configured listen address.
func (s *GRPCServer) Address() string {
	return s.addr
}
