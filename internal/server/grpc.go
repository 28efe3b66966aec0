package server

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/kispace/kispace-server/internal/config"
	"github.com/kispace/kispace-server/internal/logger"
)

// grpcServer exposes the standard gRPC health service so that orchestrators
// can probe liveness over gRPC. It registers no application services.
type grpcServer struct {
	address string

	server *grpc.Server
	health *health.Server

	logger *logger.Logger
}

func newGRPCServer(cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer()
	healthServer := health.NewServer()
	healthgrpc.RegisterHealthServer(srv, healthServer)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  srv,
		health:  healthServer,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Msgf("gRPC server Listen: %v", err)
		return
	}

	g.health.SetServingStatus("", healthgrpc.HealthCheckResponse_SERVING)

	if err := g.server.Serve(listener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.health.Shutdown()
	g.server.GracefulStop()
}
