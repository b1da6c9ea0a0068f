package internalgrpc

import (
	"context"
	"net"
	"strconv"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the API.
const ServiceName = "planify.v1.Planify"

type Config struct {
	Host string
	Port int
}

type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	addr       string
}

func NewServer(config Config) *Server {
	s := &Server{
		addr:   net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		health: health.NewServer(),
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(loggingHandler))
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *Server) Start(_ context.Context) error {
	lsn, err := net.Listen("tcp", s.addr)
	if err != nil {
		log.Errorf("failed to listen grpc endpoint: %v", err)
		return err
	}

	log.Printf("starting grpc server on %s", s.addr)
	return s.Serve(lsn)
}

func (s *Server) Serve(lsn net.Listener) error {
	return s.grpcServer.Serve(lsn)
}

func (s *Server) Stop(_ context.Context) error {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
	return nil
}
