package grpcserver

import (
	"context"
	"log/slog"
	"moviecatalog/pkg/sentry"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name health clients query for the catalog.
const ServiceName = "moviecatalog.Catalog"

const DefaultCheckInterval = 15 * time.Second

// Checker round-trips storage and reports whether it answered.
type Checker interface {
	Health(ctx context.Context) (int, error)
}

// Server exposes the standard gRPC health protocol backed by the movie
// storage health check.
type Server struct {
	Addr          string
	CheckInterval time.Duration

	checker    Checker
	health     *health.Server
	grpcServer *grpc.Server
	ctx        context.Context
	cancel     context.CancelFunc
}

func New(addr string, checker Checker) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		ctx:           ctx,
		cancel:        cancel,
		Addr:          addr,
		CheckInterval: DefaultCheckInterval,
		checker:       checker,
		health:        health.NewServer(),
		grpcServer:    grpc.NewServer(),
	}
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve checks storage once, keeps checking in the background and serves
// on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.CheckStorage(s.ctx)
	go s.watch(s.ctx)

	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	s.cancel()
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// CheckStorage runs one storage health check and publishes the result.
func (s *Server) CheckStorage(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.checker.Health(ctx); err != nil {
		slog.Warn("storage health check failed", "error", err)
		sentry.WithTags(map[string]string{"service": ServiceName}).Warningf("storage health check failed: %v", err)
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

func (s *Server) watch(ctx context.Context) {
	interval := s.CheckInterval
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckStorage(ctx)
		}
	}
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
