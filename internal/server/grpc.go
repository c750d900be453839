// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/handler"
	"github.com/AccelByte/extend-button-story/pkg/session"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// GRPCServer serves the SessionService with health and reflection.
type GRPCServer struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	port     int
	sessions *session.Manager
}

// NewGRPCServer creates a server for sessions on port. Port 0 picks a free port.
func NewGRPCServer(port int, sessions *session.Manager) *GRPCServer {
	return &GRPCServer{
		port:     port,
		sessions: sessions,
	}
}

// recoverPanic turns a handler panic into codes.Internal so one bad request
// does not take down every player's session.
func recoverPanic(p interface{}) error {
	logrus.WithField("panic", p).Error("recovered from panic in gRPC handler")
	return status.Errorf(codes.Internal, "internal error")
}

// Setup builds the server: otel stats handler, then logging and panic
// recovery interceptors, then the services.
func (s *GRPCServer) Setup() error {
	logger := common.InterceptorLogger(logrus.StandardLogger())
	recoveryOpt := recovery.WithRecoveryHandler(recoverPanic)

	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(logger),
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(logger),
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	handler.RegisterSessionServiceServer(s.server, handler.NewSessionService(s.sessions))

	s.health = health.NewServer()
	s.health.SetServingStatus(handler.SessionServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	logrus.Infof("registered %s with health and reflection", handler.SessionServiceName)
	return nil
}

// Start opens the listener and serves in the background.
func (s *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.listener = lis

	go func() {
		logrus.Infof("gRPC server listening on %s", lis.Addr())
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logrus.Fatalf("gRPC server failed: %v", err)
		}
	}()
	return nil
}

// Addr returns the listening address once Start succeeded.
func (s *GRPCServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown marks the service NOT_SERVING and drains in-flight calls until
// ctx expires, after which remaining calls are cut.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if s.health != nil {
		s.health.Shutdown()
	}

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("gRPC graceful stop interrupted: %w", ctx.Err())
	}
}
